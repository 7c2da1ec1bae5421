package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"srtchunk/internal/failures"
)

// LockFileName is created in every directory srtchunk regenerates.
const LockFileName = ".srtchunk.lock"

// Lock is an exclusive claim on a workspace directory.
type Lock struct {
	file *flock.Flock
}

// Lock claims dir for exclusive writing, creating it when missing. A directory
// already held by another process yields failures.ErrBusy immediately.
func (w *Workspace) Lock(ctx context.Context, dir string) (*Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, failures.Wrap(failures.ErrIO, component, "lock", "create directory", err)
	}
	path := filepath.Join(dir, LockFileName)
	file := flock.New(path)
	ok, err := file.TryLock()
	if err != nil {
		return nil, failures.Wrap(failures.ErrIO, component, "lock", path, err)
	}
	if !ok {
		return nil, failures.Wrap(failures.ErrBusy, component, "lock", fmt.Sprintf("%s is in use by another srtchunk process", dir), nil)
	}
	return &Lock{file: file}, nil
}

// Unlock releases the claim. The lock file itself is left in place.
func (l *Lock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Unlock()
}
