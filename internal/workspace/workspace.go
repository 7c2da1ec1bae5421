package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"srtchunk/internal/chunking"
	"srtchunk/internal/config"
	"srtchunk/internal/failures"
	"srtchunk/internal/fileutil"
	"srtchunk/internal/logging"
	"srtchunk/internal/srt"
)

const (
	// SourceMarkerName is the sidecar in the chunks directory naming the
	// document the chunks were split from.
	SourceMarkerName = ".source"
	// FallbackOutputName is used when no input document can be identified.
	FallbackOutputName = "translated.srt"

	documentExt = ".srt"
	component   = "workspace"
)

// Dirs is the directory layout of a workspace.
type Dirs struct {
	Input      string
	Chunks     string
	Translated string
	Output     string
}

// Workspace reads and writes chunk and document files.
type Workspace struct {
	dirs   Dirs
	ext    string
	logger *slog.Logger
}

// New constructs a workspace. ext is the chunk file extension including the dot.
func New(dirs Dirs, ext string, logger *slog.Logger) *Workspace {
	if ext == "" {
		ext = documentExt
	}
	return &Workspace{
		dirs:   dirs,
		ext:    ext,
		logger: logging.NewComponentLogger(logger, component),
	}
}

// FromConfig builds a workspace from the configured paths.
func FromConfig(cfg *config.Config, logger *slog.Logger) *Workspace {
	return New(Dirs{
		Input:      cfg.Paths.InputDir,
		Chunks:     cfg.Paths.ChunksDir,
		Translated: cfg.Paths.TranslatedDir,
		Output:     cfg.Paths.OutputDir,
	}, cfg.Chunking.Extension, logger)
}

// Dirs returns the workspace layout.
func (w *Workspace) Dirs() Dirs {
	return w.dirs
}

// Extension returns the chunk file extension.
func (w *Workspace) Extension() string {
	return w.ext
}

// ReadDocument reads path and normalizes its encoding and line endings.
func ReadDocument(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", failures.Wrap(failures.ErrNotFound, component, "read document", fmt.Sprintf("%s does not exist", path), nil)
		}
		return "", failures.Wrap(failures.ErrIO, component, "read document", path, err)
	}
	text, err := srt.Normalize(raw)
	if err != nil {
		return "", failures.Wrap(failures.ErrInvalidInput, component, "decode document", path, err)
	}
	return text, nil
}

// ReplaceChunks regenerates the chunks directory for one split pass. Under the
// chunks lock it removes the previous chunk files, records source in the
// .source marker and writes every chunk. It returns the written paths.
func (w *Workspace) ReplaceChunks(ctx context.Context, source string, chunks []chunking.Chunk) ([]string, error) {
	lock, err := w.Lock(ctx, w.dirs.Chunks)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release chunks lock", logging.Error(err))
		}
	}()

	removed, err := w.ClearChunks(ctx)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		w.logger.Debug("cleared previous chunks", logging.Int("removed", removed))
	}
	if err := w.WriteSourceMarker(source); err != nil {
		return nil, err
	}
	return w.WriteChunks(ctx, chunks)
}

// ClearChunks removes chunk files from the chunks directory. Callers hold the
// chunks lock.
func (w *Workspace) ClearChunks(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dirs.Chunks)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, failures.Wrap(failures.ErrIO, component, "clear chunks", w.dirs.Chunks, err)
	}
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() {
			continue
		}
		if _, ok := chunking.ParseFileName(entry.Name(), w.ext); !ok {
			continue
		}
		if err := os.Remove(filepath.Join(w.dirs.Chunks, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, failures.Wrap(failures.ErrIO, component, "clear chunks", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// WriteChunks renders and writes each chunk into the chunks directory.
func (w *Workspace) WriteChunks(ctx context.Context, chunks []chunking.Chunk) ([]string, error) {
	if err := os.MkdirAll(w.dirs.Chunks, 0o755); err != nil {
		return nil, failures.Wrap(failures.ErrIO, component, "write chunks", "create chunks directory", err)
	}
	paths := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		name := chunk.FileName(w.ext)
		path := filepath.Join(w.dirs.Chunks, name)
		if err := fileutil.WriteFileAtomic(path, []byte(chunk.Render()), 0o644); err != nil {
			return paths, failures.Wrap(failures.ErrIO, component, "write chunks", name, err)
		}
		w.logger.Debug("chunk written",
			logging.String(logging.FieldChunk, name),
			logging.Int("blocks", len(chunk.Blocks)),
			logging.Int("context", len(chunk.Context)),
		)
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteSourceMarker records the original document's file name.
func (w *Workspace) WriteSourceMarker(source string) error {
	if err := os.MkdirAll(w.dirs.Chunks, 0o755); err != nil {
		return failures.Wrap(failures.ErrIO, component, "write source marker", "create chunks directory", err)
	}
	path := filepath.Join(w.dirs.Chunks, SourceMarkerName)
	if err := fileutil.WriteFileAtomic(path, []byte(filepath.Base(source)+"\n"), 0o644); err != nil {
		return failures.Wrap(failures.ErrIO, component, "write source marker", path, err)
	}
	return nil
}

// ReadSourceMarker returns the recorded document name, if any.
func (w *Workspace) ReadSourceMarker() (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(w.dirs.Chunks, SourceMarkerName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, failures.Wrap(failures.ErrIO, component, "read source marker", "", err)
	}
	name := strings.TrimSpace(string(data))
	return name, name != "", nil
}

// ListChunks returns the chunk files in dir ordered by chunk index.
func (w *Workspace) ListChunks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failures.Wrap(failures.ErrNotFound, component, "list chunks", fmt.Sprintf("directory %s does not exist", dir), nil)
		}
		return nil, failures.Wrap(failures.ErrIO, component, "list chunks", dir, err)
	}
	type indexed struct {
		index int
		path  string
	}
	var found []indexed
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		index, ok := chunking.ParseFileName(entry.Name(), w.ext)
		if !ok {
			continue
		}
		found = append(found, indexed{index: index, path: filepath.Join(dir, entry.Name())})
	}
	if len(found) == 0 {
		return nil, failures.Wrap(failures.ErrNotFound, component, "list chunks", fmt.Sprintf("no chunk files in %s", dir), nil)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].index < found[j].index })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}
