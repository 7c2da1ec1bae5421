package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"srtchunk/internal/failures"
	"srtchunk/internal/fileutil"
	"srtchunk/internal/logging"
	"srtchunk/internal/textutil"
)

// ResolveOutputName picks the joined document's file name:
//  1. the only document in the input directory,
//  2. the name recorded in the .source marker,
//  3. the most recently modified document in the input directory,
//  4. FallbackOutputName.
func (w *Workspace) ResolveOutputName() (string, error) {
	inputs, err := w.inputDocuments()
	if err != nil {
		return "", err
	}
	if len(inputs) == 1 {
		return sanitizeOutput(inputs[0].name), nil
	}
	marker, ok, err := w.ReadSourceMarker()
	if err != nil {
		return "", err
	}
	if ok {
		return sanitizeOutput(marker), nil
	}
	if len(inputs) > 0 {
		newest := inputs[0]
		for _, doc := range inputs[1:] {
			if doc.modTime > newest.modTime {
				newest = doc
			}
		}
		return sanitizeOutput(newest.name), nil
	}
	return FallbackOutputName, nil
}

// WriteOutput writes the joined document into the output directory under the
// output lock and returns its path.
func (w *Workspace) WriteOutput(ctx context.Context, name, text string) (string, error) {
	lock, err := w.Lock(ctx, w.dirs.Output)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	name = sanitizeOutput(name)
	path := filepath.Join(w.dirs.Output, name)
	if err := fileutil.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		return "", failures.Wrap(failures.ErrIO, component, "write output", path, err)
	}
	w.logger.Info("output written", logging.String("path", path))
	return path, nil
}

type inputDocument struct {
	name    string
	modTime int64
}

func (w *Workspace) inputDocuments() ([]inputDocument, error) {
	entries, err := os.ReadDir(w.dirs.Input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, failures.Wrap(failures.ErrIO, component, "list inputs", w.dirs.Input, err)
	}
	var docs []inputDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), documentExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, inputDocument{name: entry.Name(), modTime: info.ModTime().UnixNano()})
	}
	return docs, nil
}

func sanitizeOutput(name string) string {
	if clean := textutil.SanitizeFileName(name); clean != "" {
		return clean
	}
	return FallbackOutputName
}
