package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"srtchunk/internal/chunking"
	"srtchunk/internal/failures"
)

// Pair links an original chunk with its translated counterpart.
type Pair struct {
	Index      int
	Name       string
	Original   string
	Translated string
	// Missing is set when no translated file exists under the same name.
	Missing bool
}

// Pairs matches every chunk in the chunks directory with the file of the same
// name in the translated directory, in chunk order.
func (w *Workspace) Pairs() ([]Pair, error) {
	originals, err := w.ListChunks(w.dirs.Chunks)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(originals))
	for _, original := range originals {
		name := filepath.Base(original)
		index, _ := chunking.ParseFileName(name, w.ext)
		translated := filepath.Join(w.dirs.Translated, name)
		pair := Pair{Index: index, Name: name, Original: original, Translated: translated}
		if _, err := os.Stat(translated); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, failures.Wrap(failures.ErrIO, component, "pair chunks", translated, err)
			}
			pair.Missing = true
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
