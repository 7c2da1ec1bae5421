package workspace_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"srtchunk/internal/chunking"
	"srtchunk/internal/failures"
	"srtchunk/internal/logging"
	"srtchunk/internal/srt"
	"srtchunk/internal/workspace"
)

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	base := t.TempDir()
	return workspace.New(workspace.Dirs{
		Input:      filepath.Join(base, "input"),
		Chunks:     filepath.Join(base, "chunks"),
		Translated: filepath.Join(base, "translated"),
		Output:     filepath.Join(base, "output"),
	}, ".srt", logging.NewNop())
}

func sampleChunks(t *testing.T, n, per int) []chunking.Chunk {
	t.Helper()
	blocks := make([]srt.Block, n)
	for i := range blocks {
		blocks[i] = srt.Block{
			Sequence:  fmt.Sprint(i + 1),
			Timestamp: fmt.Sprintf("00:00:%02d,000 --> 00:00:%02d,500", i, i),
			Lines:     []string{fmt.Sprintf("line %d", i+1)},
		}
	}
	chunks, err := chunking.Split(blocks, chunking.Options{BlocksPerChunk: per, ContextBlocks: 1})
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	return chunks
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReplaceChunksClearsPreviousPass(t *testing.T) {
	ws := newWorkspace(t)
	ctx := context.Background()

	if _, err := ws.ReplaceChunks(ctx, "first.srt", sampleChunks(t, 9, 2)); err != nil {
		t.Fatalf("first ReplaceChunks: %v", err)
	}
	notes := filepath.Join(ws.Dirs().Chunks, "notes.txt")
	writeFile(t, notes, "keep me")

	paths, err := ws.ReplaceChunks(ctx, "/somewhere/second.srt", sampleChunks(t, 4, 2))
	if err != nil {
		t.Fatalf("second ReplaceChunks: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 written chunks, got %d", len(paths))
	}

	listed, err := ws.ListChunks(ws.Dirs().Chunks)
	if err != nil {
		t.Fatalf("ListChunks: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected stale chunks removed, got %v", listed)
	}
	if _, err := os.Stat(notes); err != nil {
		t.Fatalf("non-chunk file should survive: %v", err)
	}

	source, ok, err := ws.ReadSourceMarker()
	if err != nil || !ok {
		t.Fatalf("ReadSourceMarker: ok=%v err=%v", ok, err)
	}
	if source != "second.srt" {
		t.Fatalf("expected marker to hold base name, got %q", source)
	}
}

func TestWriteChunksRendersContext(t *testing.T) {
	ws := newWorkspace(t)
	paths, err := ws.WriteChunks(context.Background(), sampleChunks(t, 4, 2))
	if err != nil {
		t.Fatalf("WriteChunks: %v", err)
	}
	if filepath.Base(paths[0]) != "chunk_001.srt" || filepath.Base(paths[1]) != "chunk_002.srt" {
		t.Fatalf("unexpected names: %v", paths)
	}
	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatalf("read chunk: %v", err)
	}
	if !strings.HasPrefix(string(data), srt.ContextStart+"\n") {
		t.Fatalf("expected context header, got %q", data)
	}
	if got := len(srt.ParseChunk(string(data))); got != 2 {
		t.Fatalf("expected 2 real blocks, got %d", got)
	}
}

func TestListChunksOrdersByIndex(t *testing.T) {
	ws := newWorkspace(t)
	dir := ws.Dirs().Translated
	for _, name := range []string{"chunk_1000.srt", "chunk_002.srt", "chunk_001.srt", "chunk_010.srt", "other.srt", "chunk_003.txt", "chunk_+07.srt"} {
		writeFile(t, filepath.Join(dir, name), "")
	}
	paths, err := ws.ListChunks(dir)
	if err != nil {
		t.Fatalf("ListChunks: %v", err)
	}
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	want := "chunk_001.srt,chunk_002.srt,chunk_010.srt,chunk_1000.srt"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("unexpected order: got %s want %s", got, want)
	}
}

func TestListChunksReportsMissing(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.ListChunks(ws.Dirs().Translated)
	if !errors.Is(err, failures.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing dir, got %v", err)
	}
	if err := os.MkdirAll(ws.Dirs().Translated, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err = ws.ListChunks(ws.Dirs().Translated)
	if !errors.Is(err, failures.ErrNotFound) || !strings.Contains(err.Error(), "no chunk files") {
		t.Fatalf("expected no chunk files error, got %v", err)
	}
}

func TestLockIsExclusive(t *testing.T) {
	ws := newWorkspace(t)
	ctx := context.Background()
	first, err := ws.Lock(ctx, ws.Dirs().Output)
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}
	if _, err := ws.Lock(ctx, ws.Dirs().Output); !errors.Is(err, failures.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := ws.WriteOutput(ctx, "movie.srt", "x"); !errors.Is(err, failures.ErrBusy) {
		t.Fatalf("expected WriteOutput to fail while locked, got %v", err)
	}
	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	second, err := ws.Lock(ctx, ws.Dirs().Output)
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	_ = second.Unlock()
}

func TestResolveOutputName(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		ws := newWorkspace(t)
		name, err := ws.ResolveOutputName()
		if err != nil {
			t.Fatal(err)
		}
		if name != workspace.FallbackOutputName {
			t.Fatalf("expected fallback, got %q", name)
		}
	})

	t.Run("single input wins over marker", func(t *testing.T) {
		ws := newWorkspace(t)
		writeFile(t, filepath.Join(ws.Dirs().Input, "movie.srt"), "")
		if err := ws.WriteSourceMarker("other.srt"); err != nil {
			t.Fatal(err)
		}
		name, err := ws.ResolveOutputName()
		if err != nil {
			t.Fatal(err)
		}
		if name != "movie.srt" {
			t.Fatalf("expected movie.srt, got %q", name)
		}
	})

	t.Run("marker disambiguates several inputs", func(t *testing.T) {
		ws := newWorkspace(t)
		writeFile(t, filepath.Join(ws.Dirs().Input, "a.srt"), "")
		writeFile(t, filepath.Join(ws.Dirs().Input, "b.srt"), "")
		if err := ws.WriteSourceMarker("b.srt"); err != nil {
			t.Fatal(err)
		}
		name, err := ws.ResolveOutputName()
		if err != nil {
			t.Fatal(err)
		}
		if name != "b.srt" {
			t.Fatalf("expected b.srt, got %q", name)
		}
	})

	t.Run("newest input without marker", func(t *testing.T) {
		ws := newWorkspace(t)
		older := filepath.Join(ws.Dirs().Input, "older.srt")
		newer := filepath.Join(ws.Dirs().Input, "newer.SRT")
		writeFile(t, older, "")
		writeFile(t, newer, "")
		writeFile(t, filepath.Join(ws.Dirs().Input, "readme.txt"), "")
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(older, past, past); err != nil {
			t.Fatal(err)
		}
		name, err := ws.ResolveOutputName()
		if err != nil {
			t.Fatal(err)
		}
		if name != "newer.SRT" {
			t.Fatalf("expected newer.SRT, got %q", name)
		}
	})

	t.Run("marker is sanitized", func(t *testing.T) {
		ws := newWorkspace(t)
		if err := os.MkdirAll(ws.Dirs().Chunks, 0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(ws.Dirs().Chunks, workspace.SourceMarkerName), "../../evil?.srt\n")
		name, err := ws.ResolveOutputName()
		if err != nil {
			t.Fatal(err)
		}
		if name != "evil.srt" {
			t.Fatalf("expected sanitized name, got %q", name)
		}
	})
}

func TestWriteOutputAndReadDocument(t *testing.T) {
	ws := newWorkspace(t)
	path, err := ws.WriteOutput(context.Background(), "movie.srt", "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nHi\r\n\r\n")
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if path != filepath.Join(ws.Dirs().Output, "movie.srt") {
		t.Fatalf("unexpected output path %q", path)
	}
	text, err := workspace.ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if text != "1\n00:00:01,000 --> 00:00:02,000\nHi\n\n" {
		t.Fatalf("expected normalized text, got %q", text)
	}
	if _, err := workspace.ReadDocument(filepath.Join(ws.Dirs().Output, "missing.srt")); !errors.Is(err, failures.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadDocumentRejectsInvalidEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.srt")
	writeFile(t, path, "1\n00:00:01,000 --> 00:00:02,000\nna\xefve\n")

	_, err := workspace.ReadDocument(path)
	if !errors.Is(err, failures.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, srt.ErrInvalidEncoding) {
		t.Fatalf("expected encoding cause to be retained, got %v", err)
	}
}

func TestPairsMarksMissingTranslations(t *testing.T) {
	ws := newWorkspace(t)
	if _, err := ws.WriteChunks(context.Background(), sampleChunks(t, 6, 2)); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(ws.Dirs().Translated, "chunk_001.srt"), "")
	writeFile(t, filepath.Join(ws.Dirs().Translated, "chunk_003.srt"), "")

	pairs, err := ws.Pairs()
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	if pairs[0].Missing || !pairs[1].Missing || pairs[2].Missing {
		t.Fatalf("unexpected missing flags: %+v", pairs)
	}
	if pairs[1].Index != 2 || pairs[1].Name != "chunk_002.srt" {
		t.Fatalf("unexpected pair: %+v", pairs[1])
	}
}

func TestCancelledContextStopsWrites(t *testing.T) {
	ws := newWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ws.ReplaceChunks(ctx, "movie.srt", sampleChunks(t, 4, 2)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
