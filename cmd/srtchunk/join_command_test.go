package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"srtchunk/internal/failures"
	"srtchunk/internal/testsupport"
)

func TestJoinRoundTripsTranslatedChunks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 2))
	splitAndCopy(t, env, 7)
	for _, name := range []string{"chunk_001.srt", "chunk_002.srt", "chunk_003.srt"} {
		copyChunk(t, env, name, nil)
	}

	out, _, err := runCLI(t, env.configPath, "join")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	requireContains(t, out, "Chunks processed: 3")
	requireContains(t, out, "Blocks: 7")
	requireNotContains(t, out, "WARNING")

	outPath := filepath.Join(env.cfg.Paths.OutputDir, "movie.srt")
	requireContains(t, out, "Output: "+outPath)
	if got := testsupport.ReadFile(t, outPath); got != testsupport.BuildSRT(7) {
		t.Fatalf("joined document differs from original:\n%s", got)
	}
}

func TestJoinRenumbersAndKeepsEmptyBlocks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(2, 0))
	testsupport.WriteFile(t, env.translatedPath("chunk_001.srt"),
		"7\n00:00:01,000 --> 00:00:02,000\nHola\n\n9\n00:00:03,000 --> 00:00:04,000\n\n")
	testsupport.WriteFile(t, env.translatedPath("chunk_002.srt"),
		"1\n00:00:05,000 --> 00:00:06,000\nAdiós\n\n")

	out, _, err := runCLI(t, env.configPath, "join", "--output", "episode.srt")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	requireContains(t, out, "Empty blocks: 1")

	got := testsupport.ReadFile(t, filepath.Join(env.cfg.Paths.OutputDir, "episode.srt"))
	want := "1\n00:00:01,000 --> 00:00:02,000\nHola\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000\nAdiós\n\n"
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
}

func TestJoinWithoutTranslatedChunks(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env.configPath, "join")
	if !errors.Is(err, failures.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJoinWarnsOnPartialTranslation(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 7)
	copyChunk(t, env, "chunk_001.srt", nil)

	out, _, err := runCLI(t, env.configPath, "join")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	requireContains(t, out, "WARNING: 1 translated chunks for 3 original chunks")
	if !strings.Contains(out, "Blocks: 3") {
		t.Fatalf("expected 3 joined blocks, got %q", out)
	}
}
