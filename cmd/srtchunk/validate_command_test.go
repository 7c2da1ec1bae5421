package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"srtchunk/internal/failures"
	"srtchunk/internal/testsupport"
	"srtchunk/internal/validation"
)

func splitAndCopy(t *testing.T, env *cliTestEnv, blocks int) {
	t.Helper()
	source := testsupport.WriteSRT(t, env.inputPath("movie.srt"), blocks)
	if _, _, err := runCLI(t, env.configPath, "split", source); err != nil {
		t.Fatalf("split: %v", err)
	}
}

func copyChunk(t *testing.T, env *cliTestEnv, name string, edit func(string) string) {
	t.Helper()
	content := testsupport.ReadFile(t, env.chunkPath(name))
	if edit != nil {
		content = edit(content)
	}
	testsupport.WriteFile(t, env.translatedPath(name), content)
}

func TestValidateIdenticalChunkIsOK(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 7)
	copyChunk(t, env, "chunk_002.srt", nil)

	out, _, err := runCLI(t, env.configPath, "validate", env.chunkPath("chunk_002.srt"), env.translatedPath("chunk_002.srt"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "OK" {
		t.Fatalf("expected bare OK, got %q", out)
	}
}

func TestValidateReportsTamperedTimestamp(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 3)
	copyChunk(t, env, "chunk_001.srt", func(s string) string {
		return strings.Replace(s, testsupport.Timestamp(1), "00:00:09,000 --> 00:00:10,000", 1)
	})

	out, _, err := runCLI(t, env.configPath, "validate", env.chunkPath("chunk_001.srt"), env.translatedPath("chunk_001.srt"))
	if !errors.Is(err, failures.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	requireContains(t, out, "ERROR: Block 1: timestamp modified.")
	requireContains(t, out, "FAILED: 1 errors found")
}

func TestValidateLongLineIsWarning(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 3)
	copyChunk(t, env, "chunk_001.srt", func(s string) string {
		return strings.Replace(s, "Line 2\n", strings.Repeat("x", 46)+"\n", 1)
	})

	out, _, err := runCLI(t, env.configPath, "validate", env.chunkPath("chunk_001.srt"), env.translatedPath("chunk_001.srt"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "WARNING: Block 2, line 1: exceeds 45 characters (has 46)")
	requireContains(t, out, "OK (1 warnings)")
}

func TestValidateJSON(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 3)
	copyChunk(t, env, "chunk_001.srt", func(s string) string {
		return strings.Replace(s, "Line 3\n", "Line 3\nsecond\nthird\n", 1)
	})

	out, _, err := runCLI(t, env.configPath, "validate", "--json", env.chunkPath("chunk_001.srt"), env.translatedPath("chunk_001.srt"))
	if !errors.Is(err, failures.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var result validation.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode json: %v (%q)", err, out)
	}
	if result.Valid || len(result.Errors) != 1 || len(result.Warnings) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	requireContains(t, result.Errors[0].Message, "max 2")
}

func TestValidateAllFlagsMissingTranslations(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 7)
	copyChunk(t, env, "chunk_001.srt", nil)
	copyChunk(t, env, "chunk_003.srt", nil)

	out, _, err := runCLI(t, env.configPath, "validate", "--all")
	if !errors.Is(err, failures.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	requireContains(t, out, "MISSING")
	requireContains(t, out, "ERROR: chunk_002.srt: translated file missing")
	requireContains(t, out, "FAILED: 1 of 3 chunks")

	copyChunk(t, env, "chunk_002.srt", nil)
	out, _, err = runCLI(t, env.configPath, "validate", "--all")
	if err != nil {
		t.Fatalf("validate --all: %v", err)
	}
	requireContains(t, out, "OK (3 chunks)")
	requireNotContains(t, out, "MISSING")
}

func TestValidateArgumentRules(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env.configPath, "validate", "only-one.srt"); err == nil {
		t.Fatal("expected error with one argument")
	}
	if _, _, err := runCLI(t, env.configPath, "validate", "--all", "a.srt", "b.srt"); err == nil {
		t.Fatal("expected error when combining --all with paths")
	}
}

func TestValidateMissingTranslatedFile(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithChunking(3, 1))
	splitAndCopy(t, env, 3)
	_, _, err := runCLI(t, env.configPath, "validate", env.chunkPath("chunk_001.srt"), env.translatedPath("chunk_001.srt"))
	if !errors.Is(err, failures.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
