// Package logging assembles the structured slog loggers used by srtchunk.
//
// It owns the console and JSON handlers, the level and output plumbing, and
// the context helpers that tag log lines with the current run ID, chunk and
// source document. Command reports go to stdout; logs default to stderr plus
// an optional log file so the two never interleave.
package logging
