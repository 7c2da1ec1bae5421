// Package validation compares a translated chunk against its original.
//
// Structural drift (block count, sequence numbers, timing lines, too many text
// lines) is reported as errors; overlong lines are style warnings that never
// fail a chunk. Findings are plain values so callers can collect every one of
// them before deciding pass or fail.
package validation
