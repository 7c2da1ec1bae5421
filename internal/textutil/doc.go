// Package textutil provides small text helpers shared by the CLI and workspace:
// filename sanitization and count labels for human-readable summaries.
package textutil
