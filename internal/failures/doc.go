// Package failures defines the error markers shared by srtchunk components.
//
// Structural problems (missing directories, unreadable files, documents with
// no subtitle blocks) are fatal and surface as errors wrapped with one of the
// sentinel markers below, so the CLI can classify them with errors.Is. Content
// irregularities are not errors at all: the parser skips them, and validation
// findings are returned as values.
package failures
