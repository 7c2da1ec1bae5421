// Package srt parses and re-serializes SubRip subtitle documents.
//
// Parsing is deliberately lenient: subtitle files in the wild are irregular, so
// unparsable spans are skipped instead of failing the whole document. Blocks
// keep their sequence number and timing line as literal text so that chunk
// validation can compare them byte-for-byte, and a block with no caption text
// is still a block (its timing slot must survive translation).
//
// The package also owns the context excerpt sentinels that the chunking layer
// injects between chunks, and the StripContext helper that removes them before
// any comparison or reassembly.
package srt
