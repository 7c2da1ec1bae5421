// Command srtchunk prepares SRT subtitle files for chunked translation.
//
// `srtchunk split` cuts a document into numbered chunk files, each carrying a
// short read-only excerpt of the preceding dialogue for continuity.
// `srtchunk validate` checks a translated chunk against its original for
// structural fidelity and formatting limits, and `srtchunk join` stitches the
// translated chunks back into one renumbered document. `srtchunk status`
// reports progress recorded in the ledger.
package main
