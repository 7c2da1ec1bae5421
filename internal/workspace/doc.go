// Package workspace owns the on-disk layout srtchunk works in.
//
// A workspace has four directories: input (original documents), chunks (split
// output plus the .source marker), translated (chunk files returned by the
// translator under the same names) and output (the joined document). Every
// directory that srtchunk regenerates is guarded by an exclusive flock lock so
// two concurrent runs cannot interleave their writes, and every file is written
// through a temp file and rename.
package workspace
