// Package chunking partitions a parsed subtitle document into bounded chunks
// for independent translation and reassembles translated chunks afterwards.
//
// Every chunk after the first is prefixed with a context excerpt: the last few
// blocks of the previous chunk, wrapped in sentinel lines, so a translator can
// keep continuity of meaning across the boundary. The excerpt is never
// authoritative. Join strips it, concatenates the remaining blocks in chunk
// order, and renumbers them by final position.
package chunking
