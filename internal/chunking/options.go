package chunking

import "errors"

const (
	DefaultBlocksPerChunk = 150
	DefaultContextBlocks  = 5
)

// ErrNoBlocks is returned when a document yields no subtitle blocks.
var ErrNoBlocks = errors.New("no subtitle blocks")

// Options controls chunk sizing.
type Options struct {
	// BlocksPerChunk is the number of real blocks per chunk. The last chunk may
	// be smaller.
	BlocksPerChunk int
	// ContextBlocks is the number of trailing blocks of the previous chunk
	// copied into a chunk's context excerpt. Zero disables excerpts.
	ContextBlocks int
}

// DefaultOptions returns the standard chunk sizing.
func DefaultOptions() Options {
	return Options{BlocksPerChunk: DefaultBlocksPerChunk, ContextBlocks: DefaultContextBlocks}
}

// Validate ensures the options describe a usable chunk plan.
func (o Options) Validate() error {
	if o.BlocksPerChunk <= 0 {
		return errors.New("blocks_per_chunk must be > 0")
	}
	if o.ContextBlocks < 0 {
		return errors.New("context_blocks must be >= 0")
	}
	return nil
}
