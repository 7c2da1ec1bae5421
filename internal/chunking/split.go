package chunking

import (
	"strings"

	"srtchunk/internal/srt"
)

// Chunk is a contiguous slice of a document's blocks plus an optional context
// excerpt copied from the end of the previous chunk.
type Chunk struct {
	// Index is 1-based.
	Index int
	// Start is the 0-based document position of the first real block.
	Start   int
	Blocks  []srt.Block
	Context []srt.Block
}

// End returns the 0-based document position just past the last real block.
func (c Chunk) End() int {
	return c.Start + len(c.Blocks)
}

// FileName returns the chunk file name for the given extension.
func (c Chunk) FileName(ext string) string {
	return FileName(c.Index, ext)
}

// Render serializes the chunk: the context excerpt wrapped in sentinel lines
// (when present) followed by the real blocks, each block ending with one blank
// line.
func (c Chunk) Render() string {
	var sb strings.Builder
	if len(c.Context) > 0 {
		sb.WriteString(srt.ContextStart)
		sb.WriteByte('\n')
		for _, b := range c.Context {
			_ = b.Format(&sb)
		}
		sb.WriteString(srt.ContextEnd)
		sb.WriteString("\n\n")
	}
	for _, b := range c.Blocks {
		_ = b.Format(&sb)
	}
	return sb.String()
}

// Summary describes the chunk's real region using 1-based document positions.
type Summary struct {
	Index   int
	First   int
	Last    int
	Blocks  int
	Context int
}

// Summary reports the chunk's position in the document.
func (c Chunk) Summary() Summary {
	return Summary{
		Index:   c.Index,
		First:   c.Start + 1,
		Last:    c.End(),
		Blocks:  len(c.Blocks),
		Context: len(c.Context),
	}
}

// Split partitions blocks into chunks of opts.BlocksPerChunk. Chunks after the
// first receive the opts.ContextBlocks blocks preceding their start as context,
// but only when that many blocks exist before it.
func Split(blocks []srt.Block, opts Options) ([]Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}

	chunks := make([]Chunk, 0, (len(blocks)+opts.BlocksPerChunk-1)/opts.BlocksPerChunk)
	for start := 0; start < len(blocks); start += opts.BlocksPerChunk {
		end := min(start+opts.BlocksPerChunk, len(blocks))
		chunk := Chunk{
			Index:  len(chunks) + 1,
			Start:  start,
			Blocks: cloneBlocks(blocks[start:end]),
		}
		if chunk.Index > 1 && opts.ContextBlocks > 0 && start >= opts.ContextBlocks {
			chunk.Context = cloneBlocks(blocks[start-opts.ContextBlocks : start])
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func cloneBlocks(blocks []srt.Block) []srt.Block {
	out := make([]srt.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
