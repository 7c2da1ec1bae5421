package chunking

import "srtchunk/internal/srt"

// JoinResult is the reassembled document.
type JoinResult struct {
	Text        string
	Blocks      []srt.Block
	EmptyBlocks int
	// PerChunk holds the number of real blocks parsed from each input chunk.
	PerChunk []int
}

// Join strips context excerpts from each translated chunk, concatenates the
// remaining blocks in input order, and renumbers them from 1. Sequence numbers
// found in the chunks are ignored.
func Join(chunks []string) JoinResult {
	var parsed []srt.Block
	perChunk := make([]int, 0, len(chunks))
	for _, text := range chunks {
		blocks := srt.ParseChunk(text)
		perChunk = append(perChunk, len(blocks))
		parsed = append(parsed, blocks...)
	}

	result := JoinResult{
		Blocks:   make([]srt.Block, len(parsed)),
		PerChunk: perChunk,
	}
	for i, b := range parsed {
		result.Blocks[i] = b.Renumbered(i + 1)
		if b.IsEmpty() {
			result.EmptyBlocks++
		}
	}
	result.Text = srt.Format(result.Blocks)
	return result
}
