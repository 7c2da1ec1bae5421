package chunking_test

import (
	"fmt"

	"srtchunk/internal/srt"
)

// makeBlocks builds n blocks with distinct timing lines. Every seventh block is
// empty and every fifth carries two lines.
func makeBlocks(n int) []srt.Block {
	blocks := make([]srt.Block, 0, n)
	for i := 1; i <= n; i++ {
		b := srt.Block{
			Sequence:  fmt.Sprint(i),
			Timestamp: fmt.Sprintf("00:%02d:%02d,000 --> 00:%02d:%02d,500", i/60, i%60, i/60, i%60),
		}
		switch {
		case i%7 == 0:
		case i%5 == 0:
			b.Lines = []string{fmt.Sprintf("line %d a", i), fmt.Sprintf("line %d b", i)}
		default:
			b.Lines = []string{fmt.Sprintf("line %d", i)}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func timestamps(blocks []srt.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Timestamp
	}
	return out
}
