package srt

import (
	"io"
	"strconv"
	"strings"
)

// TimingSeparator marks the timing line of a block.
const TimingSeparator = " --> "

// Block is one subtitle entry. Sequence and Timestamp hold the literal text as
// it appeared in the source document.
type Block struct {
	Sequence  string
	Timestamp string
	Lines     []string
}

// IsEmpty reports whether the block carries no caption text.
func (b Block) IsEmpty() bool {
	return len(b.Lines) == 0
}

// Clone returns a copy that shares no backing storage with b.
func (b Block) Clone() Block {
	out := Block{Sequence: b.Sequence, Timestamp: b.Timestamp}
	if len(b.Lines) > 0 {
		out.Lines = make([]string, len(b.Lines))
		copy(out.Lines, b.Lines)
	}
	return out
}

// Renumbered returns a copy of b with the given sequence number.
func (b Block) Renumbered(seq int) Block {
	out := b.Clone()
	out.Sequence = strconv.Itoa(seq)
	return out
}

// Format writes the block as sequence line, timing line, text lines and one
// blank separator line.
func (b Block) Format(w io.Writer) error {
	var sb strings.Builder
	sb.Grow(len(b.Sequence) + len(b.Timestamp) + 16*len(b.Lines) + 4)
	sb.WriteString(b.Sequence)
	sb.WriteByte('\n')
	sb.WriteString(b.Timestamp)
	sb.WriteByte('\n')
	for _, line := range b.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// Format serializes blocks in order.
func Format(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		_ = b.Format(&sb)
	}
	return sb.String()
}

// Stats summarizes a block sequence.
type Stats struct {
	Blocks      int
	EmptyBlocks int
}

// Summarize counts blocks and empty blocks.
func Summarize(blocks []Block) Stats {
	stats := Stats{Blocks: len(blocks)}
	for _, b := range blocks {
		if b.IsEmpty() {
			stats.EmptyBlocks++
		}
	}
	return stats
}
