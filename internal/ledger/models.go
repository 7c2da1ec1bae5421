package ledger

import "time"

// SplitRun is one split pass over a source document.
type SplitRun struct {
	ID             string
	Source         string
	Chunks         int
	Blocks         int
	BlocksPerChunk int
	ContextBlocks  int
	CreatedAt      time.Time
}

// ChunkVerdict is the latest validation outcome for one chunk of a split run.
type ChunkVerdict struct {
	SplitID     string
	RunID       string
	Chunk       string
	Valid       bool
	Errors      int
	Warnings    int
	EmptyBlocks int
	CheckedAt   time.Time
}

// JoinRun is one join pass that produced an output document.
type JoinRun struct {
	ID          string
	SplitID     string
	Output      string
	Chunks      int
	Blocks      int
	EmptyBlocks int
	CreatedAt   time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return newID()
}
