package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"srtchunk/internal/srt"
)

const (
	DefaultMaxLines      = 2
	DefaultMaxLineLength = 45
)

// Finding kinds.
const (
	KindBlockCount = "block_count"
	KindSequence   = "sequence"
	KindTimestamp  = "timestamp"
	KindLineCount  = "line_count"
	KindLineLength = "line_length"
)

// Limits bounds the per-block formatting of a translated chunk.
type Limits struct {
	MaxLines      int
	MaxLineLength int
}

// DefaultLimits returns the standard subtitle formatting limits.
func DefaultLimits() Limits {
	return Limits{MaxLines: DefaultMaxLines, MaxLineLength: DefaultMaxLineLength}
}

// Finding is one validation error or warning. Block and Line are 1-based; zero
// means the finding is not tied to a block or line.
type Finding struct {
	Kind    string `json:"kind"`
	Block   int    `json:"block,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return f.Message
}

// Result is the outcome of validating one chunk pair.
type Result struct {
	Valid       bool      `json:"valid"`
	Errors      []Finding `json:"errors"`
	Warnings    []Finding `json:"warnings"`
	EmptyBlocks int       `json:"empty_blocks"`
	// Divergence is the first 1-based position whose timing lines differ when
	// block counts do not match, or 0. It hints at where a block was inserted
	// or dropped and is neither an error nor a warning.
	Divergence int `json:"divergence,omitempty"`
}

// Validate strips context excerpts from both texts, parses them, and compares
// the translated blocks against the original ones position by position.
func Validate(original, translated string, limits Limits) Result {
	return Compare(srt.ParseChunk(original), srt.ParseChunk(translated), limits)
}

// Compare checks already parsed block sequences. A block count mismatch is
// reported alone since positional comparison is meaningless after it.
func Compare(original, translated []srt.Block, limits Limits) Result {
	result := Result{Errors: []Finding{}, Warnings: []Finding{}}

	if len(original) != len(translated) {
		result.Errors = append(result.Errors, Finding{
			Kind:    KindBlockCount,
			Message: fmt.Sprintf("Block count: original %d, translated %d", len(original), len(translated)),
		})
		result.Divergence = firstDivergence(original, translated)
		return result
	}

	for i := range original {
		idx := i + 1
		orig, trans := original[i], translated[i]

		if orig.Sequence != trans.Sequence {
			result.Errors = append(result.Errors, Finding{
				Kind:  KindSequence,
				Block: idx,
				Message: fmt.Sprintf("Block %d: sequence number modified. Original: %s, Translated: %s",
					idx, orig.Sequence, trans.Sequence),
			})
		}

		origTiming, transTiming := trimTrailing(orig.Timestamp), trimTrailing(trans.Timestamp)
		if origTiming != transTiming {
			result.Errors = append(result.Errors, Finding{
				Kind:  KindTimestamp,
				Block: idx,
				Message: fmt.Sprintf("Block %d: timestamp modified. Original: '%s', Translated: '%s'",
					idx, origTiming, transTiming),
			})
		}

		if trans.IsEmpty() {
			result.EmptyBlocks++
		}

		if len(trans.Lines) > limits.MaxLines {
			result.Errors = append(result.Errors, Finding{
				Kind:    KindLineCount,
				Block:   idx,
				Message: fmt.Sprintf("Block %d: has %d text lines, max %d", idx, len(trans.Lines), limits.MaxLines),
			})
		}

		for j, line := range trans.Lines {
			length := utf8.RuneCountInString(trimTrailing(line))
			if length > limits.MaxLineLength {
				result.Warnings = append(result.Warnings, Finding{
					Kind:  KindLineLength,
					Block: idx,
					Line:  j + 1,
					Message: fmt.Sprintf("Block %d, line %d: exceeds %d characters (has %d)",
						idx, j+1, limits.MaxLineLength, length),
				})
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func firstDivergence(original, translated []srt.Block) int {
	n := min(len(original), len(translated))
	for i := 0; i < n; i++ {
		if trimTrailing(original[i].Timestamp) != trimTrailing(translated[i].Timestamp) {
			return i + 1
		}
	}
	return n + 1
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
