package srt

import "strings"

// Parse converts normalized subtitle text into blocks.
//
// A block starts at a digits-only line immediately followed by a line that
// contains the timing separator. Text lines run until a blank line or until
// the next digits-only line whose follower is a timing line. Candidate
// sequence lines without a timing line are skipped one line at a time.
func Parse(text string) []Block {
	lines := strings.Split(text, "\n")
	var blocks []Block

	i := 0
	for i < len(lines) {
		for i < len(lines) && isBlank(lines[i]) {
			i++
		}
		if i >= len(lines) {
			break
		}

		if !isSequenceLine(lines[i]) {
			i++
			continue
		}
		seq := strings.TrimSpace(lines[i])
		i++
		if i >= len(lines) {
			break
		}
		if !isTimingLine(lines[i]) {
			continue
		}
		timestamp := lines[i]
		i++

		var text []string
		for i < len(lines) {
			line := lines[i]
			if isBlank(line) {
				i++
				break
			}
			if startsBlock(lines, i) {
				break
			}
			text = append(text, line)
			i++
		}

		blocks = append(blocks, Block{Sequence: seq, Timestamp: timestamp, Lines: text})
	}
	return blocks
}

// ParseChunk strips context excerpts before parsing.
func ParseChunk(text string) []Block {
	return Parse(StripContext(text))
}

func startsBlock(lines []string, i int) bool {
	return isSequenceLine(lines[i]) && i+1 < len(lines) && isTimingLine(lines[i+1])
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isTimingLine(line string) bool {
	return strings.Contains(line, TimingSeparator)
}

func isSequenceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] < '0' || trimmed[i] > '9' {
			return false
		}
	}
	return true
}
