package srt

import "strings"

// Context excerpt sentinel lines. Each is written on its own line.
const (
	ContextStart = "=== CONTEXT (DO NOT TRANSLATE, only for understanding continuity) ==="
	ContextEnd   = "=== END CONTEXT ==="

	contextStartMarker = "=== CONTEXT"
)

// StripContext removes every context excerpt, sentinel lines included. Spans do
// not nest: a start marker opens a span and the next end marker closes it.
func StripContext(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	inContext := false
	for _, line := range lines {
		if strings.Contains(line, contextStartMarker) {
			inContext = true
			continue
		}
		if strings.Contains(line, ContextEnd) {
			inContext = false
			continue
		}
		if !inContext {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
