package chunking

import (
	"fmt"
	"strconv"
	"strings"
)

const fileNamePrefix = "chunk_"

// FileName returns the chunk file name for a 1-based index, e.g. chunk_007.srt.
// Zero padding keeps lexicographic order equal to index order.
func FileName(index int, ext string) string {
	return fmt.Sprintf("%s%03d%s", fileNamePrefix, index, ext)
}

// ParseFileName extracts the chunk index from a file name produced by FileName.
func ParseFileName(name, ext string) (int, bool) {
	if !strings.HasPrefix(name, fileNamePrefix) || !strings.HasSuffix(name, ext) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, fileNamePrefix), ext)
	if len(digits) < 3 {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}
