package srt

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding reports a document that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize decodes raw document bytes as UTF-8, dropping a leading byte-order
// marker, and folds CRLF and lone CR line endings to LF. Bytes that are not
// valid UTF-8 yield ErrInvalidEncoding.
func Normalize(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w (invalid byte at offset %d)", ErrInvalidEncoding, invalidOffset(raw))
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("decode subtitle text: %w", err)
	}
	return NormalizeString(string(decoded)), nil
}

// NormalizeString folds line endings of already decoded text and drops a
// leading UTF-8 byte-order marker if one survived decoding.
func NormalizeString(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	return lineEndings.Replace(text)
}

func invalidOffset(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(raw)
}
