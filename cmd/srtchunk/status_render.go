package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"srtchunk/internal/validation"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ""
	}
}

func colorizeLine(line string, kind statusKind, colorize bool) string {
	if !colorize {
		return line
	}
	if color := statusKindColor(kind); color != "" {
		return color + line + ansiReset
	}
	return line
}

// verdictLine summarizes a validation result the way the report ends:
// "OK", "OK (2 warnings, 1 empty blocks)" or "FAILED: 3 errors found".
func verdictLine(result validation.Result) (string, statusKind) {
	if !result.Valid {
		return fmt.Sprintf("FAILED: %d errors found", len(result.Errors)), statusError
	}
	var parts []string
	if len(result.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", len(result.Warnings)))
	}
	if result.EmptyBlocks > 0 {
		parts = append(parts, fmt.Sprintf("%d empty blocks", result.EmptyBlocks))
	}
	if len(parts) == 0 {
		return "OK", statusOK
	}
	return fmt.Sprintf("OK (%s)", strings.Join(parts, ", ")), statusOK
}

// writeReport prints warnings, then errors, then the verdict line.
func writeReport(w io.Writer, result validation.Result, colorize bool) {
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, colorizeLine("WARNING: "+warning.Message, statusWarn, colorize))
	}
	for _, finding := range result.Errors {
		fmt.Fprintln(w, colorizeLine("ERROR: "+finding.Message, statusError, colorize))
	}
	if result.Divergence > 0 {
		fmt.Fprintf(w, "Timings first diverge at block %d\n", result.Divergence)
	}
	line, kind := verdictLine(result)
	if len(result.Warnings) > 0 || len(result.Errors) > 0 || result.Divergence > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, colorizeLine(line, kind, colorize))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
