package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"srtchunk/internal/chunking"
	"srtchunk/internal/failures"
	"srtchunk/internal/ledger"
)

type statusChunk struct {
	Chunk       string `json:"chunk"`
	State       string `json:"state"`
	Errors      int    `json:"errors"`
	Warnings    int    `json:"warnings"`
	EmptyBlocks int    `json:"empty_blocks"`
}

type statusReport struct {
	SplitID   string        `json:"split_id"`
	Source    string        `json:"source"`
	Blocks    int           `json:"blocks"`
	SplitAt   time.Time     `json:"split_at"`
	Chunks    []statusChunk `json:"chunks"`
	Validated int           `json:"validated"`
	Passed    int           `json:"passed"`
	Output    string        `json:"output,omitempty"`
	JoinedAt  *time.Time    `json:"joined_at,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest split and its validation progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LedgerPath()
			if path == "" {
				return failures.Wrap(failures.ErrConfiguration, "status", "", "ledger is disabled in the configuration", nil)
			}
			runCtx := commandCtx(cmd)
			store, err := ledger.Open(runCtx, path)
			if err != nil {
				return failures.Wrap(failures.ErrIO, "status", "open ledger", path, err)
			}
			defer store.Close()

			latest, err := store.LatestSplit(runCtx)
			if err != nil {
				return failures.Wrap(failures.ErrIO, "status", "read ledger", "", err)
			}
			if latest == nil {
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), struct{}{})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No split recorded yet")
				return nil
			}
			verdicts, err := store.Verdicts(runCtx, latest.ID)
			if err != nil {
				return failures.Wrap(failures.ErrIO, "status", "read ledger", "", err)
			}
			join, err := store.LatestJoin(runCtx, latest.ID)
			if err != nil {
				return failures.Wrap(failures.ErrIO, "status", "read ledger", "", err)
			}

			report := buildStatusReport(latest, verdicts, join, cfg.Chunking.Extension)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderStatus(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print status as JSON")
	return cmd
}

func buildStatusReport(split *ledger.SplitRun, verdicts []ledger.ChunkVerdict, join *ledger.JoinRun, ext string) statusReport {
	byChunk := make(map[string]ledger.ChunkVerdict, len(verdicts))
	for _, v := range verdicts {
		byChunk[v.Chunk] = v
	}
	report := statusReport{
		SplitID: split.ID,
		Source:  split.Source,
		Blocks:  split.Blocks,
		SplitAt: split.CreatedAt,
		Chunks:  make([]statusChunk, 0, split.Chunks),
	}
	for i := 1; i <= split.Chunks; i++ {
		name := chunking.FileName(i, ext)
		entry := statusChunk{Chunk: name, State: "pending"}
		if v, ok := byChunk[name]; ok {
			report.Validated++
			entry.Errors, entry.Warnings, entry.EmptyBlocks = v.Errors, v.Warnings, v.EmptyBlocks
			if v.Valid {
				entry.State = "ok"
				report.Passed++
			} else {
				entry.State = "failed"
			}
		}
		report.Chunks = append(report.Chunks, entry)
	}
	if join != nil {
		report.Output = join.Output
		joined := join.CreatedAt
		report.JoinedAt = &joined
	}
	return report
}

func renderStatus(cmd *cobra.Command, report statusReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Source: %s (%d blocks)\n", report.Source, report.Blocks)
	fmt.Fprintf(out, "Split:  %s at %s\n", report.SplitID, report.SplitAt.Local().Format(time.DateTime))

	rows := make([][]string, 0, len(report.Chunks))
	for _, c := range report.Chunks {
		if c.State == "pending" {
			rows = append(rows, []string{c.Chunk, c.State, "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{c.Chunk, c.State, strconv.Itoa(c.Errors), strconv.Itoa(c.Warnings), strconv.Itoa(c.EmptyBlocks)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Chunk", "State", "Errors", "Warnings", "Empty"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))

	kind := statusWarn
	if report.Passed == len(report.Chunks) {
		kind = statusOK
	} else if report.Validated > report.Passed {
		kind = statusError
	}
	fmt.Fprintln(out, colorizeLine(
		fmt.Sprintf("Validated %d of %d chunks, %d passed", report.Validated, len(report.Chunks), report.Passed),
		kind, colorize))
	if report.JoinedAt != nil {
		fmt.Fprintf(out, "Joined: %s at %s\n", report.Output, report.JoinedAt.Local().Format(time.DateTime))
	}
}
