package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"srtchunk/internal/chunking"
	"srtchunk/internal/failures"
	"srtchunk/internal/ledger"
	"srtchunk/internal/logging"
	"srtchunk/internal/srt"
	"srtchunk/internal/textutil"
	"srtchunk/internal/workspace"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "split <file.srt>",
		Short: "Split an SRT document into chunk files with context excerpts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, logger, runID := ctx.beginRun(cmd, "split")
			source := args[0]
			logger = logger.With(logging.String(logging.FieldSource, filepath.Base(source)))

			text, err := workspace.ReadDocument(source)
			if err != nil {
				return err
			}
			blocks := srt.Parse(text)
			stats := srt.Summarize(blocks)
			logger.Debug("document parsed",
				logging.Int("blocks", stats.Blocks),
				logging.Int("empty_blocks", stats.EmptyBlocks),
			)

			opts := cfg.ChunkOptions()
			chunks, err := chunking.Split(blocks, opts)
			if errors.Is(err, chunking.ErrNoBlocks) {
				return failures.Wrap(failures.ErrInvalidInput, "split", "parse", fmt.Sprintf("no subtitle blocks found in %s", source), nil)
			}
			if err != nil {
				return failures.Wrap(failures.ErrConfiguration, "split", "plan", "", err)
			}

			ws, err := ctx.workspace(logger)
			if err != nil {
				return err
			}
			if _, err := ws.ReplaceChunks(runCtx, source, chunks); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(chunks))
			for _, chunk := range chunks {
				s := chunk.Summary()
				rows = append(rows, []string{
					chunk.FileName(ws.Extension()),
					strconv.Itoa(s.Blocks),
					fmt.Sprintf("%d-%d", s.First, s.Last),
					strconv.Itoa(s.Context),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Chunk", "Blocks", "Range", "Context"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
				"Total", strconv.Itoa(stats.Blocks),
			))
			fmt.Fprintf(out, "Split %s: %s into %s (%s)\n",
				filepath.Base(source),
				textutil.Plural(stats.Blocks, "block", "blocks"),
				textutil.Plural(len(chunks), "chunk", "chunks"),
				textutil.Plural(stats.EmptyBlocks, "empty block", "empty blocks"),
			)
			fmt.Fprintf(out, "Chunks written to %s\n", ws.Dirs().Chunks)

			logger.Info("split complete",
				logging.Int("blocks", stats.Blocks),
				logging.Int("chunks", len(chunks)),
			)

			store := ctx.openLedger(runCtx, logger)
			defer closeLedger(store, logger)
			if store != nil {
				_, err := store.RecordSplit(runCtx, ledger.SplitRun{
					ID:             runID,
					Source:         filepath.Base(source),
					Chunks:         len(chunks),
					Blocks:         stats.Blocks,
					BlocksPerChunk: opts.BlocksPerChunk,
					ContextBlocks:  opts.ContextBlocks,
				})
				if err != nil {
					ledgerWarning(logger, "split record", err)
				}
			}
			return nil
		},
	}
}
