package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"srtchunk/internal/chunking"
	"srtchunk/internal/failures"
	"srtchunk/internal/ledger"
	"srtchunk/internal/logging"
	"srtchunk/internal/workspace"
)

func newJoinCommand(ctx *commandContext) *cobra.Command {
	var outputName string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join translated chunks into one renumbered document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger, runID := ctx.beginRun(cmd, "join")
			ws, err := ctx.workspace(logger)
			if err != nil {
				return err
			}

			paths, err := ws.ListChunks(ws.Dirs().Translated)
			if err != nil {
				return err
			}
			texts := make([]string, 0, len(paths))
			for _, path := range paths {
				if err := runCtx.Err(); err != nil {
					return err
				}
				text, err := workspace.ReadDocument(path)
				if err != nil {
					return err
				}
				texts = append(texts, text)
			}

			result := chunking.Join(texts)
			for i, count := range result.PerChunk {
				logger.Debug("chunk joined",
					logging.String(logging.FieldChunk, filepath.Base(paths[i])),
					logging.Int("blocks", count),
				)
			}

			name := outputName
			if name == "" {
				if name, err = ws.ResolveOutputName(); err != nil {
					return err
				}
			}
			outPath, err := ws.WriteOutput(runCtx, name, result.Text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if originals, err := ws.ListChunks(ws.Dirs().Chunks); err == nil && len(originals) != len(paths) {
				fmt.Fprintf(out, "WARNING: %d translated chunks for %d original chunks\n", len(paths), len(originals))
			} else if err != nil && !errors.Is(err, failures.ErrNotFound) {
				logger.Debug("original chunk listing failed", logging.Error(err))
			}
			fmt.Fprintf(out, "Chunks processed: %d\n", len(paths))
			fmt.Fprintf(out, "Blocks: %d\n", len(result.Blocks))
			if result.EmptyBlocks > 0 {
				fmt.Fprintf(out, "Empty blocks: %d (kept with their timing)\n", result.EmptyBlocks)
			}
			fmt.Fprintf(out, "Output: %s\n", outPath)

			logger.Info("join complete",
				logging.Int("chunks", len(paths)),
				logging.Int("blocks", len(result.Blocks)),
				logging.Int("empty_blocks", result.EmptyBlocks),
			)

			store := ctx.openLedger(runCtx, logger)
			defer closeLedger(store, logger)
			if store != nil {
				var splitID string
				if latest, err := store.LatestSplit(runCtx); err != nil {
					ledgerWarning(logger, "split lookup", err)
				} else if latest != nil {
					splitID = latest.ID
				}
				_, err := store.RecordJoin(runCtx, ledger.JoinRun{
					ID:          runID,
					SplitID:     splitID,
					Output:      outPath,
					Chunks:      len(paths),
					Blocks:      len(result.Blocks),
					EmptyBlocks: result.EmptyBlocks,
				})
				if err != nil {
					ledgerWarning(logger, "join record", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputName, "output", "o", "", "Output file name (default: derived from the input directory)")
	return cmd
}
