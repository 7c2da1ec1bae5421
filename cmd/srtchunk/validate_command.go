package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"srtchunk/internal/chunking"
	"srtchunk/internal/failures"
	"srtchunk/internal/ledger"
	"srtchunk/internal/logging"
	"srtchunk/internal/validation"
	"srtchunk/internal/workspace"
)

type chunkReport struct {
	Chunk   string             `json:"chunk"`
	Missing bool               `json:"missing,omitempty"`
	Result  *validation.Result `json:"result,omitempty"`
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate [<original> <translated>]",
		Short: "Check translated chunks against their originals",
		Long: "Compare a translated chunk with its original. Block count, sequence numbers and\n" +
			"timestamps must match exactly; blocks over the line limit are errors and lines over\n" +
			"the character limit are warnings. With --all every chunk in the chunks directory is\n" +
			"checked against the file of the same name in the translated directory.",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, logger, runID := ctx.beginRun(cmd, "validate")
			limits := cfg.ValidationLimits()

			store := ctx.openLedger(runCtx, logger)
			defer closeLedger(store, logger)
			rec := newVerdictRecorder(runCtx, store, runID, cfg.Chunking.Extension, logger)

			if all {
				ws, err := ctx.workspace(logger)
				if err != nil {
					return err
				}
				return validateAll(cmd, ws, limits, rec, jsonOutput)
			}

			original, translated := args[0], args[1]
			result, err := validatePair(original, translated, limits)
			if err != nil {
				return err
			}
			rec.record(filepath.Base(original), result)
			logger.Info("chunk validated",
				logging.String(logging.FieldChunk, filepath.Base(translated)),
				logging.Bool("valid", result.Valid),
				logging.Int("errors", len(result.Errors)),
				logging.Int("warnings", len(result.Warnings)),
			)

			if jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				writeReport(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			}
			if !result.Valid {
				return failures.Wrap(failures.ErrValidation, "validate", filepath.Base(translated),
					fmt.Sprintf("%d errors found", len(result.Errors)), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Validate every chunk against its translated counterpart")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

func validatePair(originalPath, translatedPath string, limits validation.Limits) (validation.Result, error) {
	original, err := workspace.ReadDocument(originalPath)
	if err != nil {
		return validation.Result{}, err
	}
	translated, err := workspace.ReadDocument(translatedPath)
	if err != nil {
		return validation.Result{}, err
	}
	return validation.Validate(original, translated, limits), nil
}

func validateAll(cmd *cobra.Command, ws *workspace.Workspace, limits validation.Limits, rec *verdictRecorder, jsonOutput bool) error {
	pairs, err := ws.Pairs()
	if err != nil {
		return err
	}

	reports := make([]chunkReport, 0, len(pairs))
	failed := 0
	for _, pair := range pairs {
		report := chunkReport{Chunk: pair.Name, Missing: pair.Missing}
		if pair.Missing {
			failed++
			reports = append(reports, report)
			continue
		}
		result, err := validatePair(pair.Original, pair.Translated, limits)
		if err != nil {
			return err
		}
		rec.record(pair.Name, result)
		if !result.Valid {
			failed++
		}
		report.Result = &result
		reports = append(reports, report)
	}

	if jsonOutput {
		if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else {
		writeAllReport(cmd, reports, failed)
	}
	if failed > 0 {
		return failures.Wrap(failures.ErrValidation, "validate", "all",
			fmt.Sprintf("%d of %d chunks failed", failed, len(reports)), nil)
	}
	return nil
}

func writeAllReport(cmd *cobra.Command, reports []chunkReport, failed int) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		if r.Missing {
			rows = append(rows, []string{r.Chunk, "MISSING", "-", "-", "-"})
			continue
		}
		status := "OK"
		if !r.Result.Valid {
			status = "FAILED"
		}
		rows = append(rows, []string{
			r.Chunk,
			status,
			strconv.Itoa(len(r.Result.Errors)),
			strconv.Itoa(len(r.Result.Warnings)),
			strconv.Itoa(r.Result.EmptyBlocks),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Chunk", "Status", "Errors", "Warnings", "Empty"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))

	for _, r := range reports {
		if r.Missing {
			fmt.Fprintln(out, colorizeLine(fmt.Sprintf("ERROR: %s: translated file missing", r.Chunk), statusError, colorize))
			continue
		}
		for _, finding := range r.Result.Errors {
			fmt.Fprintln(out, colorizeLine(fmt.Sprintf("ERROR: %s: %s", r.Chunk, finding.Message), statusError, colorize))
		}
	}

	if failed > 0 {
		fmt.Fprintln(out, colorizeLine(fmt.Sprintf("FAILED: %d of %d chunks", failed, len(reports)), statusError, colorize))
		return
	}
	fmt.Fprintln(out, colorizeLine(fmt.Sprintf("OK (%d chunks)", len(reports)), statusOK, colorize))
}

// verdictRecorder attaches validation verdicts to the latest split run.
type verdictRecorder struct {
	ctx     context.Context
	store   *ledger.Store
	runID   string
	ext     string
	logger  *slog.Logger
	splitID string
	loaded  bool
}

func newVerdictRecorder(ctx context.Context, store *ledger.Store, runID, ext string, logger *slog.Logger) *verdictRecorder {
	return &verdictRecorder{ctx: ctx, store: store, runID: runID, ext: ext, logger: logger}
}

func (r *verdictRecorder) record(chunk string, result validation.Result) {
	if r.store == nil {
		return
	}
	if _, ok := chunking.ParseFileName(chunk, r.ext); !ok {
		r.logger.Debug("verdict not recorded; not a chunk file", logging.String(logging.FieldChunk, chunk))
		return
	}
	if !r.loaded {
		r.loaded = true
		latest, err := r.store.LatestSplit(r.ctx)
		if err != nil {
			ledgerWarning(r.logger, "split lookup", err)
			return
		}
		if latest != nil {
			r.splitID = latest.ID
		}
	}
	if r.splitID == "" {
		return
	}
	err := r.store.RecordValidation(r.ctx, ledger.ChunkVerdict{
		SplitID:     r.splitID,
		RunID:       r.runID,
		Chunk:       chunk,
		Valid:       result.Valid,
		Errors:      len(result.Errors),
		Warnings:    len(result.Warnings),
		EmptyBlocks: result.EmptyBlocks,
	})
	if err != nil {
		ledgerWarning(r.logger, "verdict record", err)
	}
}
