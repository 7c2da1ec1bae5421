package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"srtchunk/internal/config"
	"srtchunk/internal/failures"
	"srtchunk/internal/ledger"
	"srtchunk/internal/logging"
	"srtchunk/internal/workspace"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "--log-level", "", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = failures.Wrap(failures.ErrIO, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor returns the process logger tagged with component. Logger setup
// failures fall back to stderr-only logging so commands keep working.
func (c *commandContext) loggerFor(component string) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			fallback, _ := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			if fallback == nil {
				fallback = logging.NewNop()
			}
			logging.WarnWithContext(fallback, "log file unavailable", "log_setup",
				logging.Error(err),
				logging.String(logging.FieldImpact, "logs are written to stderr only"),
			)
			logger = fallback
		}
		c.logger = logger
	})
	return logging.NewComponentLogger(c.logger, component)
}

func (c *commandContext) workspace(logger *slog.Logger) (*workspace.Workspace, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return workspace.FromConfig(cfg, logger), nil
}

// openLedger opens the progress database. It returns nil when the ledger is
// disabled or unavailable; the latter is logged as a warning.
func (c *commandContext) openLedger(ctx context.Context, logger *slog.Logger) *ledger.Store {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil
	}
	path := cfg.LedgerPath()
	if path == "" {
		return nil
	}
	store, err := ledger.Open(ctx, path)
	if err != nil {
		logging.WarnWithContext(logger, "ledger unavailable", "ledger_open",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorKind, failures.Kind(err)),
			logging.String(logging.FieldImpact, "progress will not be recorded"),
		)
		return nil
	}
	return store
}

// beginRun assigns a run ID to the command and returns the tagged context and logger.
func (c *commandContext) beginRun(cmd *cobra.Command, component string) (context.Context, *slog.Logger, string) {
	runID := ledger.NewRunID()
	ctx := logging.WithRunID(commandCtx(cmd), runID)
	return ctx, logging.WithContext(ctx, c.loggerFor(component)), runID
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func closeLedger(store *ledger.Store, logger *slog.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Debug("ledger close failed", logging.Error(err))
	}
}

func ledgerWarning(logger *slog.Logger, op string, err error) {
	logging.WarnWithContext(logger, fmt.Sprintf("ledger %s failed", op), "ledger_write",
		logging.Error(err),
		logging.String(logging.FieldErrorKind, failures.Kind(err)),
		logging.String(logging.FieldImpact, "status output will not reflect this run"),
	)
}
