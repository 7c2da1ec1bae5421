package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"srtchunk/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose workspace and state directories live in a
// unique temp directory per test. File logging is disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.ChunksDir = filepath.Join(base, "chunks")
	cfgVal.Paths.TranslatedDir = filepath.Join(base, "translated")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Ledger.Path = filepath.Join(base, "state", "ledger.db")
	cfgVal.Logging.File = ""

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithChunking overrides the chunk sizing.
func WithChunking(blocksPerChunk, contextBlocks int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chunking.BlocksPerChunk = blocksPerChunk
		b.cfg.Chunking.ContextBlocks = contextBlocks
	}
}

// WithLedgerDisabled turns off the progress database.
func WithLedgerDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.Enabled = false
	}
}

// WriteConfigFile serializes cfg as TOML into its base directory and returns
// the file path, for tests that drive the CLI with --config.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	out := *cfg
	if out.Logging.File == "" {
		out.Logging.File = "none"
	}
	data, err := toml.Marshal(out)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(filepath.Dir(cfg.Paths.StateDir), "srtchunk.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
