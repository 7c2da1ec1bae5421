package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"srtchunk/internal/chunking"
	"srtchunk/internal/validation"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the workspace directory layout.
type Paths struct {
	InputDir      string `toml:"input_dir"`
	ChunksDir     string `toml:"chunks_dir"`
	TranslatedDir string `toml:"translated_dir"`
	OutputDir     string `toml:"output_dir"`
	StateDir      string `toml:"state_dir"`
}

// Chunking contains chunk sizing and file naming.
type Chunking struct {
	BlocksPerChunk int    `toml:"blocks_per_chunk"`
	ContextBlocks  int    `toml:"context_blocks"`
	Extension      string `toml:"extension"`
}

// Validation contains per-block formatting limits for translated chunks.
type Validation struct {
	MaxLines      int `toml:"max_lines"`
	MaxLineLength int `toml:"max_line_length"`
}

// Ledger controls the progress database.
type Ledger struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File receives a copy of every log line. Empty disables file logging.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for srtchunk.
//
// Configuration sections by subsystem:
//   - Paths: input, chunk, translated, output and state directories
//   - Chunking: blocks per chunk, context excerpt size, chunk file extension
//   - Validation: max text lines per block and max characters per line
//   - Ledger: SQLite progress record
//   - Logging: log format, level and file
type Config struct {
	Paths      Paths      `toml:"paths"`
	Chunking   Chunking   `toml:"chunking"`
	Validation Validation `toml:"validation"`
	Ledger     Ledger     `toml:"ledger"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories srtchunk writes into. The input and
// translated directories are owned by the user and are not created.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ChunksDir, c.Paths.OutputDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ChunkOptions returns the chunk sizing for the splitter.
func (c *Config) ChunkOptions() chunking.Options {
	return chunking.Options{
		BlocksPerChunk: c.Chunking.BlocksPerChunk,
		ContextBlocks:  c.Chunking.ContextBlocks,
	}
}

// ValidationLimits returns the per-block limits for the validator.
func (c *Config) ValidationLimits() validation.Limits {
	return validation.Limits{
		MaxLines:      c.Validation.MaxLines,
		MaxLineLength: c.Validation.MaxLineLength,
	}
}

// LedgerPath returns the progress database location, or "" when disabled.
func (c *Config) LedgerPath() string {
	if !c.Ledger.Enabled {
		return ""
	}
	return c.Ledger.Path
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
