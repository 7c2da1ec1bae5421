package config

import (
	"srtchunk/internal/chunking"
	"srtchunk/internal/validation"
)

const (
	defaultConfigPath       = "~/.config/srtchunk/config.toml"
	projectConfigName       = "srtchunk.toml"
	defaultInputDir         = "input"
	defaultChunksDir        = "chunks"
	defaultTranslatedDir    = "translated"
	defaultOutputDir        = "output"
	defaultStateDir         = "~/.local/share/srtchunk"
	defaultLedgerName       = "ledger.db"
	defaultLogName          = "srtchunk.log"
	defaultExtension        = ".srt"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:      defaultInputDir,
			ChunksDir:     defaultChunksDir,
			TranslatedDir: defaultTranslatedDir,
			OutputDir:     defaultOutputDir,
			StateDir:      defaultStateDir,
		},
		Chunking: Chunking{
			BlocksPerChunk: chunking.DefaultBlocksPerChunk,
			ContextBlocks:  chunking.DefaultContextBlocks,
			Extension:      defaultExtension,
		},
		Validation: Validation{
			MaxLines:      validation.DefaultMaxLines,
			MaxLineLength: validation.DefaultMaxLineLength,
		},
		Ledger: Ledger{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
