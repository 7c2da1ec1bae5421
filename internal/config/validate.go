package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateChunking(); err != nil {
		return err
	}
	if err := c.validateValidation(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	dirs := map[string]string{
		"paths.chunks_dir":     c.Paths.ChunksDir,
		"paths.translated_dir": c.Paths.TranslatedDir,
		"paths.output_dir":     c.Paths.OutputDir,
	}
	seen := make(map[string]string, len(dirs))
	for _, key := range []string{"paths.chunks_dir", "paths.translated_dir", "paths.output_dir"} {
		dir := filepath.Clean(dirs[key])
		if other, ok := seen[dir]; ok {
			return fmt.Errorf("%s and %s must point to different directories", other, key)
		}
		seen[dir] = key
	}
	return nil
}

func (c *Config) validateChunking() error {
	if err := c.ChunkOptions().Validate(); err != nil {
		return fmt.Errorf("chunking: %w", err)
	}
	if strings.ContainsAny(c.Chunking.Extension, `/\*?`) {
		return fmt.Errorf("chunking.extension %q must be a plain file extension", c.Chunking.Extension)
	}
	return nil
}

func (c *Config) validateValidation() error {
	if c.Validation.MaxLines <= 0 {
		return errors.New("validation.max_lines must be positive")
	}
	if c.Validation.MaxLineLength <= 0 {
		return errors.New("validation.max_line_length must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
