package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/getlistd/listd/pkg/cliconfig"
	"github.com/getlistd/listd/pkg/config"
	"github.com/getlistd/listd/pkg/logging"
)

// DefaultConfigFile is the config file looked for in the working directory
// when neither --config nor LISTD_CONFIG names one.
const DefaultConfigFile = "listd.yaml"

// resolveConfig loads the effective configuration: the --config flag wins,
// then LISTD_CONFIG, then ./listd.yaml if present, then built-in defaults.
// Seed-file globs are expanded relative to the config file's directory.
func resolveConfig(flagPath string) (*config.Config, string, error) {
	path := flagPath
	if path == "" {
		path = cliconfig.GetConfigFile()
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path == "" {
		return config.DefaultConfig(), "", nil
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, path, err
	}

	baseDir := filepath.Dir(path)
	if err := cfg.LoadSeedFiles(baseDir); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// buildLogger builds the structured logger from the config with LISTD_*
// env overrides on top and flag values over both.
func buildLogger(cfg *config.Config, levelFlag, formatFlag string) *slog.Logger {
	level := cfg.Logging.Level
	if v := cliconfig.GetLogLevel(); v != "" {
		level = v
	}
	if levelFlag != "" {
		level = levelFlag
	}
	format := cfg.Logging.Format
	if v := cliconfig.GetLogFormat(); v != "" {
		format = v
	}
	if formatFlag != "" {
		format = formatFlag
	}

	return logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: logging.ParseFormat(format),
	})
}

// describeConfigError rewrites the config sentinel errors into actionable
// messages for command output.
func describeConfigError(path string, err error) error {
	switch {
	case errors.Is(err, config.ErrFileNotFound):
		return fmt.Errorf("config file %s not found (run 'listd init' to create one)", path)
	case errors.Is(err, config.ErrValidation):
		return fmt.Errorf("config file %s is invalid: %w", path, err)
	default:
		return err
	}
}
