// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DownloaderWget fetches permit lists with an external wget.
	DownloaderWget PermitListDownloader = "wget"
	// DownloaderHTTP fetches permit lists with the built-in HTTP client.
	DownloaderHTTP PermitListDownloader = "http"

	// LogLevelDebug enables debug output.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn only reports warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError only reports errors.
	LogLevelError LogLevel = "error"

	// DefaultThreads is the thread count used when neither flag nor config sets one.
	DefaultThreads = 16
)

var (
	// ErrInvalidPermitListDownloader is returned when a PermitListDownloader value is not recognized.
	ErrInvalidPermitListDownloader = errors.New("invalid permit list downloader")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidThreads is returned when the thread count is below one.
	ErrInvalidThreads = errors.New("invalid thread count")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// PermitListDownloader selects how permit lists are downloaded.
	PermitListDownloader string

	// LogLevel is the minimum level of log messages printed.
	LogLevel string

	// Config holds the application configuration.
	Config struct {
		// Tools holds explicit executable paths.
		Tools ToolsConfig `json:"tools" mapstructure:"tools" toml:"tools"`
		// AlevinFryHome is the permit list cache root.
		AlevinFryHome string `json:"alevin_fry_home" mapstructure:"alevin_fry_home" toml:"alevin_fry_home"`
		// Threads is the default thread count for index and quant.
		Threads int `json:"threads" mapstructure:"threads" toml:"threads"`
		// PermitList configures permit list downloads.
		PermitList PermitListConfig `json:"permit_list" mapstructure:"permit_list" toml:"permit_list"`
		// Log configures logging.
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
	}

	// ToolsConfig holds explicit executable paths; empty means "search PATH".
	ToolsConfig struct {
		Salmon    string `json:"salmon" mapstructure:"salmon" toml:"salmon"`
		AlevinFry string `json:"alevin_fry" mapstructure:"alevin_fry" toml:"alevin_fry"`
		Pyroe     string `json:"pyroe" mapstructure:"pyroe" toml:"pyroe"`
	}

	// PermitListConfig configures permit list downloads.
	PermitListConfig struct {
		Downloader PermitListDownloader `json:"downloader" mapstructure:"downloader" toml:"downloader"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level"`
	}

	// InvalidConfigError collects every field-level validation failure.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// String returns the downloader name.
func (d PermitListDownloader) String() string { return string(d) }

// Validate returns an error if the downloader is not recognized.
func (d PermitListDownloader) Validate() error {
	switch d {
	case DownloaderWget, DownloaderHTTP:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: wget, http)", ErrInvalidPermitListDownloader, string(d))
	}
}

// String returns the level name.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the level is not recognized.
// Matching is case-insensitive since the value often comes from the environment.
func (l LogLevel) Validate() error {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, string(l))
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks values that may have bypassed the CUE schema through
// environment variables.
func (c *Config) Validate() error {
	var errs []error
	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads))
	}
	if err := c.PermitList.Downloader.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// ToolOverride returns the configured executable for a tool name
// ("salmon", "alevin-fry" or "pyroe"), or "" when unset.
func (c *Config) ToolOverride(tool string) string {
	switch tool {
	case "salmon":
		return c.Tools.Salmon
	case "alevin-fry":
		return c.Tools.AlevinFry
	case "pyroe":
		return c.Tools.Pyroe
	default:
		return ""
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Threads: DefaultThreads,
		PermitList: PermitListConfig{
			Downloader: DownloaderWget,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}
