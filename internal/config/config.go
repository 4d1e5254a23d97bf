// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/simpleaf/simpleaf/internal/issue"
	"github.com/simpleaf/simpleaf/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "simpleaf"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// envBindings maps config keys to the environment variables that override them.
var envBindings = []struct {
	key string
	env string
}{
	{key: "tools.salmon", env: "SALMON"},
	{key: "tools.alevin_fry", env: "ALEVIN_FRY"},
	{key: "tools.pyroe", env: "PYROE"},
	{key: "alevin_fry_home", env: "ALEVIN_FRY_HOME"},
	{key: "log.level", env: "SIMPLEAF_LOG_LEVEL"},
}

// ConfigDir returns the simpleaf configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading and returns the
// config together with the file it was read from ("" when only defaults and
// the environment applied).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("threads", defaults.Threads)
	v.SetDefault("permit_list.downloader", string(defaults.PermitList.Downloader))
	v.SetDefault("log.level", string(defaults.Log.Level))
	v.SetDefault("tools.salmon", "")
	v.SetDefault("tools.alevin_fry", "")
	v.SetDefault("tools.pyroe", "")
	v.SetDefault("alevin_fry_home", "")

	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, "", fmt.Errorf("binding %s to $%s: %w", b.key, b.env, err)
		}
	}

	resolvedPath, exists, err := resolveConfigPath(opts)
	if err != nil {
		return nil, "", err
	}

	switch {
	case opts.ConfigFilePath != "" && !exists:
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(resolvedPath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'simpleaf config show' to see default configuration").
			Wrap(fmt.Errorf("config file not found: %s", resolvedPath)).
			BuildError()
	case exists:
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'simpleaf config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	default:
		// No config file found: defaults and environment only.
		resolvedPath = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Log.Level = LogLevel(strings.ToLower(strings.TrimSpace(string(cfg.Log.Level))))

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check $SIMPLEAF_LOG_LEVEL: valid levels are debug, info, warn and error").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigPath returns the config file that loading would use and
// whether it exists. An explicit --config path is used exclusively; otherwise
// the config directory is searched first, then the current directory. When no
// file exists the config directory location is returned.
func resolveConfigPath(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		p := opts.ConfigFilePath.String()
		return p, fileExists(p), nil
	}

	cfgDir := opts.ConfigDirPath.String()
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", false, err
		}
		cfgDir = dir
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, true, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, true, nil
	}
	return cuePath, false, nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper, preserving defaults and leaving env overrides on top.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, "#Config", data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config to dir (the platform config
// directory when empty) unless a config file already exists there. It returns
// the config file path and whether it was created.
func CreateDefaultConfig(dir string) (string, bool, error) {
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return "", false, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// simpleaf configuration file\n")
	sb.WriteString("// Environment variables SALMON, ALEVIN_FRY, PYROE, ALEVIN_FRY_HOME\n")
	sb.WriteString("// and SIMPLEAF_LOG_LEVEL override the values below.\n\n")

	if cfg.Tools != (ToolsConfig{}) {
		sb.WriteString("tools: {\n")
		writeOptionalString(&sb, "\t", "salmon", cfg.Tools.Salmon)
		writeOptionalString(&sb, "\t", "alevin_fry", cfg.Tools.AlevinFry)
		writeOptionalString(&sb, "\t", "pyroe", cfg.Tools.Pyroe)
		sb.WriteString("}\n\n")
	}

	writeOptionalString(&sb, "", "alevin_fry_home", cfg.AlevinFryHome)
	fmt.Fprintf(&sb, "threads: %d\n", cfg.Threads)

	sb.WriteString("\npermit_list: {\n")
	fmt.Fprintf(&sb, "\tdownloader: %q\n", cfg.PermitList.Downloader)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders the configuration as TOML.
func GenerateTOML(cfg *Config) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("encoding config as TOML: %w", err)
	}
	return buf.String(), nil
}

func writeOptionalString(sb *strings.Builder, indent, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s%s: %q\n", indent, key, value)
}
