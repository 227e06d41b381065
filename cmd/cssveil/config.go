package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssveil"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssveil.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSVEIL_* prefix)
	if err := k.Load(env.Provider("CSSVEIL_", ".", func(s string) string {
		// CSSVEIL_RUN_SOURCE -> run.source
		// CSSVEIL_SCAN_CSS -> scan.css
		// CSSVEIL_PREFIX -> prefix
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSVEIL_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildEngineConfig constructs the library's Config struct from koanf state.
func buildEngineConfig() (cssveil.Config, error) {
	mode, err := cssveil.ParseMode(getStringWithFallback("mode", "mode", "context"))
	if err != nil {
		return cssveil.Config{}, err
	}

	config := cssveil.Config{
		Prefix:    getStringWithFallback("prefix", "prefix", "v"),
		Width:     getIntWithFallback("width", "width", 8),
		Mode:      mode,
		ScanCSS:   getBoolWithFallback("scan-css", "scan.css", true),
		ScanJS:    getBoolWithFallback("scan-js", "scan.js", true),
		MinLength: getIntWithFallback("min-length", "scan.min-length", 3),
		Jobs:      getIntWithFallback("jobs", "jobs", 0),
	}

	// Whitelist: flag key first, then config key; empty keeps the defaults.
	if wl := k.Strings("whitelist"); len(wl) > 0 {
		config.Whitelist = wl
	}

	return config, nil
}

// buildProviderOptions constructs DirProvider options from koanf state.
func buildProviderOptions() cssveil.DirProviderOptions {
	opts := cssveil.DirProviderOptions{
		Root:   getStringWithFallback("source", "run.source", "."),
		Output: getStringWithFallback("output", "run.output", "encrypted"),
	}

	if includes := k.Strings("include"); len(includes) > 0 {
		opts.Includes = includes
	} else if includes := k.Strings("run.include"); len(includes) > 0 {
		opts.Includes = includes
	}

	if dirs := k.Strings("exclude-dirs"); len(dirs) > 0 {
		opts.ExcludedDirs = dirs
	} else if dirs := k.Strings("run.exclude-dirs"); len(dirs) > 0 {
		opts.ExcludedDirs = dirs
	}

	return opts
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
