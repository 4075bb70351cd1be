// Package config handles bsptool configuration loading and management.
package config

import "runtime"

// Config holds all bsptool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Scan    ScanConfig    `yaml:"scan"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScanConfig holds settings for batch decoding of a directory tree.
type ScanConfig struct {
	Workers        int    `yaml:"workers"`         // Files decoded in parallel
	Pattern        string `yaml:"pattern"`         // doublestar glob relative to the scan root
	SkipDuplicates bool   `yaml:"skip_duplicates"` // Decode byte-identical files once
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Scan: ScanConfig{
			Workers:        runtime.NumCPU(),
			Pattern:        "**/*.bsp",
			SkipDuplicates: true,
		},
	}
}
