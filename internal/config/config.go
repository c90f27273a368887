// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"reviewmeta/internal/themes"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format   string `yaml:"format"`
		InputDir string `yaml:"input_dir"`
		Pattern  string `yaml:"pattern"`
		Output   string `yaml:"output"`
		Verbose  bool   `yaml:"verbose"`
		Debug    bool   `yaml:"debug"`
		NoColor  bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Collection settings stamped into the output metadata block
	Collection struct {
		Country              string   `yaml:"country"`
		TargetFirmsMin       int      `yaml:"target_firms_min"`
		ReviewsPerFirmMin    int      `yaml:"reviews_per_firm_min"`
		ReviewsPerFirmTarget int      `yaml:"reviews_per_firm_target"`
		ReviewsPerFirmMax    int      `yaml:"reviews_per_firm_max"`
		PlatformsPriority    []string `yaml:"platforms_priority"`
		Notes                string   `yaml:"notes"`
	} `yaml:"collection"`

	// Analysis thresholds
	Analysis struct {
		MinSampleSize        int `yaml:"min_sample_size"`
		MaxRankingEntries    int `yaml:"max_ranking_entries"`
		MaxQuotesPerPolarity int `yaml:"max_quotes_per_polarity"`
		ExcerptMaxWords      int `yaml:"excerpt_max_words"`
	} `yaml:"analysis"`

	// Taxonomy overrides the built-in theme keyword tables when non-empty
	Taxonomy themes.Taxonomy `yaml:"taxonomy"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{}

	// Set default values
	config.Defaults.Format = "json"
	config.Defaults.InputDir = "data"
	config.Defaults.Pattern = "source_*.json"
	config.Defaults.Output = "public/meta.json"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false

	// Collection defaults mirror the dashboard's published parameters
	config.Collection.Country = "Czech Republic"
	config.Collection.TargetFirmsMin = 20
	config.Collection.ReviewsPerFirmMin = 10
	config.Collection.ReviewsPerFirmTarget = 20
	config.Collection.ReviewsPerFirmMax = 60
	config.Collection.PlatformsPriority = []string{"Google Maps", "Firmy.cz", "Facebook", "Other"}
	config.Collection.Notes = "Merged from local data/source_*.json. Public web sources only. No hallucinated fields."

	config.Analysis.MinSampleSize = 3
	config.Analysis.MaxRankingEntries = 30
	config.Analysis.MaxQuotesPerPolarity = 4
	config.Analysis.ExcerptMaxWords = 25

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("reviewmeta.yaml") {
		return "reviewmeta.yaml"
	}
	if fileExists("reviewmeta.yml") {
		return "reviewmeta.yml"
	}

	// Check for .reviewmeta.yaml in current directory (project-specific config)
	if fileExists(".reviewmeta.yaml") {
		return ".reviewmeta.yaml"
	}
	if fileExists(".reviewmeta.yml") {
		return ".reviewmeta.yml"
	}

	// Check XDG config directory
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "reviewmeta", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}
	xdgConfigFile = filepath.Join(xdgConfig, "reviewmeta", "config.yml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// fileExists checks if a file exists and is not a directory. Any stat error
// counts as absent, not just ENOENT.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

// ValidateConfig validates threshold and taxonomy settings
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Collection.ReviewsPerFirmMin < 0 {
		return fmt.Errorf("collection.reviews_per_firm_min cannot be negative")
	}
	if config.Analysis.MinSampleSize < 1 {
		return fmt.Errorf("analysis.min_sample_size must be at least 1")
	}
	if config.Analysis.MaxRankingEntries < 1 {
		return fmt.Errorf("analysis.max_ranking_entries must be at least 1")
	}
	if config.Analysis.MaxQuotesPerPolarity < 0 {
		return fmt.Errorf("analysis.max_quotes_per_polarity cannot be negative")
	}
	if config.Analysis.ExcerptMaxWords < 1 {
		return fmt.Errorf("analysis.excerpt_max_words must be at least 1")
	}

	for i, cat := range config.Taxonomy {
		if cat.Name == "" {
			return fmt.Errorf("taxonomy category %d has no name", i)
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("taxonomy category %q has no keywords", cat.Name)
		}
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration along with the load error so callers can warn without
// crashing on a missing/bad config file. The returned config is never nil.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
		return cfg, err
	}
	return cfg, nil
}
