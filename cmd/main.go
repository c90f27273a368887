// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"reviewmeta/internal/config"
	"reviewmeta/internal/core"
	"reviewmeta/internal/formatters"
	_ "reviewmeta/internal/formatters/csv"
	_ "reviewmeta/internal/formatters/json"
	_ "reviewmeta/internal/formatters/text"
	_ "reviewmeta/internal/formatters/yaml"
	"reviewmeta/internal/help"
	"reviewmeta/internal/observability"
	"reviewmeta/internal/themes"
	"reviewmeta/internal/version"
)

// configFlags holds command line flag values
type configFlags struct {
	inputDir       string
	pattern        string
	output         string
	outputFormat   string
	configFile     string
	verbose        bool
	debug          bool
	noColor        bool
	compact        bool
	listFormats    bool
	listCategories bool
	showVersion    bool
	showHelp       bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	inputDir string
	pattern  string
	output   string
	format   string
	verbose  bool
	debug    bool
	noColor  bool
	compact  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return 0
	}

	cfg := loadConfiguration(flags.configFile)
	final := resolveConfiguration(cfg, flags)

	// Disable colors when stdout is not a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		final.noColor = true
	}

	if flags.showHelp {
		help.NewSystem(final.noColor).PrintUsage()
		return 0
	}
	if flags.listFormats {
		help.NewSystem(final.noColor).PrintFormats()
		return 0
	}
	if flags.listCategories {
		taxonomy := themes.DefaultTaxonomy
		if len(cfg.Taxonomy) > 0 {
			taxonomy = cfg.Taxonomy
		}
		help.NewSystem(final.noColor).PrintCategories(taxonomy)
		return 0
	}

	if _, ok := formatters.Get(final.format); !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q (see -list-formats)\n", final.format)
		return 1
	}

	observer := observability.NewStandardObserver(observability.ObservabilityOff, os.Stderr)
	if final.debug {
		observer = observability.NewStandardObserver(observability.ObservabilityDebug, os.Stderr)
	}

	result, err := core.Run(core.RunConfig{
		InputDir: final.inputDir,
		Pattern:  final.pattern,
		Config:   cfg,
		Observer: observer,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	output, err := formatters.Export(final.format, result.Document, formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: final.noColor,
		Compact: final.compact,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeOutput(final.output, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	quality := result.Document.MergedDataset.DatasetQuality
	if final.output != "-" {
		fmt.Printf("Wrote %s (firms=%d, reviews=%d, skipped_inputs=%d)\n",
			final.output, quality.FirmsCollected, quality.ReviewsCollected, len(result.Skipped))
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped invalid JSON input: %s\n", s)
	}

	return 0
}

func parseFlags() *configFlags {
	flags := &configFlags{}

	flag.StringVar(&flags.inputDir, "input", "", "Directory holding source JSON files")
	flag.StringVar(&flags.pattern, "pattern", "", "Source file glob pattern")
	flag.StringVar(&flags.output, "output", "", "Output file path ('-' for stdout)")
	flag.StringVar(&flags.outputFormat, "format", "", "Output format (json, yaml, csv, text)")
	flag.StringVar(&flags.configFile, "config", "", "Configuration file path")
	flag.BoolVar(&flags.verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&flags.debug, "debug", false, "Per-phase timing on stderr")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.compact, "compact", false, "Compact output where supported")
	flag.BoolVar(&flags.listFormats, "list-formats", false, "List available output formats")
	flag.BoolVar(&flags.listCategories, "list-categories", false, "List theme categories")
	flag.BoolVar(&flags.showVersion, "version", false, "Print version information")
	flag.BoolVar(&flags.showHelp, "help", false, "Print help")
	flag.Parse()

	return flags
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	cfg, err := config.LoadConfigOrDefault(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
	}
	return cfg
}

// resolveConfiguration resolves final values from config file defaults and
// command line flags; flags that were explicitly set win.
func resolveConfiguration(cfg *config.Config, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{
		inputDir: cfg.Defaults.InputDir,
		pattern:  cfg.Defaults.Pattern,
		output:   cfg.Defaults.Output,
		format:   cfg.Defaults.Format,
		verbose:  cfg.Defaults.Verbose,
		debug:    cfg.Defaults.Debug,
		noColor:  cfg.Defaults.NoColor,
	}

	if isFlagSet("input") && flags.inputDir != "" {
		final.inputDir = flags.inputDir
	}
	if isFlagSet("pattern") && flags.pattern != "" {
		final.pattern = flags.pattern
	}
	if isFlagSet("output") && flags.output != "" {
		final.output = flags.output
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}
	if isFlagSet("compact") {
		final.compact = flags.compact
	}

	return final
}

// isFlagSet checks whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// writeOutput writes the formatted document to the output target, creating
// parent directories as needed. "-" writes to stdout.
func writeOutput(target, content string) error {
	if target == "-" {
		fmt.Println(content)
		return nil
	}
	if dir := filepath.Dir(target); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}
