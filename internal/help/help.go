// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"reviewmeta/internal/formatters"
	"reviewmeta/internal/themes"
)

// System manages help content for the application
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"subtitle": color.New(color.FgCyan, color.Bold),
			"flag":     color.New(color.FgGreen),
		},
	}
}

// PrintUsage prints the top-level CLI usage text
func (s *System) PrintUsage() {
	s.colors["title"].Println("reviewmeta - merge and analyze law-firm review datasets")
	fmt.Println()
	fmt.Println("Merges data/source_*.json files into one canonical dataset of firms,")
	fmt.Println("offices, and deduplicated reviews, then computes rankings, sentiment")
	fmt.Println("distribution, and keyword themes over the merged data.")
	fmt.Println()
	s.colors["subtitle"].Println("Usage:")
	fmt.Println("  reviewmeta [flags]")
	fmt.Println()
	s.colors["subtitle"].Println("Flags:")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	flags := [][2]string{
		{"-input DIR", "directory holding source_*.json files (default: data)"},
		{"-pattern GLOB", "source file glob (default: source_*.json)"},
		{"-output FILE", "output file path; '-' writes to stdout"},
		{"-format NAME", "output format: json, yaml, csv, text (default: json)"},
		{"-config FILE", "configuration file (default: search standard locations)"},
		{"-verbose", "more detail in text output"},
		{"-compact", "compact output where the format supports it"},
		{"-debug", "per-phase timing on stderr"},
		{"-no-color", "disable colored output"},
		{"-list-formats", "list available output formats"},
		{"-list-categories", "list theme categories"},
		{"-version", "print version information"},
		{"-help", "print this help"},
	}
	for _, f := range flags {
		fmt.Fprintf(w, "  %s\t%s\n", s.colors["flag"].Sprint(f[0]), f[1])
	}
	w.Flush()
	fmt.Println()
	s.colors["subtitle"].Println("Exit codes:")
	fmt.Println("  0  run completed and output written")
	fmt.Println("  1  usage error, no readable inputs, or write failure")
}

// PrintFormats lists the registered output formats
func (s *System) PrintFormats() {
	s.colors["title"].Println("Available output formats:")
	fmt.Println()
	names := formatters.List()
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range names {
		if f, ok := formatters.Get(name); ok {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", s.colors["flag"].Sprint(f.Name()), f.FileExtension(), f.Description())
		}
	}
	w.Flush()
}

// PrintCategories lists the theme taxonomy used for classification
func (s *System) PrintCategories(taxonomy themes.Taxonomy) {
	s.colors["title"].Println("Theme categories:")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, cat := range taxonomy {
		desc := cat.Description
		if desc == "" {
			desc = fmt.Sprintf("%d keywords", len(cat.Keywords))
		}
		fmt.Fprintf(w, "  %s\t%s\n", s.colors["flag"].Sprint(cat.Name), desc)
	}
	w.Flush()
	fmt.Println()
	fmt.Println("A review text may match at most 3 categories; matching is case- and")
	fmt.Println("diacritics-insensitive substring search over the normalized text.")
}
