// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"reviewmeta/internal/analysis"
	"reviewmeta/internal/formatters"
	"reviewmeta/internal/report"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable run summary with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(doc report.Document, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	f.appendCoverage(&b, doc)
	f.appendSentiment(&b, doc)
	f.appendRankings(&b, doc, options)
	f.appendThemes(&b, doc)
	f.appendLimitations(&b, doc)

	return b.String(), nil
}

func (f *Formatter) appendCoverage(b *strings.Builder, doc report.Document) {
	cov := doc.Analysis.Coverage
	b.WriteString(f.colors["white"].Sprint("Coverage") + "\n")
	fmt.Fprintf(b, "  Firms: %d  Reviews: %d (with text: %d, with rating: %d)\n",
		cov.FirmsTotal, cov.ReviewsTotal, cov.ReviewsWithText, cov.ReviewsWithRating)
	fmt.Fprintf(b, "  Platforms: %s\n", strings.Join(cov.PlatformsUsed, ", "))
	fmt.Fprintf(b, "  Cities: %s\n", strings.Join(cov.CitiesCovered, ", "))

	quality := doc.MergedDataset.DatasetQuality
	if n := len(quality.FirmsBelowMinReviews); n > 0 {
		fmt.Fprintf(b, "  %s\n", f.colors["yellow"].Sprintf("%d firms below the %d-review minimum", n, doc.MergedDataset.Metadata.ReviewsPerFirmMin))
	}
	b.WriteString("\n")
}

func (f *Formatter) appendSentiment(b *strings.Builder, doc report.Document) {
	dist := doc.Analysis.SentimentDistribution
	if len(dist) == 0 {
		return
	}
	b.WriteString(f.colors["white"].Sprint("Sentiment distribution") + "\n")

	labels := make([]string, 0, len(dist))
	for label := range dist {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		line := fmt.Sprintf("  %-10s %d", label, dist[label])
		switch label {
		case "positive":
			line = f.colors["green"].Sprint(line)
		case "negative":
			line = f.colors["red"].Sprint(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func (f *Formatter) appendRankings(b *strings.Builder, doc report.Document, options formatters.FormatterOptions) {
	// Non-verbose output shows the top 10 of each ranking
	limit := 10
	if options.Verbose {
		limit = 0
	}

	rankings := doc.Analysis.Rankings
	b.WriteString(f.colors["white"].Sprint("Top firms by average rating (0-5)") + "\n")
	if len(rankings.ByAvgRating) == 0 {
		b.WriteString("  No firms with enough rated reviews.\n")
	}
	for i, entry := range rankings.ByAvgRating {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(b, "  %2d. %-40s %s  (n=%d)\n",
			i+1, entry.FirmName, f.colors["cyan"].Sprintf("%.3f", entry.AvgRating5), entry.RatingsN)
	}
	b.WriteString("\n")

	b.WriteString(f.colors["white"].Sprint("Top firms by average sentiment score") + "\n")
	if len(rankings.ByAvgSentiment) == 0 {
		b.WriteString("  No firms with enough scored reviews.\n")
	}
	for i, entry := range rankings.ByAvgSentiment {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(b, "  %2d. %-40s %s  (n=%d)\n",
			i+1, entry.FirmName, f.colors["cyan"].Sprintf("%.3f", entry.AvgSentimentScore), entry.ScoredN)
	}
	b.WriteString("\n")
}

func (f *Formatter) appendThemes(b *strings.Builder, doc report.Document) {
	overall := doc.Analysis.ThemesOverall
	if len(overall.TopPositiveCategories) == 0 && len(overall.TopNegativeCategories) == 0 {
		return
	}
	b.WriteString(f.colors["white"].Sprint("Themes") + "\n")
	if len(overall.TopPositiveCategories) > 0 {
		b.WriteString("  " + f.colors["green"].Sprint("positive:") + " " + joinCategories(overall.TopPositiveCategories) + "\n")
	}
	if len(overall.TopNegativeCategories) > 0 {
		b.WriteString("  " + f.colors["red"].Sprint("negative:") + " " + joinCategories(overall.TopNegativeCategories) + "\n")
	}
	b.WriteString("\n")
}

func (f *Formatter) appendLimitations(b *strings.Builder, doc report.Document) {
	if len(doc.Analysis.Limitations) == 0 {
		return
	}
	b.WriteString(f.colors["white"].Sprint("Limitations") + "\n")
	for _, l := range doc.Analysis.Limitations {
		fmt.Fprintf(b, "  - %s\n", l)
	}
}

func joinCategories(categories []analysis.CategoryCount) string {
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, fmt.Sprintf("%s (%d)", c.Category, c.Count))
	}
	return strings.Join(parts, ", ")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
