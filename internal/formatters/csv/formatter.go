// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strconv"
	"strings"

	"reviewmeta/internal/formatters"
	"reviewmeta/internal/report"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Ranking tables as comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format renders the two rankings as CSV rows. The full dataset does not
// flatten usefully into one table; use the json formatter for that.
func (f *Formatter) Format(doc report.Document, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Ranking", "Rank", "Firm ID", "Firm Name", "Score", "Sample N", "Reviews N"}
	csvRows := []string{strings.Join(headers, ",")}

	for i, entry := range doc.Analysis.Rankings.ByAvgRating {
		csvRows = append(csvRows, f.createCSVRow(
			"by_avg_rating_5", i+1, entry.FirmID, entry.FirmName,
			entry.AvgRating5, entry.RatingsN, entry.ReviewsN,
		))
	}
	for i, entry := range doc.Analysis.Rankings.ByAvgSentiment {
		csvRows = append(csvRows, f.createCSVRow(
			"by_avg_sentiment_score", i+1, entry.FirmID, entry.FirmName,
			entry.AvgSentimentScore, entry.ScoredN, entry.ReviewsN,
		))
	}

	return strings.Join(csvRows, "\n"), nil
}

// createCSVRow creates one CSV row for a ranking entry
func (f *Formatter) createCSVRow(ranking string, rank int, firmID, firmName string, score float64, sampleN, reviewsN int) string {
	fields := []string{
		escapeCSV(ranking),
		strconv.Itoa(rank),
		escapeCSV(firmID),
		escapeCSV(firmName),
		fmt.Sprintf("%.3f", score),
		strconv.Itoa(sampleN),
		strconv.Itoa(reviewsN),
	}
	return strings.Join(fields, ",")
}

// escapeCSV quotes a field when it contains commas, quotes, or newlines
func escapeCSV(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
