// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"reviewmeta/internal/analysis"
	"reviewmeta/internal/config"
	"reviewmeta/internal/loader"
	"reviewmeta/internal/merge"
	"reviewmeta/internal/observability"
	"reviewmeta/internal/report"
	"reviewmeta/internal/themes"
)

// RunConfig holds configuration for one merge-and-analyze run.
type RunConfig struct {
	InputDir string
	Pattern  string
	Config   *config.Config
	// Observer, when non-nil, receives per-phase timing data.
	Observer *observability.StandardObserver
}

// RunResult holds the assembled output document plus run accounting.
type RunResult struct {
	Document    report.Document
	SourceNames []string
	Skipped     []loader.Skipped
}

// Run performs the core pipeline shared by the CLI: discover sources, load
// them, merge, analyze, and assemble the exported document. A directory with
// no matching inputs, or one where every input fails to parse, is a fatal
// error; no output is produced.
func Run(rc RunConfig) (*RunResult, error) {
	cfg := rc.Config
	if cfg == nil {
		cfg, _ = config.LoadConfig("")
	}

	inputDir := rc.InputDir
	if inputDir == "" {
		inputDir = cfg.Defaults.InputDir
	}
	pattern := rc.Pattern
	if pattern == "" {
		pattern = cfg.Defaults.Pattern
	}

	doneDiscover := rc.Observer.StartTiming("loader", "discover")
	paths, err := loader.Discover(inputDir, pattern)
	if err != nil {
		doneDiscover(false, nil)
		return nil, err
	}
	doneDiscover(true, map[string]interface{}{"files": len(paths)})
	if len(paths) == 0 {
		return nil, fmt.Errorf("no inputs found in %s (expected: %s)", inputDir, pattern)
	}

	doneLoad := rc.Observer.StartTiming("loader", "load")
	sources, skipped := loader.LoadAll(paths)
	doneLoad(true, map[string]interface{}{"parsed": len(sources), "skipped": len(skipped)})
	for _, s := range skipped {
		rc.Observer.LogDetail("loader", "skipped "+s.String())
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("all %d inputs failed to parse as JSON", len(paths))
	}

	merger := merge.New(merge.Options{MinReviewsPerFirm: cfg.Collection.ReviewsPerFirmMin})
	ordered := make([]merge.Source, 0, len(sources))
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		ordered = append(ordered, merge.Source{Origin: s.Name, Document: s.Document})
		names = append(names, s.Name)
	}

	doneMerge := rc.Observer.StartTiming("merge", "merge")
	firms, quality := merger.Merge(ordered)
	doneMerge(true, map[string]interface{}{"firms": quality.FirmsCollected, "reviews": quality.ReviewsCollected})

	taxonomy := themes.DefaultTaxonomy
	if len(cfg.Taxonomy) > 0 {
		taxonomy = cfg.Taxonomy
	}
	analyzer := analysis.New(themes.NewClassifier(taxonomy), analysis.Options{
		MinSampleSize:        cfg.Analysis.MinSampleSize,
		MaxRankingEntries:    cfg.Analysis.MaxRankingEntries,
		MaxQuotesPerPolarity: cfg.Analysis.MaxQuotesPerPolarity,
		ExcerptMaxWords:      cfg.Analysis.ExcerptMaxWords,
	})

	skippedNotes := make([]string, 0, len(skipped))
	for _, s := range skipped {
		skippedNotes = append(skippedNotes, s.String())
	}

	doneAnalyze := rc.Observer.StartTiming("analysis", "analyze")
	analysisReport := analyzer.Analyze(firms, quality, skippedNotes)
	doneAnalyze(true, map[string]interface{}{
		"ranked_by_rating":    len(analysisReport.Rankings.ByAvgRating),
		"ranked_by_sentiment": len(analysisReport.Rankings.ByAvgSentiment),
	})

	doc := report.Document{
		MergedDataset: report.MergedDataset{
			Metadata:       buildMetadata(cfg),
			Firms:          firms,
			DatasetQuality: quality,
		},
		Analysis: analysisReport,
	}

	return &RunResult{Document: doc, SourceNames: names, Skipped: skipped}, nil
}

// buildMetadata stamps the caller-supplied collection constants and run
// provenance into the output metadata block.
func buildMetadata(cfg *config.Config) report.Metadata {
	return report.Metadata{
		Country:              cfg.Collection.Country,
		CreatedAt:            time.Now().UTC().Format(time.RFC3339),
		RunID:                uuid.NewString(),
		TargetFirmsMin:       cfg.Collection.TargetFirmsMin,
		ReviewsPerFirmMin:    cfg.Collection.ReviewsPerFirmMin,
		ReviewsPerFirmTarget: cfg.Collection.ReviewsPerFirmTarget,
		ReviewsPerFirmMax:    cfg.Collection.ReviewsPerFirmMax,
		PlatformsPriority:    cfg.Collection.PlatformsPriority,
		Notes:                cfg.Collection.Notes,
	}
}
