// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report defines the exported document shape shared by the run
// orchestration and the output formatters.
package report

import (
	"reviewmeta/internal/analysis"
	"reviewmeta/internal/dataset"
)

// Document is the single exported output of a run: the merged dataset plus
// the analysis layer computed over it.
type Document struct {
	MergedDataset MergedDataset   `json:"merged_dataset" yaml:"merged_dataset"`
	Analysis      analysis.Report `json:"analysis" yaml:"analysis"`
}

// MergedDataset wraps the merged firms with caller-supplied run metadata and
// the run-wide quality block.
type MergedDataset struct {
	Metadata       Metadata        `json:"metadata" yaml:"metadata"`
	Firms          []dataset.Firm  `json:"firms" yaml:"firms"`
	DatasetQuality dataset.Quality `json:"dataset_quality" yaml:"dataset_quality"`
}

// Metadata carries the fixed collection configuration and run provenance.
// The core passes it through; it is not part of the computed contract.
type Metadata struct {
	Country              string   `json:"country" yaml:"country"`
	CreatedAt            string   `json:"created_at" yaml:"created_at"`
	RunID                string   `json:"run_id" yaml:"run_id"`
	TargetFirmsMin       int      `json:"target_firms_min" yaml:"target_firms_min"`
	ReviewsPerFirmMin    int      `json:"reviews_per_firm_min" yaml:"reviews_per_firm_min"`
	ReviewsPerFirmTarget int      `json:"reviews_per_firm_target" yaml:"reviews_per_firm_target"`
	ReviewsPerFirmMax    int      `json:"reviews_per_firm_max" yaml:"reviews_per_firm_max"`
	PlatformsPriority    []string `json:"platforms_priority" yaml:"platforms_priority"`
	Notes                string   `json:"notes" yaml:"notes"`
}
