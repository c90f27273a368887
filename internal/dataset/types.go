// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dataset

// SourceDocument is one parsed input file: an origin-agnostic tree of firms.
// It is transient and exists only for the duration of a merge run.
type SourceDocument struct {
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Firms    []SourceFirm   `json:"firms" yaml:"firms"`
}

// SourceFirm is a firm record as it appears in an input document.
type SourceFirm struct {
	FirmName string         `json:"firm_name" yaml:"firm_name"`
	Website  string         `json:"website,omitempty" yaml:"website,omitempty"`
	FirmID   string         `json:"firm_id,omitempty" yaml:"firm_id,omitempty"`
	Offices  []SourceOffice `json:"offices" yaml:"offices"`
}

// SourceOffice is an office record as it appears in an input document.
type SourceOffice struct {
	City             string            `json:"city,omitempty" yaml:"city,omitempty"`
	Address          string            `json:"address,omitempty" yaml:"address,omitempty"`
	PlatformProfiles []PlatformProfile `json:"platform_profiles" yaml:"platform_profiles"`
	Reviews          []Review          `json:"reviews" yaml:"reviews"`
}

// PlatformProfile identifies where an office's listing was observed.
// Profiles are deduplicated by the (platform, source_url) pair; entries
// without a source_url are dropped during merge.
type PlatformProfile struct {
	Platform  string `json:"platform" yaml:"platform"`
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Firm is a deduplicated business entity in the merged output.
type Firm struct {
	FirmID            string            `json:"firm_id" yaml:"firm_id"`
	FirmName          string            `json:"firm_name" yaml:"firm_name"`
	Website           string            `json:"website,omitempty" yaml:"website,omitempty"`
	Offices           []Office          `json:"offices" yaml:"offices"`
	CollectionSummary CollectionSummary `json:"collection_summary" yaml:"collection_summary"`
}

// Office is a finalized office in the merged output.
type Office struct {
	City             string            `json:"city,omitempty" yaml:"city,omitempty"`
	Address          string            `json:"address,omitempty" yaml:"address,omitempty"`
	PlatformProfiles []PlatformProfile `json:"platform_profiles,omitempty" yaml:"platform_profiles,omitempty"`
	Reviews          []Review          `json:"reviews" yaml:"reviews"`
}

// CollectionSummary describes what was collected for one firm.
type CollectionSummary struct {
	ReviewsCollectedTotal int      `json:"reviews_collected_total" yaml:"reviews_collected_total"`
	PlatformsUsed         []string `json:"platforms_used" yaml:"platforms_used"`
	CitiesCovered         []string `json:"cities_covered" yaml:"cities_covered"`
	Warnings              []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Quality summarizes the merged dataset for one run.
type Quality struct {
	FirmsCollected       int      `json:"firms_collected" yaml:"firms_collected"`
	ReviewsCollected     int      `json:"reviews_collected" yaml:"reviews_collected"`
	FirmsBelowMinReviews []string `json:"firms_below_min_reviews" yaml:"firms_below_min_reviews"`
	KnownLimitations     []string `json:"known_limitations" yaml:"known_limitations"`
}
