// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package merge folds an ordered sequence of source datasets into a single
// canonical firms → offices → reviews dataset. Identity resolution uses the
// keys from the identity package; conflicting duplicate reviews are resolved
// by completeness score, with the earlier-observed record winning ties.
package merge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"reviewmeta/internal/dataset"
	"reviewmeta/internal/identity"
)

// NoReviewsWarning is recorded in a firm's collection summary when no
// reviews survived the merge for it.
const NoReviewsWarning = "No reviews present in merged sources."

// datasetLimitation is the fixed note carried on every run's quality block.
const datasetLimitation = "Merged from provided JSON sources; public review availability varies widely by firm."

// Source pairs an origin name with a parsed document. Order matters: the
// merge processes sources in the given order and "first non-empty wins"
// fields are order-sensitive by design.
type Source struct {
	Origin   string
	Document dataset.SourceDocument
}

// Options configures a Merger.
type Options struct {
	// MinReviewsPerFirm is the threshold below which a firm is listed in
	// dataset_quality.firms_below_min_reviews.
	MinReviewsPerFirm int
}

// DefaultOptions returns the standard merge thresholds.
func DefaultOptions() Options {
	return Options{MinReviewsPerFirm: 10}
}

// Merger owns the merge index for the duration of one run. A Merger is
// single-use: construct, call Merge once, discard.
type Merger struct {
	opts  Options
	order []string
	firms map[string]*firmEntry
}

type firmEntry struct {
	name    string
	website string
	ids     []string
	idSeen  map[string]bool

	officeOrder []string
	offices     map[string]*officeEntry
}

type officeEntry struct {
	city     string
	address  string
	profiles []dataset.PlatformProfile

	reviewOrder []string
	reviews     map[string]storedReview
}

// storedReview caches the completeness score so later duplicates compare
// against the stored record without rescoring it.
type storedReview struct {
	review dataset.Review
	score  int
}

// New creates a Merger with the given options. Zero-valued options fall back
// to defaults.
func New(opts Options) *Merger {
	if opts.MinReviewsPerFirm <= 0 {
		opts.MinReviewsPerFirm = DefaultOptions().MinReviewsPerFirm
	}
	return &Merger{
		opts:  opts,
		firms: make(map[string]*firmEntry),
	}
}

// Merge folds the sources, in order, into the merged dataset. Missing or nil
// collections at any level contribute nothing; they are never an error.
// Merging zero sources yields zero firms and a zeroed quality block.
func (m *Merger) Merge(sources []Source) ([]dataset.Firm, dataset.Quality) {
	for _, src := range sources {
		for _, f := range src.Document.Firms {
			m.mergeFirm(f)
		}
	}
	return m.finalize()
}

func (m *Merger) mergeFirm(f dataset.SourceFirm) {
	key := identity.FirmKey(f)
	entry, ok := m.firms[key]
	if !ok {
		entry = &firmEntry{
			name:    f.FirmName,
			website: f.Website,
			idSeen:  make(map[string]bool),
			offices: make(map[string]*officeEntry),
		}
		m.order = append(m.order, key)
		m.firms[key] = entry
	}

	// Longest observed display name wins; website is first non-empty wins.
	if f.FirmName != "" && utf8.RuneCountInString(f.FirmName) > utf8.RuneCountInString(entry.name) {
		entry.name = f.FirmName
	}
	if entry.website == "" && f.Website != "" {
		entry.website = f.Website
	}
	if f.FirmID != "" && !entry.idSeen[f.FirmID] {
		entry.idSeen[f.FirmID] = true
		entry.ids = append(entry.ids, f.FirmID)
	}

	for _, o := range f.Offices {
		m.mergeOffice(entry, o)
	}
}

func (m *Merger) mergeOffice(firm *firmEntry, o dataset.SourceOffice) {
	key := identity.OfficeKey(o)
	office, ok := firm.offices[key]
	if !ok {
		office = &officeEntry{
			city:    o.City,
			address: o.Address,
			reviews: make(map[string]storedReview),
		}
		firm.officeOrder = append(firm.officeOrder, key)
		firm.offices[key] = office
	}

	if office.city == "" && o.City != "" {
		office.city = o.City
	}
	if office.address == "" && o.Address != "" {
		office.address = o.Address
	}

	for _, p := range o.PlatformProfiles {
		if p.SourceURL == "" {
			continue
		}
		office.profiles = append(office.profiles, dataset.PlatformProfile{
			Platform:  identity.NormalizePlatform(p.Platform),
			SourceURL: p.SourceURL,
		})
	}

	for _, r := range o.Reviews {
		r.Platform = identity.NormalizePlatform(r.Platform)
		m.mergeReview(office, r)
	}
}

// mergeReview inserts a review or replaces the stored duplicate only when
// the incoming record is strictly more complete. Ties keep the existing
// record, so earlier sources win on equal completeness.
func (m *Merger) mergeReview(office *officeEntry, r dataset.Review) {
	key := identity.ReviewKey(r)
	score := identity.CompletenessScore(r)
	stored, ok := office.reviews[key]
	if !ok {
		office.reviewOrder = append(office.reviewOrder, key)
		office.reviews[key] = storedReview{review: r, score: score}
		return
	}
	if score > stored.score {
		office.reviews[key] = storedReview{review: r, score: score}
	}
}

// finalize converts the index into the exported dataset shape and computes
// per-firm summaries and run-wide quality.
func (m *Merger) finalize() ([]dataset.Firm, dataset.Quality) {
	firms := make([]dataset.Firm, 0, len(m.order))
	totalReviews := 0
	var belowMin []string

	for _, key := range m.order {
		entry := m.firms[key]
		firm := m.finalizeFirm(entry)
		totalReviews += firm.CollectionSummary.ReviewsCollectedTotal
		if firm.CollectionSummary.ReviewsCollectedTotal < m.opts.MinReviewsPerFirm {
			belowMin = append(belowMin, firm.FirmID)
		}
		firms = append(firms, firm)
	}

	quality := dataset.Quality{
		FirmsCollected:       len(firms),
		ReviewsCollected:     totalReviews,
		FirmsBelowMinReviews: belowMin,
		KnownLimitations:     []string{datasetLimitation},
	}
	return firms, quality
}

func (m *Merger) finalizeFirm(entry *firmEntry) dataset.Firm {
	firm := dataset.Firm{
		FirmID:   firmID(entry),
		FirmName: entry.name,
		Website:  entry.website,
		Offices:  make([]dataset.Office, 0, len(entry.officeOrder)),
	}

	platforms := make(map[string]bool)
	cities := make(map[string]bool)
	reviewsTotal := 0

	for _, key := range entry.officeOrder {
		o := entry.offices[key]
		office := dataset.Office{
			City:             o.city,
			Address:          o.address,
			PlatformProfiles: dedupeProfiles(o.profiles),
			Reviews:          make([]dataset.Review, 0, len(o.reviewOrder)),
		}
		for _, rk := range o.reviewOrder {
			r := o.reviews[rk].review
			office.Reviews = append(office.Reviews, r)
			if r.Platform != "" {
				platforms[r.Platform] = true
			}
		}
		reviewsTotal += len(office.Reviews)
		if o.city != "" {
			cities[o.city] = true
		}
		firm.Offices = append(firm.Offices, office)
	}

	firm.CollectionSummary = dataset.CollectionSummary{
		ReviewsCollectedTotal: reviewsTotal,
		PlatformsUsed:         sortedKeys(platforms),
		CitiesCovered:         sortedKeys(cities),
	}
	if reviewsTotal == 0 {
		firm.CollectionSummary.Warnings = []string{NoReviewsWarning}
	}
	return firm
}

// firmID picks the stable exported id: the shortest external id (ties broken
// lexicographically), else a slug of the website host, else a slug of the
// firm name, else "unknown".
func firmID(entry *firmEntry) string {
	if len(entry.ids) > 0 {
		candidates := append([]string(nil), entry.ids...)
		sort.Slice(candidates, func(i, j int) bool {
			if len(candidates[i]) != len(candidates[j]) {
				return len(candidates[i]) < len(candidates[j])
			}
			return candidates[i] < candidates[j]
		})
		return candidates[0]
	}
	if entry.website != "" {
		return identity.WebsiteSlug(entry.website)
	}
	if strings.TrimSpace(entry.name) != "" {
		return identity.Slugify(entry.name)
	}
	return "unknown"
}

// dedupeProfiles keeps the first occurrence of each (platform, source_url)
// pair, preserving observation order.
func dedupeProfiles(profiles []dataset.PlatformProfile) []dataset.PlatformProfile {
	seen := make(map[dataset.PlatformProfile]bool)
	var out []dataset.PlatformProfile
	for _, p := range profiles {
		if p.SourceURL == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
