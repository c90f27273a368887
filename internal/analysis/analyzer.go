// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package analysis computes the report layer over a merged dataset: per-firm
// statistics, rating and sentiment rankings, the global sentiment
// distribution, and keyword theme aggregation with representative quotes.
package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"reviewmeta/internal/dataset"
	"reviewmeta/internal/themes"
)

// rankingsLimitation is appended to every report after any skipped-source
// notes.
const rankingsLimitation = "Most firms have limited or zero publicly captured reviews in the provided inputs; rankings may be unstable for low n."

var tokenRun = regexp.MustCompile(`\S+`)

// Options configures analysis thresholds.
type Options struct {
	// MinSampleSize is the minimum number of rated (or scored) reviews a
	// firm needs to appear in a ranking.
	MinSampleSize int
	// MaxRankingEntries caps each ranking.
	MaxRankingEntries int
	// MaxQuotesPerPolarity caps representative quotes per firm per polarity.
	MaxQuotesPerPolarity int
	// ExcerptMaxWords is the token cap for representative quotes.
	ExcerptMaxWords int
	// MaxFirmCategories / MaxOverallCategories cap the theme leaderboards.
	MaxFirmCategories    int
	MaxOverallCategories int
}

// DefaultOptions returns the standard analysis thresholds.
func DefaultOptions() Options {
	return Options{
		MinSampleSize:        3,
		MaxRankingEntries:    30,
		MaxQuotesPerPolarity: 4,
		ExcerptMaxWords:      25,
		MaxFirmCategories:    5,
		MaxOverallCategories: 10,
	}
}

// Analyzer computes reports over finalized datasets. It holds only immutable
// configuration and is safe to reuse across runs.
type Analyzer struct {
	classifier *themes.Classifier
	opts       Options
}

// New creates an Analyzer. A nil classifier gets the default taxonomy.
func New(classifier *themes.Classifier, opts Options) *Analyzer {
	if classifier == nil {
		classifier = themes.NewClassifier(themes.DefaultTaxonomy)
	}
	def := DefaultOptions()
	if opts.MinSampleSize <= 0 {
		opts.MinSampleSize = def.MinSampleSize
	}
	if opts.MaxRankingEntries <= 0 {
		opts.MaxRankingEntries = def.MaxRankingEntries
	}
	if opts.MaxQuotesPerPolarity <= 0 {
		opts.MaxQuotesPerPolarity = def.MaxQuotesPerPolarity
	}
	if opts.ExcerptMaxWords <= 0 {
		opts.ExcerptMaxWords = def.ExcerptMaxWords
	}
	if opts.MaxFirmCategories <= 0 {
		opts.MaxFirmCategories = def.MaxFirmCategories
	}
	if opts.MaxOverallCategories <= 0 {
		opts.MaxOverallCategories = def.MaxOverallCategories
	}
	return &Analyzer{classifier: classifier, opts: opts}
}

// Analyze computes the full report. skippedSources are loader-reported
// "name: reason" strings echoed verbatim into the limitations block.
func (a *Analyzer) Analyze(firms []dataset.Firm, quality dataset.Quality, skippedSources []string) Report {
	order := categoryOrder(a.classifier)
	overallPos := newCounter(order)
	overallNeg := newCounter(order)
	sentimentDist := make(map[string]int)
	var stats []firmStat
	var themesByFirm []FirmThemes

	for _, firm := range firms {
		reviews := flattenReviews(firm)

		var ratings []float64
		var sentiments []float64
		pos := newCounter(order)
		neg := newCounter(order)
		var quotesPos, quotesNeg []string

		for _, r := range reviews {
			if v, ok := RatingTo5(r); ok {
				ratings = append(ratings, v)
			}
			if r.SentimentScore != nil {
				sentiments = append(sentiments, *r.SentimentScore)
			}

			label := r.SentimentLabel
			if label == "" {
				label = "unknown"
			}
			sentimentDist[label]++

			switch label {
			case "positive":
				for _, c := range a.classifier.Categorize(r.ReviewText) {
					pos.add(c)
					overallPos.add(c)
				}
				if ex := excerpt(r.ReviewText, a.opts.ExcerptMaxWords); ex != "" && len(quotesPos) < a.opts.MaxQuotesPerPolarity {
					quotesPos = append(quotesPos, ex)
				}
			case "negative":
				for _, c := range a.classifier.Categorize(r.ReviewText) {
					neg.add(c)
					overallNeg.add(c)
				}
				if ex := excerpt(r.ReviewText, a.opts.ExcerptMaxWords); ex != "" && len(quotesNeg) < a.opts.MaxQuotesPerPolarity {
					quotesNeg = append(quotesNeg, ex)
				}
			}
		}

		if pos.total > 0 || neg.total > 0 {
			themesByFirm = append(themesByFirm, FirmThemes{
				FirmID:                       firm.FirmID,
				TopPositiveCategories:        pos.top(a.opts.MaxFirmCategories),
				TopNegativeCategories:        neg.top(a.opts.MaxFirmCategories),
				RepresentativeQuotesPositive: quotesPos,
				RepresentativeQuotesNegative: quotesNeg,
			})
		}

		stats = append(stats, firmStat{
			firmID:       firm.FirmID,
			firmName:     firm.FirmName,
			reviewsN:     len(reviews),
			ratingsN:     len(ratings),
			avgRating:    average(ratings),
			scoredN:      len(sentiments),
			avgSentiment: average(sentiments),
		})
	}

	limitations := make([]string, 0, len(skippedSources)+1)
	for _, s := range skippedSources {
		limitations = append(limitations, "Skipped invalid JSON input: "+s)
	}
	limitations = append(limitations, rankingsLimitation)

	return Report{
		Coverage: a.coverage(firms, quality),
		Rankings: Rankings{
			ByAvgRating:    a.rankByRating(stats),
			ByAvgSentiment: a.rankBySentiment(stats),
		},
		SentimentDistribution: sentimentDist,
		ThemesOverall: ThemesOverall{
			TopPositiveCategories: overallPos.top(a.opts.MaxOverallCategories),
			TopNegativeCategories: overallNeg.top(a.opts.MaxOverallCategories),
		},
		ThemesByFirm: themesByFirm,
		Limitations:  limitations,
	}
}

// coverage recomputes totals and the platform/city sets directly from the
// finalized reviews and offices, independent of merge-time summaries.
func (a *Analyzer) coverage(firms []dataset.Firm, quality dataset.Quality) Coverage {
	withText := 0
	withRating := 0
	platforms := make(map[string]bool)
	cities := make(map[string]bool)

	for _, firm := range firms {
		for _, office := range firm.Offices {
			if office.City != "" {
				cities[office.City] = true
			}
			for _, r := range office.Reviews {
				if strings.TrimSpace(r.ReviewText) != "" {
					withText++
				}
				if _, ok := RatingTo5(r); ok {
					withRating++
				}
				if r.Platform != "" {
					platforms[r.Platform] = true
				}
			}
		}
	}

	return Coverage{
		FirmsTotal:        quality.FirmsCollected,
		ReviewsTotal:      quality.ReviewsCollected,
		ReviewsWithText:   withText,
		ReviewsWithRating: withRating,
		PlatformsUsed:     sortedKeys(platforms),
		CitiesCovered:     sortedKeys(cities),
	}
}

func (a *Analyzer) rankByRating(stats []firmStat) []RatingRankingEntry {
	var eligible []firmStat
	for _, s := range stats {
		if s.ratingsN >= a.opts.MinSampleSize && s.avgRating != nil {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if *eligible[i].avgRating != *eligible[j].avgRating {
			return *eligible[i].avgRating > *eligible[j].avgRating
		}
		if eligible[i].ratingsN != eligible[j].ratingsN {
			return eligible[i].ratingsN > eligible[j].ratingsN
		}
		return eligible[i].firmName < eligible[j].firmName
	})
	if len(eligible) > a.opts.MaxRankingEntries {
		eligible = eligible[:a.opts.MaxRankingEntries]
	}
	out := make([]RatingRankingEntry, 0, len(eligible))
	for _, s := range eligible {
		out = append(out, RatingRankingEntry{
			FirmID:     s.firmID,
			FirmName:   s.firmName,
			AvgRating5: round3(*s.avgRating),
			RatingsN:   s.ratingsN,
			ReviewsN:   s.reviewsN,
		})
	}
	return out
}

func (a *Analyzer) rankBySentiment(stats []firmStat) []SentimentRankingEntry {
	var eligible []firmStat
	for _, s := range stats {
		if s.scoredN >= a.opts.MinSampleSize && s.avgSentiment != nil {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if *eligible[i].avgSentiment != *eligible[j].avgSentiment {
			return *eligible[i].avgSentiment > *eligible[j].avgSentiment
		}
		if eligible[i].scoredN != eligible[j].scoredN {
			return eligible[i].scoredN > eligible[j].scoredN
		}
		return eligible[i].firmName < eligible[j].firmName
	})
	if len(eligible) > a.opts.MaxRankingEntries {
		eligible = eligible[:a.opts.MaxRankingEntries]
	}
	out := make([]SentimentRankingEntry, 0, len(eligible))
	for _, s := range eligible {
		out = append(out, SentimentRankingEntry{
			FirmID:            s.firmID,
			FirmName:          s.firmName,
			AvgSentimentScore: round3(*s.avgSentiment),
			ScoredN:           s.scoredN,
			ReviewsN:          s.reviewsN,
		})
	}
	return out
}

// RatingTo5 converts a review's rating onto a 0-5 scale. A review without
// both numeric components, or with a zero scale, contributes no rating.
func RatingTo5(r dataset.Review) (float64, bool) {
	if r.RatingValue == nil || r.RatingScale == nil || *r.RatingScale == 0 {
		return 0, false
	}
	return *r.RatingValue / *r.RatingScale * 5, true
}

// firmStat is the per-firm projection rankings are derived from. Averages
// are nil, not zero, when no sample exists.
type firmStat struct {
	firmID       string
	firmName     string
	reviewsN     int
	ratingsN     int
	avgRating    *float64
	scoredN      int
	avgSentiment *float64
}

func flattenReviews(firm dataset.Firm) []dataset.Review {
	var out []dataset.Review
	for _, office := range firm.Offices {
		out = append(out, office.Reviews...)
	}
	return out
}

func average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

// excerpt returns the first maxWords whitespace-delimited tokens of text, or
// "" when the text has none.
func excerpt(text string, maxWords int) string {
	tokens := tokenRun.FindAllString(strings.TrimSpace(text), -1)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > maxWords {
		tokens = tokens[:maxWords]
	}
	return strings.Join(tokens, " ")
}

// counter tallies categories while remembering the taxonomy order for
// deterministic tie-breaks.
type counter struct {
	counts map[string]int
	order  map[string]int
	total  int
}

func newCounter(order map[string]int) *counter {
	return &counter{counts: make(map[string]int), order: order}
}

func (c *counter) add(category string) {
	c.counts[category]++
	c.total++
}

// top returns the n highest-count categories, ties broken by taxonomy
// declaration order.
func (c *counter) top(n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(c.counts))
	for cat, count := range c.counts {
		out = append(out, CategoryCount{Category: cat, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return c.order[out[i].Category] < c.order[out[j].Category]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func categoryOrder(classifier *themes.Classifier) map[string]int {
	order := make(map[string]int)
	for i, name := range classifier.Categories() {
		order[name] = i
	}
	return order
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
