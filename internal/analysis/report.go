// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analysis

// Report is the computed analysis layer over a merged dataset. All fields
// are derived, read-only projections; none are mutated after Analyze
// returns.
type Report struct {
	Coverage              Coverage       `json:"coverage" yaml:"coverage"`
	Rankings              Rankings       `json:"rankings" yaml:"rankings"`
	SentimentDistribution map[string]int `json:"sentiment_distribution" yaml:"sentiment_distribution"`
	ThemesOverall         ThemesOverall  `json:"themes_overall" yaml:"themes_overall"`
	ThemesByFirm          []FirmThemes   `json:"themes_by_firm" yaml:"themes_by_firm"`
	Limitations           []string       `json:"limitations" yaml:"limitations"`
}

// Coverage reports dataset totals computed directly from the finalized
// review and office data.
type Coverage struct {
	FirmsTotal        int      `json:"firms_total" yaml:"firms_total"`
	ReviewsTotal      int      `json:"reviews_total" yaml:"reviews_total"`
	ReviewsWithText   int      `json:"reviews_with_text" yaml:"reviews_with_text"`
	ReviewsWithRating int      `json:"reviews_with_rating" yaml:"reviews_with_rating"`
	PlatformsUsed     []string `json:"platforms_used" yaml:"platforms_used"`
	CitiesCovered     []string `json:"cities_covered" yaml:"cities_covered"`
}

// Rankings holds the two independent firm rankings.
type Rankings struct {
	ByAvgRating    []RatingRankingEntry    `json:"by_avg_rating_5" yaml:"by_avg_rating_5"`
	ByAvgSentiment []SentimentRankingEntry `json:"by_avg_sentiment_score" yaml:"by_avg_sentiment_score"`
}

// RatingRankingEntry is one row of the average-rating ranking.
type RatingRankingEntry struct {
	FirmID     string  `json:"firm_id" yaml:"firm_id"`
	FirmName   string  `json:"firm_name" yaml:"firm_name"`
	AvgRating5 float64 `json:"avg_rating_5" yaml:"avg_rating_5"`
	RatingsN   int     `json:"ratings_n" yaml:"ratings_n"`
	ReviewsN   int     `json:"reviews_n" yaml:"reviews_n"`
}

// SentimentRankingEntry is one row of the average-sentiment ranking.
type SentimentRankingEntry struct {
	FirmID            string  `json:"firm_id" yaml:"firm_id"`
	FirmName          string  `json:"firm_name" yaml:"firm_name"`
	AvgSentimentScore float64 `json:"avg_sentiment_score" yaml:"avg_sentiment_score"`
	ScoredN           int     `json:"scored_n" yaml:"scored_n"`
	ReviewsN          int     `json:"reviews_n" yaml:"reviews_n"`
}

// CategoryCount is a theme category with its occurrence count.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// ThemesOverall aggregates theme counts across the whole dataset.
type ThemesOverall struct {
	TopPositiveCategories []CategoryCount `json:"top_positive_categories" yaml:"top_positive_categories"`
	TopNegativeCategories []CategoryCount `json:"top_negative_categories" yaml:"top_negative_categories"`
}

// FirmThemes aggregates themes and representative quotes for one firm.
// Firms with no categorized positive or negative reviews are omitted from
// the report.
type FirmThemes struct {
	FirmID                       string          `json:"firm_id" yaml:"firm_id"`
	TopPositiveCategories        []CategoryCount `json:"top_positive_categories" yaml:"top_positive_categories"`
	TopNegativeCategories        []CategoryCount `json:"top_negative_categories" yaml:"top_negative_categories"`
	RepresentativeQuotesPositive []string        `json:"representative_quotes_positive" yaml:"representative_quotes_positive"`
	RepresentativeQuotesNegative []string        `json:"representative_quotes_negative" yaml:"representative_quotes_negative"`
}
