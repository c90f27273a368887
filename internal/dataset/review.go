// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Review is a single review record. Optional numeric fields are pointers so
// that "absent" and "zero" stay distinguishable through a merge run.
type Review struct {
	Platform       string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	ReviewID       string   `json:"review_id,omitempty" yaml:"review_id,omitempty"`
	AuthorName     string   `json:"author_name,omitempty" yaml:"author_name,omitempty"`
	RatingValue    *float64 `json:"rating_value,omitempty" yaml:"rating_value,omitempty"`
	RatingScale    *float64 `json:"rating_scale,omitempty" yaml:"rating_scale,omitempty"`
	DatePublished  string   `json:"date_published,omitempty" yaml:"date_published,omitempty"`
	DateRaw        string   `json:"date_raw,omitempty" yaml:"date_raw,omitempty"`
	ReviewText     string   `json:"review_text,omitempty" yaml:"review_text,omitempty"`
	SourceURL      string   `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	SentimentLabel string   `json:"sentiment_label,omitempty" yaml:"sentiment_label,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty" yaml:"sentiment_score,omitempty"`
}

// reviewWire mirrors Review but defers the loosely-typed fields to raw JSON.
// Source files come from independent collectors: review ids are sometimes
// numbers, and rating/sentiment values are occasionally strings or garbage.
// A mis-typed optional field must degrade to "absent", not fail the document.
type reviewWire struct {
	Platform       string          `json:"platform"`
	ReviewID       json.RawMessage `json:"review_id"`
	AuthorName     string          `json:"author_name"`
	RatingValue    json.RawMessage `json:"rating_value"`
	RatingScale    json.RawMessage `json:"rating_scale"`
	DatePublished  string          `json:"date_published"`
	DateRaw        string          `json:"date_raw"`
	ReviewText     string          `json:"review_text"`
	SourceURL      string          `json:"source_url"`
	SentimentLabel string          `json:"sentiment_label"`
	SentimentScore json.RawMessage `json:"sentiment_score"`
}

// UnmarshalJSON decodes a review tolerantly: numeric fields that are not
// numbers and ids that are not strings or numbers are treated as absent.
func (r *Review) UnmarshalJSON(data []byte) error {
	var w reviewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Platform = w.Platform
	r.ReviewID = rawID(w.ReviewID)
	r.AuthorName = w.AuthorName
	r.RatingValue = rawNumber(w.RatingValue)
	r.RatingScale = rawNumber(w.RatingScale)
	r.DatePublished = w.DatePublished
	r.DateRaw = w.DateRaw
	r.ReviewText = w.ReviewText
	r.SourceURL = w.SourceURL
	r.SentimentLabel = w.SentimentLabel
	r.SentimentScore = rawNumber(w.SentimentScore)
	return nil
}

// rawNumber parses a raw JSON value as a float64, or nil if it is missing,
// null, or not a number.
func rawNumber(raw json.RawMessage) *float64 {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// rawID accepts a string or numeric external id and renders it as a string.
func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return ""
}

// Float returns a pointer to v. Convenience for building reviews in code.
func Float(v float64) *float64 {
	return &v
}
