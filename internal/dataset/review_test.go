// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/json"
	"testing"
)

func TestReviewUnmarshal_Typical(t *testing.T) {
	data := `{
		"platform": "Google Maps",
		"review_id": "abc",
		"author_name": "Jan Novák",
		"rating_value": 4,
		"rating_scale": 5,
		"date_published": "2024-05-01",
		"review_text": "Dobrá zkušenost",
		"sentiment_label": "positive",
		"sentiment_score": 0.9
	}`

	var r Review
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.ReviewID != "abc" {
		t.Errorf("review_id = %q, want abc", r.ReviewID)
	}
	if r.RatingValue == nil || *r.RatingValue != 4 {
		t.Errorf("rating_value = %v, want 4", r.RatingValue)
	}
	if r.SentimentScore == nil || *r.SentimentScore != 0.9 {
		t.Errorf("sentiment_score = %v, want 0.9", r.SentimentScore)
	}
}

func TestReviewUnmarshal_NumericID(t *testing.T) {
	var r Review
	if err := json.Unmarshal([]byte(`{"review_id": 12345}`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.ReviewID != "12345" {
		t.Errorf("review_id = %q, want 12345", r.ReviewID)
	}
}

func TestReviewUnmarshal_MistypedFieldsDegrade(t *testing.T) {
	// Collectors sometimes emit strings or junk where numbers belong; the
	// record must still load with those fields absent.
	data := `{
		"platform": "firmy",
		"rating_value": "4 stars",
		"rating_scale": null,
		"sentiment_score": {"oops": true},
		"review_id": ["not", "an", "id"]
	}`

	var r Review
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.RatingValue != nil {
		t.Errorf("expected mistyped rating_value to be absent, got %v", *r.RatingValue)
	}
	if r.RatingScale != nil {
		t.Errorf("expected null rating_scale to be absent, got %v", *r.RatingScale)
	}
	if r.SentimentScore != nil {
		t.Errorf("expected mistyped sentiment_score to be absent, got %v", *r.SentimentScore)
	}
	if r.ReviewID != "" {
		t.Errorf("expected mistyped review_id to be empty, got %q", r.ReviewID)
	}
	if r.Platform != "firmy" {
		t.Errorf("platform = %q, want firmy", r.Platform)
	}
}

func TestReviewUnmarshal_MissingFields(t *testing.T) {
	var r Review
	if err := json.Unmarshal([]byte(`{}`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.RatingValue != nil || r.RatingScale != nil || r.SentimentScore != nil {
		t.Error("expected absent numeric fields to stay nil")
	}
}
