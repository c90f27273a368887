// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"testing"

	"reviewmeta/internal/dataset"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace collapse", "  Advokátní   kancelář \t Novák ", "advokatni kancelar novak"},
		{"diacritics stripped", "Příliš žluťoučký kůň", "prilis zlutoucky kun"},
		{"already plain", "acme legal", "acme legal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Google Maps", "Google Maps"},
		{"google", "Google Maps"},
		{"reviews.GOOGLE.com", "Google Maps"},
		{"Firmy.cz", "Firmy.cz"},
		{"firmy", "Firmy.cz"},
		{"Facebook", "Facebook"},
		{"facebook page", "Facebook"},
		{"Seznam", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		if got := NormalizePlatform(tt.input); got != tt.expected {
			t.Errorf("NormalizePlatform(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFirmKey(t *testing.T) {
	withSite := dataset.SourceFirm{FirmName: "Acme Legal", Website: " https://Acme.cz "}
	if got, want := FirmKey(withSite), "w:https://acme.cz"; got != want {
		t.Errorf("FirmKey with website = %q, want %q", got, want)
	}

	nameOnly := dataset.SourceFirm{FirmName: "Advokátní Kancelář Novák"}
	if got, want := FirmKey(nameOnly), "n:advokatni kancelar novak"; got != want {
		t.Errorf("FirmKey without website = %q, want %q", got, want)
	}

	// Same firm seen with and without diacritics keys identically
	if FirmKey(dataset.SourceFirm{FirmName: "Novák"}) != FirmKey(dataset.SourceFirm{FirmName: "novak"}) {
		t.Error("expected diacritics-insensitive name keys to match")
	}
}

func TestOfficeKey(t *testing.T) {
	tests := []struct {
		name     string
		office   dataset.SourceOffice
		expected string
	}{
		{"city and address", dataset.SourceOffice{City: "Praha", Address: " Hlavní 1 "}, "praha|hlavní 1"},
		{"city only", dataset.SourceOffice{City: " Brno "}, "brno"},
		{"address only", dataset.SourceOffice{Address: "Hlavní 1"}, "addr:hlavní 1"},
		{"neither", dataset.SourceOffice{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OfficeKey(tt.office); got != tt.expected {
				t.Errorf("OfficeKey = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReviewKey_ExternalID(t *testing.T) {
	r := dataset.Review{Platform: "google", ReviewID: "abc123", ReviewText: "anything"}
	if got, want := ReviewKey(r), "Google Maps|rid:abc123"; got != want {
		t.Errorf("ReviewKey = %q, want %q", got, want)
	}
}

func TestReviewKey_ContentFallback(t *testing.T) {
	a := dataset.Review{
		Platform:    "google",
		AuthorName:  "Jan Novák",
		ReviewText:  "Skvělá  zkušenost",
		RatingValue: dataset.Float(5),
		RatingScale: dataset.Float(5),
	}
	b := a
	b.AuthorName = "jan novak" // diacritics and case fold away
	b.ReviewText = " skvělá zkušenost "

	if ReviewKey(a) != ReviewKey(b) {
		t.Error("expected normalized duplicates to share a key")
	}

	c := a
	c.ReviewText = "different text"
	if ReviewKey(a) == ReviewKey(c) {
		t.Error("expected distinct text to produce distinct keys")
	}

	// Missing text and URL use sentinels, not empty hashes
	empty := dataset.Review{Platform: "firmy"}
	key := ReviewKey(empty)
	if key == "" {
		t.Fatal("expected non-empty key for empty review")
	}
	if got := ReviewKey(dataset.Review{Platform: "firmy"}); got != key {
		t.Error("expected stable key for identical empty reviews")
	}
}

func TestCompletenessScore(t *testing.T) {
	tests := []struct {
		name     string
		review   dataset.Review
		expected int
	}{
		{"empty", dataset.Review{}, 0},
		{"id only", dataset.Review{ReviewID: "x"}, 4},
		{"date only", dataset.Review{DatePublished: "2024-01-01"}, 2},
		{"rating needs both value and scale", dataset.Review{RatingValue: dataset.Float(4)}, 0},
		{"rating complete", dataset.Review{RatingValue: dataset.Float(4), RatingScale: dataset.Float(5)}, 2},
		{"whitespace text scores zero", dataset.Review{ReviewText: "   "}, 0},
		{
			"everything",
			dataset.Review{
				ReviewID:      "x",
				DatePublished: "2024-01-01",
				RatingValue:   dataset.Float(4),
				RatingScale:   dataset.Float(5),
				ReviewText:    "good",
				AuthorName:    "a",
				SourceURL:     "https://x",
			},
			12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletenessScore(tt.review); got != tt.expected {
				t.Errorf("CompletenessScore = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Advokátní kancelář Novák & Partners", "advokatni-kancelar-novak-partners"},
		{"  --hello--  ", "hello"},
		{"ACME", "acme"},
		{"", "unknown"},
		{"###", "unknown"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestWebsiteSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.acme.cz/kontakt", "www-acme-cz"},
		{"http://acme.cz", "acme-cz"},
		{"acme.cz/about", "acme-cz"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		if got := WebsiteSlug(tt.input); got != tt.expected {
			t.Errorf("WebsiteSlug(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
