// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewmeta/internal/dataset"
)

func sourceWith(firms ...dataset.SourceFirm) Source {
	return Source{Origin: "test", Document: dataset.SourceDocument{Firms: firms}}
}

func TestMerge_Empty(t *testing.T) {
	firms, quality := New(Options{}).Merge(nil)
	assert.Empty(t, firms)
	assert.Equal(t, 0, quality.FirmsCollected)
	assert.Equal(t, 0, quality.ReviewsCollected)
	require.Len(t, quality.KnownLimitations, 1)
}

func TestMerge_FirmsByWebsite(t *testing.T) {
	a := dataset.SourceFirm{FirmName: "Acme", Website: "https://acme.cz"}
	b := dataset.SourceFirm{FirmName: "Acme Legal s.r.o.", Website: "https://ACME.cz"}

	firms, quality := New(Options{}).Merge([]Source{sourceWith(a), sourceWith(b)})
	require.Len(t, firms, 1)
	assert.Equal(t, 1, quality.FirmsCollected)

	// Longest display name wins regardless of arrival order
	assert.Equal(t, "Acme Legal s.r.o.", firms[0].FirmName)
	// Website keeps the first non-empty spelling
	assert.Equal(t, "https://acme.cz", firms[0].Website)
}

func TestMerge_FirstNonEmptyIsOrderSensitive(t *testing.T) {
	// The two spellings key identically; whichever source comes first
	// supplies the stored website.
	a := dataset.SourceFirm{FirmName: "Acme", Website: "https://Acme.cz"}
	b := dataset.SourceFirm{FirmName: "Acme", Website: "https://ACME.CZ"}

	ab, _ := New(Options{}).Merge([]Source{sourceWith(a), sourceWith(b)})
	ba, _ := New(Options{}).Merge([]Source{sourceWith(b), sourceWith(a)})

	require.Len(t, ab, 1)
	require.Len(t, ba, 1)
	assert.Equal(t, "https://Acme.cz", ab[0].Website)
	assert.Equal(t, "https://ACME.CZ", ba[0].Website)
}

func TestMerge_LongestNameByRunes(t *testing.T) {
	// "Kůň" is three runes but more bytes than "Lake"; rune count decides
	a := dataset.SourceFirm{FirmName: "Kůň", Website: "https://x.cz"}
	b := dataset.SourceFirm{FirmName: "Lake", Website: "https://x.cz"}

	firms, _ := New(Options{}).Merge([]Source{sourceWith(a, b)})
	require.Len(t, firms, 1)
	assert.Equal(t, "Lake", firms[0].FirmName)
}

func TestMerge_ReviewDedup(t *testing.T) {
	// Same external id keys both records to one review; the second carries
	// more fields and must replace the first.
	review := dataset.Review{
		Platform:   "google",
		ReviewID:   "r1",
		AuthorName: "Jan Novák",
	}
	richer := review
	richer.DatePublished = "2024-05-01"
	richer.ReviewText = "Skvělá zkušenost"

	firm := dataset.SourceFirm{
		FirmName: "Acme",
		Website:  "https://acme.cz",
		Offices: []dataset.SourceOffice{{
			City:    "Praha",
			Reviews: []dataset.Review{review},
		}},
	}
	firmDup := firm
	firmDup.Offices = []dataset.SourceOffice{{
		City:    "Praha",
		Reviews: []dataset.Review{richer},
	}}

	firms, quality := New(Options{}).Merge([]Source{sourceWith(firm), sourceWith(firmDup)})
	require.Len(t, firms, 1)
	require.Len(t, firms[0].Offices, 1)
	require.Len(t, firms[0].Offices[0].Reviews, 1)
	assert.Equal(t, 1, quality.ReviewsCollected)

	// The more complete duplicate replaced the first-seen record
	assert.Equal(t, "2024-05-01", firms[0].Offices[0].Reviews[0].DatePublished)
}

func TestMerge_EqualCompletenessKeepsFirst(t *testing.T) {
	a := dataset.Review{Platform: "google", ReviewID: "r1", AuthorName: "First Seen"}
	b := dataset.Review{Platform: "google", ReviewID: "r1", AuthorName: "Second Seen"}

	build := func(r dataset.Review) dataset.SourceFirm {
		return dataset.SourceFirm{
			FirmName: "Acme",
			Website:  "https://acme.cz",
			Offices:  []dataset.SourceOffice{{City: "Praha", Reviews: []dataset.Review{r}}},
		}
	}

	ab, _ := New(Options{}).Merge([]Source{sourceWith(build(a)), sourceWith(build(b))})
	ba, _ := New(Options{}).Merge([]Source{sourceWith(build(b)), sourceWith(build(a))})

	require.Len(t, ab[0].Offices[0].Reviews, 1)
	require.Len(t, ba[0].Offices[0].Reviews, 1)
	assert.Equal(t, "First Seen", ab[0].Offices[0].Reviews[0].AuthorName)
	assert.Equal(t, "Second Seen", ba[0].Offices[0].Reviews[0].AuthorName)
}

func TestMerge_FirmIDSelection(t *testing.T) {
	tests := []struct {
		name     string
		firm     dataset.SourceFirm
		expected string
	}{
		{
			"external id wins",
			dataset.SourceFirm{FirmName: "Acme", Website: "https://acme.cz", FirmID: "ext-9"},
			"ext-9",
		},
		{
			"website slug fallback",
			dataset.SourceFirm{FirmName: "Acme", Website: "https://acme.cz/contact"},
			"acme-cz",
		},
		{
			"name slug fallback",
			dataset.SourceFirm{FirmName: "Advokátní kancelář Novák"},
			"advokatni-kancelar-novak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			firms, _ := New(Options{}).Merge([]Source{sourceWith(tt.firm)})
			require.Len(t, firms, 1)
			assert.Equal(t, tt.expected, firms[0].FirmID)
		})
	}
}

func TestMerge_ShortestExternalID(t *testing.T) {
	a := dataset.SourceFirm{FirmName: "Acme", Website: "https://acme.cz", FirmID: "zz"}
	b := dataset.SourceFirm{FirmName: "Acme", Website: "https://acme.cz", FirmID: "aaa"}
	c := dataset.SourceFirm{FirmName: "Acme", Website: "https://acme.cz", FirmID: "ab"}

	firms, _ := New(Options{}).Merge([]Source{sourceWith(a, b, c)})
	require.Len(t, firms, 1)
	// Shortest id wins, lexicographic order breaks the length tie
	assert.Equal(t, "ab", firms[0].FirmID)
}

func TestMerge_ProfilesRequireSourceURL(t *testing.T) {
	firm := dataset.SourceFirm{
		FirmName: "Acme",
		Website:  "https://acme.cz",
		Offices: []dataset.SourceOffice{{
			City: "Praha",
			PlatformProfiles: []dataset.PlatformProfile{
				{Platform: "google", SourceURL: "https://maps.google.com/acme"},
				{Platform: "firmy"},
				{Platform: "google", SourceURL: "https://maps.google.com/acme"},
			},
		}},
	}

	firms, _ := New(Options{}).Merge([]Source{sourceWith(firm)})
	require.Len(t, firms[0].Offices, 1)
	profiles := firms[0].Offices[0].PlatformProfiles
	require.Len(t, profiles, 1)
	assert.Equal(t, "Google Maps", profiles[0].Platform)
}

func TestMerge_SummaryAndQuality(t *testing.T) {
	review := func(id, plat string) dataset.Review {
		return dataset.Review{Platform: plat, ReviewID: id}
	}
	firm := dataset.SourceFirm{
		FirmName: "Acme",
		Website:  "https://acme.cz",
		Offices: []dataset.SourceOffice{
			{City: "Praha", Reviews: []dataset.Review{review("1", "google"), review("2", "firmy")}},
			{City: "Brno", Reviews: []dataset.Review{review("3", "facebook")}},
		},
	}
	empty := dataset.SourceFirm{FirmName: "Silent & Co", Website: "https://silent.cz"}

	firms, quality := New(Options{MinReviewsPerFirm: 2}).Merge([]Source{sourceWith(firm, empty)})
	require.Len(t, firms, 2)

	summary := firms[0].CollectionSummary
	assert.Equal(t, 3, summary.ReviewsCollectedTotal)
	assert.Equal(t, []string{"Facebook", "Firmy.cz", "Google Maps"}, summary.PlatformsUsed)
	assert.Equal(t, []string{"Brno", "Praha"}, summary.CitiesCovered)
	assert.Empty(t, summary.Warnings)

	assert.Equal(t, []string{NoReviewsWarning}, firms[1].CollectionSummary.Warnings)

	assert.Equal(t, 3, quality.ReviewsCollected)
	assert.Equal(t, []string{"silent-cz"}, quality.FirmsBelowMinReviews)
}

func TestMerge_OfficeFieldBackfill(t *testing.T) {
	// Same office key observed twice; blank fields fill from later sources
	first := dataset.SourceFirm{
		FirmName: "Acme",
		Website:  "https://acme.cz",
		Offices:  []dataset.SourceOffice{{City: "Praha", Address: "Hlavní 1"}},
	}
	second := dataset.SourceFirm{
		FirmName: "Acme",
		Website:  "https://acme.cz",
		Offices:  []dataset.SourceOffice{{City: "Praha", Address: "Hlavní 1", PlatformProfiles: []dataset.PlatformProfile{{Platform: "firmy", SourceURL: "https://firmy.cz/acme"}}}},
	}

	firms, _ := New(Options{}).Merge([]Source{sourceWith(first), sourceWith(second)})
	require.Len(t, firms, 1)
	require.Len(t, firms[0].Offices, 1)
	assert.Len(t, firms[0].Offices[0].PlatformProfiles, 1)
}
