// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package identity derives the stable keys used to merge and deduplicate
// firms, offices, and reviews across independently-collected source files.
// Keys favor the most specific signal available and stay stable no matter
// which source observes the record first.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"reviewmeta/internal/dataset"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonAlnumRun   = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// NormalizeText canonicalizes free text for key derivation and matching:
// Unicode-decomposed with combining marks stripped (diacritics-insensitive),
// whitespace runs collapsed to single spaces, trimmed, lowercased.
func NormalizeText(s string) string {
	s = stripMarks(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// stripMarks removes combining marks after NFD decomposition.
func stripMarks(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizePlatform maps a raw platform string onto the fixed platform set.
// Matching is case-insensitive substring; anything unrecognized (including
// empty) becomes "Other".
func NormalizePlatform(p string) string {
	x := strings.ToLower(p)
	switch {
	case strings.Contains(x, "google"):
		return "Google Maps"
	case strings.Contains(x, "firmy"):
		return "Firmy.cz"
	case strings.Contains(x, "facebook"):
		return "Facebook"
	default:
		return "Other"
	}
}

// FirmKey derives the merge key for a firm. A non-empty website is the most
// specific signal; the normalized name is the fallback. A firm with neither
// keys as "n:", a deliberate catch-all rather than an error.
func FirmKey(f dataset.SourceFirm) string {
	if w := strings.ToLower(strings.TrimSpace(f.Website)); w != "" {
		return "w:" + w
	}
	return "n:" + NormalizeText(f.FirmName)
}

// OfficeKey derives the merge key for an office, scoped within a firm.
// Offices lacking both city and address collapse into one "unknown" office
// per firm; that lossy merge is intentional.
func OfficeKey(o dataset.SourceOffice) string {
	city := strings.ToLower(strings.TrimSpace(o.City))
	addr := strings.ToLower(strings.TrimSpace(o.Address))
	switch {
	case city != "" && addr != "":
		return city + "|" + addr
	case city != "":
		return city
	case addr != "":
		return "addr:" + addr
	default:
		return "unknown"
	}
}

// ReviewKey derives the dedup key for a review. An external review id wins;
// otherwise the key is a composite of normalized platform, author, dates,
// rating, and content hashes of the normalized text and source URL. Two
// reviews identical on all of those collapse to one even without an id,
// which is what suppresses duplicates across overlapping source files.
func ReviewKey(r dataset.Review) string {
	plat := NormalizePlatform(r.Platform)
	if r.ReviewID != "" {
		return plat + "|rid:" + r.ReviewID
	}
	var b strings.Builder
	b.WriteString(plat)
	b.WriteString("|a:")
	b.WriteString(NormalizeText(r.AuthorName))
	b.WriteString("|dp:")
	b.WriteString(r.DatePublished)
	b.WriteString("|dr:")
	b.WriteString(r.DateRaw)
	b.WriteString("|r:")
	b.WriteString(formatRating(r.RatingValue))
	b.WriteString("/")
	b.WriteString(formatRating(r.RatingScale))
	b.WriteString("|t:")
	b.WriteString(contentHash(NormalizeText(r.ReviewText), "no_text"))
	b.WriteString("|u:")
	b.WriteString(contentHash(NormalizeText(r.SourceURL), "no_url"))
	return b.String()
}

// CompletenessScore ranks how much usable information a review carries, on a
// 0-12 scale. It is only a tie-breaker for dedup conflicts, not a
// correctness signal.
func CompletenessScore(r dataset.Review) int {
	s := 0
	if r.ReviewID != "" {
		s += 4
	}
	if r.DatePublished != "" {
		s += 2
	}
	if r.RatingValue != nil && r.RatingScale != nil {
		s += 2
	}
	if strings.TrimSpace(r.ReviewText) != "" {
		s += 2
	}
	if r.AuthorName != "" {
		s++
	}
	if r.SourceURL != "" {
		s++
	}
	return s
}

// Slugify renders a string as a URL-safe identifier: diacritics stripped,
// non-alphanumeric runs collapsed to single hyphens, lowercased. An empty
// result becomes "unknown".
func Slugify(s string) string {
	s = stripMarks(s)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.ToLower(strings.Trim(s, "-"))
	if s == "" {
		return "unknown"
	}
	return s
}

// WebsiteSlug slugifies the host component of a website URL, for use as a
// firm id fallback.
func WebsiteSlug(website string) string {
	w := strings.TrimPrefix(website, "https://")
	w = strings.TrimPrefix(w, "http://")
	if i := strings.IndexByte(w, '/'); i >= 0 {
		w = w[:i]
	}
	return Slugify(w)
}

func formatRating(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func contentHash(normalized, sentinel string) string {
	if normalized == "" {
		return sentinel
	}
	sum := sha1.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
