// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package themes assigns thematic categories to review text using fixed
// keyword taxonomies. The default taxonomy is bilingual (Czech/English) and
// tuned to recurring concerns in law-firm reviews.
package themes

import (
	"strings"

	"reviewmeta/internal/identity"
)

// Category is one named theme with its keyword substrings.
type Category struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// Taxonomy is an ordered list of categories. Declaration order is
// significant: classification results are emitted in this order.
type Taxonomy []Category

// DefaultTaxonomy is the built-in keyword taxonomy.
var DefaultTaxonomy = Taxonomy{
	{
		Name:        "communication_responsiveness",
		Description: "Reachability, replies to calls and email",
		Keywords:    []string{"komunik", "neodpov", "email", "telefon", "call", "reply", "respond", "dovolat"},
	},
	{
		Name:        "professionalism_competence",
		Description: "Expertise and quality of work",
		Keywords:    []string{"profesion", "expert", "kvalit", "professionals", "excellent", "brilliant", "neprofesion", "lajd"},
	},
	{
		Name:        "ethics_trust",
		Description: "Honesty, fairness, trustworthiness",
		Keywords:    []string{"etika", "ethic", "nefér", "podvod", "lži", "lies", "slander", "dirty", "zneuž", "zatajuj", "neserióz", "without ethics"},
	},
	{
		Name:        "fees_value_transparency",
		Description: "Pricing, costs, value for money",
		Keywords:    []string{"cena", "náklad", "cost", "fees", "price", "záloha", "prachy", "peníze", "value", "finance", "majetek"},
	},
	{
		Name:        "speed_timeliness",
		Description: "Pace of progress, delays",
		Keywords:    []string{"rychl", "fast", "delay", "zpožd", "roky", "late", "pozd", "nikam se nepohnul"},
	},
	{
		Name:        "outcome_effectiveness",
		Description: "Whether the matter was actually resolved",
		Keywords:    []string{"vyřeš", "solution", "help", "pomoc", "nepomoh", "result", "success", "spravedlnost", "pokrok"},
	},
	{
		Name:        "empathy_human_approach",
		Description: "Personal treatment of clients",
		Keywords:    []string{"přístup", "human", "arrog", "arogant", "poniž", "zesměš", "unpleasant", "reception"},
	},
	{
		Name:        "enforcement_debt_mass_mail",
		Description: "Debt collection and mass pre-suit enforcement practices",
		Keywords:    []string{"dluh", "vymáh", "exekuc", "pojist", "předžalob", "automatiz", "picrights", "copyright", "mass", "threat"},
	},
}

// MaxCategoriesPerText caps how many categories a single text may receive.
const MaxCategoriesPerText = 3

// Classifier tests normalized text against a taxonomy. It is immutable
// after construction and safe for concurrent use.
type Classifier struct {
	categories []compiledCategory
}

type compiledCategory struct {
	name     string
	keywords []string
}

// NewClassifier compiles a taxonomy into a classifier. Keywords are
// normalized with the same rules applied to review text, so matching is
// case- and diacritics-insensitive.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	c := &Classifier{categories: make([]compiledCategory, 0, len(taxonomy))}
	for _, cat := range taxonomy {
		compiled := compiledCategory{name: cat.Name}
		for _, kw := range cat.Keywords {
			if normalized := identity.NormalizeText(kw); normalized != "" {
				compiled.keywords = append(compiled.keywords, normalized)
			}
		}
		c.categories = append(c.categories, compiled)
	}
	return c
}

// Categorize returns the matched category names in taxonomy order, capped at
// MaxCategoriesPerText. Empty text yields no categories.
func (c *Classifier) Categorize(text string) []string {
	t := identity.NormalizeText(text)
	if t == "" {
		return nil
	}
	var out []string
	for _, cat := range c.categories {
		for _, kw := range cat.keywords {
			if strings.Contains(t, kw) {
				out = append(out, cat.name)
				break
			}
		}
	}
	if len(out) > MaxCategoriesPerText {
		out = out[:MaxCategoriesPerText]
	}
	return out
}

// Categories returns the category names in taxonomy declaration order.
func (c *Classifier) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.name
	}
	return names
}
