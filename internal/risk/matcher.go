package risk

import (
	"strings"

	"news-risk-analyzer/internal/entity"
)

// KeywordMatch is the outcome of scanning text against a company profile.
type KeywordMatch struct {
	// Keywords are the matched terms, de-duplicated in first-seen order.
	Keywords []string
	// Categories are the triggered risk categories, ordered by first match.
	Categories []string
}

// MatchKeywords scans text for the profile's risk keywords, sensitive
// topics, product keywords and competitor names using case-insensitive
// substring containment. The scan order is fixed (risk categories in
// profile order, then product keywords, then competitors), which keeps
// both output lists deterministic for identical inputs.
func MatchKeywords(text string, profile *entity.CompanyProfile) KeywordMatch {
	lower := strings.ToLower(text)
	match := KeywordMatch{Keywords: []string{}, Categories: []string{}}
	seen := make(map[string]bool)

	for _, category := range profile.Categories() {
		triggered := false
		for _, keyword := range category.Keywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			triggered = true
			if !seen[keyword] {
				seen[keyword] = true
				match.Keywords = append(match.Keywords, keyword)
			}
		}
		if triggered {
			match.Categories = append(match.Categories, category.Name)
		}
	}

	for _, keyword := range profile.ProductKeywords {
		if !strings.Contains(lower, keyword) || seen[keyword] {
			continue
		}
		seen[keyword] = true
		match.Keywords = append(match.Keywords, keyword)
	}

	for _, name := range profile.Competitors {
		if !strings.Contains(lower, name) {
			continue
		}
		term := "competitor: " + name
		if seen[term] {
			continue
		}
		seen[term] = true
		match.Keywords = append(match.Keywords, term)
	}

	return match
}
