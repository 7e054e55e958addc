package entity

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// CompanyInfo identifies the company the analyzer scores news for.
type CompanyInfo struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
}

// SentimentLexicon overrides the built-in sentiment word lists.
type SentimentLexicon struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// RiskCategory is one category of risk keywords in its deterministic
// scan position.
type RiskCategory struct {
	Name     string
	Keywords []string
}

// CompanyProfile is the read-only knowledge base the analyzer scores
// against. It is loaded once per run and shared across workers, so it
// must not be mutated after Normalize.
type CompanyProfile struct {
	Company         CompanyInfo
	RiskKeywords    map[string][]string
	Competitors     []string
	ProductKeywords []string
	SensitiveTopics []string
	Lexicon         *SentimentLexicon

	companyRaw json.RawMessage
	categories []RiskCategory
}

// SensitiveCategory is the category recorded for sensitive-topic matches.
const SensitiveCategory = "sensitive"

// defaultCategoryOrder fixes the scan order for the well-known
// categories; any others follow in alphabetical order.
var defaultCategoryOrder = []string{"financial", "operational", "competitive", "regulatory", SensitiveCategory}

type companyProfileWire struct {
	Company          json.RawMessage     `json:"company"`
	RiskKeywords     map[string][]string `json:"risk_keywords"`
	Competitors      []json.RawMessage   `json:"competitors"`
	ProductKeywords  json.RawMessage     `json:"product_keywords"`
	SensitiveTopics  []string            `json:"sensitive_topics"`
	SentimentLexicon *SentimentLexicon   `json:"sentiment_lexicon"`
}

// UnmarshalJSON decodes the knowledge-base document, accepting the
// shapes upstream collectors produce: competitors as names or objects,
// product keywords as a list or grouped by product line.
func (p *CompanyProfile) UnmarshalJSON(data []byte) error {
	var wire companyProfileWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	p.companyRaw = wire.Company
	if len(wire.Company) > 0 {
		if err := json.Unmarshal(wire.Company, &p.Company); err != nil {
			return err
		}
	}

	p.RiskKeywords = wire.RiskKeywords
	p.SensitiveTopics = wire.SensitiveTopics
	p.Lexicon = wire.SentimentLexicon

	competitors, err := decodeCompetitors(wire.Competitors)
	if err != nil {
		return err
	}
	p.Competitors = competitors

	products, err := decodeProductKeywords(wire.ProductKeywords)
	if err != nil {
		return err
	}
	p.ProductKeywords = products

	return nil
}

func decodeCompetitors(raw []json.RawMessage) ([]string, error) {
	var names []string
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			names = append(names, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, errors.New("competitors must be names or objects with a name field")
		}
		names = append(names, obj.Name)
	}
	return names, nil
}

func decodeProductKeywords(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var grouped map[string][]string
	if err := json.Unmarshal(raw, &grouped); err != nil {
		return nil, errors.New("product_keywords must be a list or a map of lists")
	}
	lines := make([]string, 0, len(grouped))
	for line := range grouped {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	var flat []string
	for _, line := range lines {
		flat = append(flat, grouped[line]...)
	}
	return flat, nil
}

// Validate checks the profile carries enough knowledge to score with.
func (p *CompanyProfile) Validate() error {
	if strings.TrimSpace(p.Company.Name) == "" {
		return errors.New("company name is required")
	}
	for _, keywords := range p.RiskKeywords {
		for _, kw := range keywords {
			if strings.TrimSpace(kw) != "" {
				return nil
			}
		}
	}
	for _, topic := range p.SensitiveTopics {
		if strings.TrimSpace(topic) != "" {
			return nil
		}
	}
	return errors.New("at least one risk keyword or sensitive topic is required")
}

// Normalize lowercases every matchable term, folds sensitive topics into
// the sensitive category and fixes the category scan order. It must be
// called once after loading, before the profile is shared.
func (p *CompanyProfile) Normalize() {
	merged := make(map[string][]string, len(p.RiskKeywords)+1)
	for category, keywords := range p.RiskKeywords {
		name := strings.ToLower(strings.TrimSpace(category))
		if name == "" {
			continue
		}
		merged[name] = appendTerms(merged[name], keywords)
	}
	if len(p.SensitiveTopics) > 0 {
		merged[SensitiveCategory] = appendTerms(merged[SensitiveCategory], p.SensitiveTopics)
	}

	p.categories = p.categories[:0]
	seen := make(map[string]bool, len(merged))
	for _, name := range defaultCategoryOrder {
		if keywords, ok := merged[name]; ok && len(keywords) > 0 {
			p.categories = append(p.categories, RiskCategory{Name: name, Keywords: keywords})
			seen[name] = true
		}
	}
	var extras []string
	for name, keywords := range merged {
		if !seen[name] && len(keywords) > 0 {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		p.categories = append(p.categories, RiskCategory{Name: name, Keywords: merged[name]})
	}

	p.Competitors = appendTerms(nil, p.Competitors)
	p.ProductKeywords = appendTerms(nil, p.ProductKeywords)
}

// appendTerms lowercases, trims and de-duplicates terms into dst,
// preserving first-seen order.
func appendTerms(dst []string, terms []string) []string {
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		duplicate := false
		for _, existing := range dst {
			if existing == t {
				duplicate = true
				break
			}
		}
		if !duplicate {
			dst = append(dst, t)
		}
	}
	return dst
}

// Categories returns the risk categories in deterministic scan order.
func (p *CompanyProfile) Categories() []RiskCategory {
	return p.categories
}

// CompanyBlock returns the company object for the report, preserving the
// original document's fields when the profile was loaded from JSON.
func (p *CompanyProfile) CompanyBlock() json.RawMessage {
	if len(p.companyRaw) > 0 {
		return p.companyRaw
	}
	raw, _ := json.Marshal(p.Company)
	return raw
}
