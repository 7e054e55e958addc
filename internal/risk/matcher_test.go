package risk

import (
	"testing"

	"news-risk-analyzer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(t *testing.T) *entity.CompanyProfile {
	t.Helper()
	profile := &entity.CompanyProfile{
		Company: entity.CompanyInfo{Name: "Apple Inc.", Industry: "Technology"},
		RiskKeywords: map[string][]string{
			"financial":   {"stock decline", "revenue miss"},
			"operational": {"chip shortage", "production"},
			"competitive": {"market share"},
			"regulatory":  {"lawsuit", "antitrust"},
		},
		SensitiveTopics: []string{"data breach", "privacy"},
		Competitors:     []string{"Samsung", "Microsoft"},
		ProductKeywords: []string{"iphone", "macbook"},
	}
	profile.Normalize()
	require.NoError(t, profile.Validate())
	return profile
}

func TestMatchKeywords(t *testing.T) {
	profile := testProfile(t)

	tests := []struct {
		name           string
		text           string
		wantKeywords   []string
		wantCategories []string
	}{
		{
			name:           "no matches yields empty lists",
			text:           "A quiet day on the exchange",
			wantKeywords:   []string{},
			wantCategories: []string{},
		},
		{
			// regulatory term appears first in the text but category
			// order follows the profile scan order
			name:           "categories follow profile order not text order",
			text:           "A lawsuit over the chip shortage",
			wantKeywords:   []string{"chip shortage", "lawsuit"},
			wantCategories: []string{"operational", "regulatory"},
		},
		{
			name:           "matching is case insensitive",
			text:           "CHIP SHORTAGE hits PRODUCTION lines",
			wantKeywords:   []string{"chip shortage", "production"},
			wantCategories: []string{"operational"},
		},
		{
			name:           "sensitive topics trigger the sensitive category",
			text:           "Regulators probe the data breach",
			wantKeywords:   []string{"data breach"},
			wantCategories: []string{"sensitive"},
		},
		{
			name:           "product keywords match without a category",
			text:           "The new iPhone ships next week",
			wantKeywords:   []string{"iphone"},
			wantCategories: []string{},
		},
		{
			name:           "competitors are recorded with a prefix and no category",
			text:           "Samsung unveils a rival device",
			wantKeywords:   []string{"competitor: samsung"},
			wantCategories: []string{},
		},
		{
			name:           "substring containment matches inside larger words",
			text:           "Productions resume after the stoppage",
			wantKeywords:   []string{"production"},
			wantCategories: []string{"operational"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchKeywords(tt.text, profile)
			assert.Equal(t, tt.wantKeywords, got.Keywords)
			assert.Equal(t, tt.wantCategories, got.Categories)
		})
	}
}

func TestMatchKeywordsDeduplicates(t *testing.T) {
	profile := &entity.CompanyProfile{
		Company: entity.CompanyInfo{Name: "Acme"},
		RiskKeywords: map[string][]string{
			"financial":   {"write-down", "write-down"},
			"operational": {"write-down"},
		},
	}
	profile.Normalize()

	got := MatchKeywords("A painful write-down this quarter", profile)

	// the keyword appears once, but both categories still trigger
	assert.Equal(t, []string{"write-down"}, got.Keywords)
	assert.Equal(t, []string{"financial", "operational"}, got.Categories)
}

func TestMatchKeywordsDeterministicAcrossRuns(t *testing.T) {
	profile := testProfile(t)
	text := "Lawsuit, data breach, chip shortage, iPhone and Samsung all at once"

	first := MatchKeywords(text, profile)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MatchKeywords(text, profile))
	}
	assert.Equal(t, []string{"operational", "regulatory", "sensitive"}, first.Categories)
	assert.Equal(t, []string{"chip shortage", "lawsuit", "data breach", "iphone", "competitor: samsung"}, first.Keywords)
}
