package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{
	"company": {"name": "Apple Inc.", "industry": "Technology", "ticker": "AAPL"},
	"risk_keywords": {
		"Financial": ["Stock Decline", "revenue miss", "revenue miss", "  "],
		"operational": ["chip shortage"],
		"legal": ["court order"]
	},
	"competitors": [{"name": "Samsung"}, "Microsoft"],
	"product_keywords": {"mac": ["macbook air"], "iphone": ["iphone 15", "iphone pro"]},
	"sensitive_topics": ["Data Breach"],
	"sentiment_lexicon": {"negative": ["bearish"]}
}`

func TestCompanyProfileUnmarshal(t *testing.T) {
	var profile CompanyProfile
	require.NoError(t, json.Unmarshal([]byte(profileJSON), &profile))

	assert.Equal(t, "Apple Inc.", profile.Company.Name)
	assert.Equal(t, "Technology", profile.Company.Industry)
	assert.Equal(t, []string{"Samsung", "Microsoft"}, profile.Competitors)
	assert.Equal(t, []string{"iphone 15", "iphone pro", "macbook air"}, profile.ProductKeywords)
	assert.Equal(t, []string{"Data Breach"}, profile.SensitiveTopics)
	require.NotNil(t, profile.Lexicon)
	assert.Equal(t, []string{"bearish"}, profile.Lexicon.Negative)
}

func TestCompanyProfileNormalize(t *testing.T) {
	var profile CompanyProfile
	require.NoError(t, json.Unmarshal([]byte(profileJSON), &profile))
	require.NoError(t, profile.Validate())
	profile.Normalize()

	categories := profile.Categories()
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	// Well-known categories first, extras behind them alphabetically.
	assert.Equal(t, []string{"financial", "operational", "sensitive", "legal"}, names)

	assert.Equal(t, []string{"stock decline", "revenue miss"}, categories[0].Keywords)
	assert.Equal(t, []string{"data breach"}, categories[2].Keywords)
	assert.Equal(t, []string{"samsung", "microsoft"}, profile.Competitors)
	assert.Equal(t, []string{"iphone 15", "iphone pro", "macbook air"}, profile.ProductKeywords)
}

func TestCompanyProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile CompanyProfile
		wantErr string
	}{
		{
			name:    "missing company name",
			profile: CompanyProfile{RiskKeywords: map[string][]string{"financial": {"loss"}}},
			wantErr: "company name is required",
		},
		{
			name:    "no keywords or topics",
			profile: CompanyProfile{Company: CompanyInfo{Name: "Acme"}},
			wantErr: "at least one risk keyword or sensitive topic is required",
		},
		{
			name: "blank keywords only",
			profile: CompanyProfile{
				Company:      CompanyInfo{Name: "Acme"},
				RiskKeywords: map[string][]string{"financial": {"  ", ""}},
			},
			wantErr: "at least one risk keyword or sensitive topic is required",
		},
		{
			name: "sensitive topic alone is enough",
			profile: CompanyProfile{
				Company:         CompanyInfo{Name: "Acme"},
				SensitiveTopics: []string{"privacy"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestCompanyBlockPassthrough(t *testing.T) {
	var profile CompanyProfile
	require.NoError(t, json.Unmarshal([]byte(profileJSON), &profile))

	assert.JSONEq(t, `{"name":"Apple Inc.","industry":"Technology","ticker":"AAPL"}`, string(profile.CompanyBlock()))
}

func TestCompanyBlockFromStruct(t *testing.T) {
	profile := &CompanyProfile{Company: CompanyInfo{Name: "Acme"}}
	assert.JSONEq(t, `{"name":"Acme"}`, string(profile.CompanyBlock()))
}

func TestCompanyProfileUnmarshalRejectsBadShapes(t *testing.T) {
	var profile CompanyProfile
	assert.Error(t, json.Unmarshal([]byte(`{"company":{"name":"Acme"},"competitors":[42]}`), &profile))
	assert.Error(t, json.Unmarshal([]byte(`{"company":{"name":"Acme"},"product_keywords":42}`), &profile))
}
