package risk

import (
	"fmt"
	"strings"

	"news-risk-analyzer/internal/entity"
)

// maxReportedKeywords caps the serialized matched-keyword list; the risk
// formula still consumes the full set.
const maxReportedKeywords = 10

// ValidationError reports an article that cannot be scored. It is
// recoverable at the batch level: the article is skipped and counted,
// the batch continues.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid article: %s %s", e.Field, e.Reason)
}

// Options tunes the analyzer.
type Options struct {
	// MaxSentences bounds the generated summary, clamped to [3, 5].
	// Zero means the default of 4.
	MaxSentences int
}

// Analyzer scores articles against a company profile. It holds no
// mutable state and is safe for concurrent use; the profile must be
// normalized and not mutated while shared.
type Analyzer struct {
	profile      *entity.CompanyProfile
	lexicon      Lexicon
	maxSentences int
}

// NewAnalyzer creates an Analyzer for the given profile. The profile's
// sentiment lexicon, when present, replaces the built-in word lists.
func NewAnalyzer(profile *entity.CompanyProfile, opts Options) *Analyzer {
	maxSentences := opts.MaxSentences
	if maxSentences == 0 {
		maxSentences = DefaultMaxSentences
	}
	if maxSentences < MinSummarySentences {
		maxSentences = MinSummarySentences
	}
	if maxSentences > MaxSummarySentences {
		maxSentences = MaxSummarySentences
	}

	lexicon := DefaultLexicon()
	if profile.Lexicon != nil {
		if len(profile.Lexicon.Positive) > 0 {
			lexicon.Positive = profile.Lexicon.Positive
		}
		if len(profile.Lexicon.Negative) > 0 {
			lexicon.Negative = profile.Lexicon.Negative
		}
	}

	return &Analyzer{
		profile:      profile,
		lexicon:      lexicon,
		maxSentences: maxSentences,
	}
}

// AnalyzeArticle scores a single article. Sentiment and keyword matching
// run over the title and content together; the summary comes from the
// content alone. The same article and profile always produce the same
// result.
func (a *Analyzer) AnalyzeArticle(article entity.Article) (entity.RiskAnalysisResult, error) {
	content := strings.TrimSpace(article.Content)
	if content == "" {
		return entity.RiskAnalysisResult{}, &ValidationError{Field: "content", Reason: "is empty"}
	}

	fullText := article.Title + " " + content

	sentiment := EstimateSentiment(fullText, a.lexicon)
	match := MatchKeywords(fullText, a.profile)
	riskScore := CalculateRiskScore(sentiment.Score, match.Keywords, match.Categories)

	reported := match.Keywords
	if len(reported) > maxReportedKeywords {
		reported = reported[:maxReportedKeywords]
	}

	return entity.RiskAnalysisResult{
		Summary:         Summarize(content, a.maxSentences),
		SentimentLabel:  sentiment.Label,
		SentimentScore:  Round2(sentiment.Score),
		RiskCategory:    match.Categories,
		RiskScore:       Round2(riskScore),
		MatchedKeywords: reported,
		Reasoning:       BuildReasoning(sentiment.Label, match.Categories, match.Keywords),
	}, nil
}
