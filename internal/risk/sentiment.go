// Package risk implements the pure scoring engine: sentiment estimation,
// keyword matching, risk scoring and batch aggregation. Every function
// here is deterministic and does no I/O, so identical inputs always
// produce identical results.
package risk

import (
	"math"
	"strings"
	"unicode"

	"news-risk-analyzer/internal/entity"
)

// Sentiment label thresholds. Scores at exactly the boundary are neutral.
const (
	negativeThreshold = -0.2
	positiveThreshold = 0.2
)

// Lexicon holds the positive and negative sentiment word lists. Entries
// with spaces are matched as phrases, single words as whole tokens.
type Lexicon struct {
	Positive []string
	Negative []string
}

// DefaultLexicon returns the built-in sentiment word lists. A knowledge
// base can override them per company.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Negative: []string{
			"loss", "fail", "decline", "drop", "plunge", "crash", "down",
			"fell", "slump", "weak", "poor", "miss", "delay", "shortage",
			"risk", "threat", "concern", "worry", "problem", "issue",
			"lawsuit", "sue", "fine", "penalty", "ban", "violation",
			"breach", "hack", "attack", "strike", "layoff", "cut",
		},
		Positive: []string{
			"gain", "rise", "growth", "increase", "surge", "jump", "up",
			"beat", "strong", "robust", "excellent", "success", "win",
			"profit", "revenue", "expansion", "launch", "innovation",
			"partnership", "deal", "agreement", "boost", "improve",
		},
	}
}

// SentimentResult is the outcome of sentiment estimation.
type SentimentResult struct {
	Label string
	Score float64
}

// EstimateSentiment scores text against the lexicon. The score is
// (positive hits - negative hits) / max(1, total hits), clamped to
// [-1, 1]. Text with no lexicon hits is neutral with score 0.
func EstimateSentiment(text string, lex Lexicon) SentimentResult {
	lower := strings.ToLower(text)
	freq := tokenFrequencies(lower)

	pos := countHits(lower, freq, lex.Positive)
	neg := countHits(lower, freq, lex.Negative)

	score := Clamp(float64(pos-neg)/math.Max(1, float64(pos+neg)), -1, 1)

	label := entity.SentimentNeutral
	switch {
	case score < negativeThreshold:
		label = entity.SentimentNegative
	case score > positiveThreshold:
		label = entity.SentimentPositive
	}

	return SentimentResult{Label: label, Score: score}
}

func tokenFrequencies(lower string) map[string]int {
	freq := make(map[string]int)
	for _, token := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	}) {
		freq[token]++
	}
	return freq
}

// countHits sums lexicon-entry occurrences: token frequency for single
// words, substring occurrences for phrases.
func countHits(lower string, freq map[string]int, terms []string) int {
	total := 0
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if strings.Contains(t, " ") {
			total += strings.Count(lower, t)
			continue
		}
		total += freq[t]
	}
	return total
}
