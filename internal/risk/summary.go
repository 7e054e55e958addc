package risk

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"news-risk-analyzer/pkg/utils"
)

// Summary bounds.
const (
	MinSummarySentences = 3
	MaxSummarySentences = 5
	DefaultMaxSentences = 4

	minSentenceRunes = 20
	maxSummaryRunes  = 500
)

var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

// Summarize builds a naive extractive summary: the first maxSentences
// sentences longer than 20 characters, joined with ". ", ending with a
// period and capped at 500 characters. Content with no sentence above
// the length floor yields an empty summary.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	var sentences []string
	for _, part := range sentenceSplitRE.Split(text, -1) {
		s := strings.TrimSpace(part)
		if utf8.RuneCountInString(s) <= minSentenceRunes {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == maxSentences {
			break
		}
	}

	summary := strings.Join(sentences, ". ")
	if summary != "" && !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return utils.TruncateText(summary, maxSummaryRunes)
}
