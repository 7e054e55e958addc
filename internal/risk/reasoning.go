package risk

import (
	"fmt"
	"strings"

	"news-risk-analyzer/pkg/utils"
)

const (
	maxReasoningKeywords = 3
	maxReasoningRunes    = 250
)

// BuildReasoning explains a score in one templated sentence, for
// example: "The tone is negative and involves operational, regulatory
// concerns and with keywords: chip shortage, lawsuit.". At most three
// keywords are named and the text is capped at 250 characters.
func BuildReasoning(sentimentLabel string, categories, matchedKeywords []string) string {
	parts := []string{fmt.Sprintf("The tone is %s", sentimentLabel)}

	if len(categories) > 0 {
		parts = append(parts, fmt.Sprintf("involves %s concerns", strings.Join(categories, ", ")))
	}
	if len(matchedKeywords) > 0 {
		top := matchedKeywords
		if len(top) > maxReasoningKeywords {
			top = top[:maxReasoningKeywords]
		}
		parts = append(parts, fmt.Sprintf("with keywords: %s", strings.Join(top, ", ")))
	}

	return utils.TruncateText(strings.Join(parts, " and ")+".", maxReasoningRunes)
}
