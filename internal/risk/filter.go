package risk

import (
	"strings"
)

// contentProbeRunes is how much of the content head is checked for
// denial markers.
const contentProbeRunes = 200

// DefaultDenialPhrases mark scraper error pages that carry no real
// article content.
var DefaultDenialPhrases = []string{
	"access denied",
	"403 forbidden",
	"404 not found",
	"page not found",
	"enable javascript",
	"subscription required",
	"captcha",
}

// IsBlockedContent reports whether an article looks like an access-denial
// or error page rather than real content. The title and the first 200
// characters of content are checked case-insensitively against the
// denial phrases; an empty phrase list falls back to the defaults.
// Legitimately short articles are never flagged by length alone.
func IsBlockedContent(title, content string, denialPhrases []string) bool {
	if len(denialPhrases) == 0 {
		denialPhrases = DefaultDenialPhrases
	}

	head := []rune(content)
	if len(head) > contentProbeRunes {
		head = head[:contentProbeRunes]
	}
	probe := strings.ToLower(title + " " + string(head))

	for _, phrase := range denialPhrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" {
			continue
		}
		if strings.Contains(probe, p) {
			return true
		}
	}
	return false
}
