package extractor

import (
	"fmt"
	"strings"

	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

var htmlMarkers = []string{"<p", "<div", "<html", "<body", "<br", "<span", "<article", "<h1", "<h2", "</"}

// LooksLikeHTML reports whether the content appears to contain markup.
func LooksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range htmlMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Extractor converts HTML content into plain readable text.
type Extractor struct {
	logger *logger.Logger
}

// New creates a new Extractor.
func New(log *logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// Normalize returns plain text for content, running readable-text
// extraction only when the content looks like markup. Extraction failures
// fall back to the cleaned raw content.
func (e *Extractor) Normalize(content string) string {
	if !LooksLikeHTML(content) {
		return utils.SafeText(content)
	}
	text, err := e.Text(content)
	if err != nil {
		e.logger.Warn("Failed to extract readable text, using raw content", logger.ErrorField(err))
		return utils.SafeText(content)
	}
	return text
}

// Text extracts the readable text from HTML content.
func (e *Extractor) Text(htmlContent string) (string, error) {
	doc, err := readability.NewDocument(htmlContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse content: %w", err)
	}

	text, err := flattenHTML(doc.Content())
	if err != nil {
		return "", err
	}
	if text == "" {
		// readability discards fragments below its scoring threshold
		text, err = flattenHTML(htmlContent)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

func flattenHTML(s string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("failed to flatten content: %w", err)
	}
	return utils.SafeText(doc.Text()), nil
}
