package entity

import (
	"encoding/json"
)

// Article represents a single news item about the target company.
//
// Articles decoded from JSON keep every original field; unknown fields
// are carried through to the output document untouched. The canonical
// fields below are extracted for scoring, accepting the aliases the
// upstream collectors use (content/content_text/article_text,
// published_time/published, url/link).
type Article struct {
	Title         string
	Content       string
	Source        string
	PublishedTime string
	URL           string

	raw map[string]json.RawMessage
}

// UnmarshalJSON decodes an article while retaining all original fields.
func (a *Article) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	a.raw = fields
	a.Title = stringField(fields, "title")
	a.Content = firstStringField(fields, "content", "content_text", "article_text")
	a.Source = stringField(fields, "source")
	a.PublishedTime = firstStringField(fields, "published_time", "published")
	a.URL = firstStringField(fields, "url", "link")
	return nil
}

// MarshalJSON emits the article's original fields when it was decoded
// from JSON, or the canonical fields otherwise.
func (a Article) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.OutputFields())
}

// OutputFields returns the fields to serialize for this article. The
// redundant article_text alias is dropped, everything else passes
// through unmodified.
func (a Article) OutputFields() map[string]json.RawMessage {
	if a.raw != nil {
		out := make(map[string]json.RawMessage, len(a.raw))
		for k, v := range a.raw {
			if k == "article_text" {
				continue
			}
			out[k] = v
		}
		return out
	}

	out := make(map[string]json.RawMessage, 5)
	out["title"] = mustMarshalString(a.Title)
	if a.Content != "" {
		out["content"] = mustMarshalString(a.Content)
	}
	if a.Source != "" {
		out["source"] = mustMarshalString(a.Source)
	}
	if a.PublishedTime != "" {
		out["published_time"] = mustMarshalString(a.PublishedTime)
	}
	if a.URL != "" {
		out["url"] = mustMarshalString(a.URL)
	}
	return out
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func firstStringField(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		if s := stringField(fields, key); s != "" {
			return s
		}
	}
	return ""
}

func mustMarshalString(s string) json.RawMessage {
	raw, _ := json.Marshal(s)
	return raw
}
