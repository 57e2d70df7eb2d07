package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedInsights = errors.New("malformed insights response")

type InsightType string

const (
	InsightPositive  InsightType = "POSITIVE"
	InsightAttention InsightType = "ATTENTION"
)

type Insight struct {
	Text string      `json:"text"`
	Type InsightType `json:"type"`
}

// StripCodeFence removes a leading ```json (or bare ```) marker and a
// trailing ``` marker, then trims surrounding whitespace.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseInsights decodes a JSON array of {text, type} objects. Any missing key
// or unknown type fails the whole response; no partial list is returned.
func ParseInsights(raw string) ([]Insight, error) {
	var items []struct {
		Text *string `json:"text"`
		Type *string `json:"type"`
	}
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInsights, err)
	}

	insights := make([]Insight, 0, len(items))
	for i, item := range items {
		if item.Text == nil || item.Type == nil {
			return nil, fmt.Errorf("%w: item %d is missing text or type", ErrMalformedInsights, i)
		}
		kind := InsightType(*item.Type)
		if kind != InsightPositive && kind != InsightAttention {
			return nil, fmt.Errorf("%w: item %d has unknown type %q", ErrMalformedInsights, i, *item.Type)
		}
		insights = append(insights, Insight{Text: *item.Text, Type: kind})
	}
	return insights, nil
}

// ParseSummary reads the short month-summary strings. It accepts the insights
// JSON format and falls back to ";"-separated prose, trimming each piece and
// dropping empty ones. A JSON array that fails the insights checks yields
// nothing.
func ParseSummary(raw string) []string {
	insights, err := ParseInsights(raw)
	if err == nil {
		texts := make([]string, 0, len(insights))
		for _, in := range insights {
			texts = append(texts, in.Text)
		}
		return texts
	}
	if strings.HasPrefix(StripCodeFence(raw), "[") {
		return nil
	}

	var out []string
	for _, segment := range strings.Split(raw, ";") {
		if s := strings.TrimSpace(segment); s != "" {
			out = append(out, s)
		}
	}
	return out
}
