package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hissain/fastrep/internal/model"
)

// StripCodeFence removes a surrounding markdown code fence (with or without
// a language tag) from a response. Providers are told not to emit fences but
// some do anyway.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	idx := strings.Index(s, "\n")
	if idx < 0 {
		return ""
	}
	s = s[idx+1:]

	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// ParseSummaryResult parses a provider response into a summary result.
// The response must be a JSON object mapping project names to ordered
// {date, description} pairs. A malformed response is an error; the caller
// never applies a partial result.
func ParseSummaryResult(raw string) (model.SummaryResult, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var result model.SummaryResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse summary response: %w", err)
	}
	return result, nil
}
