package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	reOpeningFence = regexp.MustCompile("^\\s*```[\\w\\s]*\\n?")
	reClosingFence = regexp.MustCompile("\\n?```\\s*$")
)

// ErrNoJSONObject is returned when no parseable JSON object can be recovered
// from the model output. A parse failure is a data-quality event, not a
// program error; the caller retries or fails closed.
var ErrNoJSONObject = errors.New("no parseable JSON object in model output")

// StripFormatting removes markdown fences and surrounding prose from model
// output, keeping only the first {...} span when one exists.
func StripFormatting(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return ""
	}
	t = reOpeningFence.ReplaceAllString(t, "")
	t = reClosingFence.ReplaceAllString(t, "")
	t = strings.ReplaceAll(t, "```json", "")
	t = braceSpan(t)
	return strings.TrimSpace(t)
}

// RecoverJSONObject recovers a JSON object from raw model text, leniently.
// It parses the stripped text first, then falls back to the brace span of the
// original text (fences sometimes hide inside the prose rather than around
// it). The returned bytes are the exact substring that parsed.
func RecoverJSONObject(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoJSONObject
	}

	cleaned := strings.TrimPrefix(StripFormatting(text), "\uFEFF")
	if isJSONObject(cleaned) {
		return []byte(cleaned), nil
	}

	fallback := strings.TrimSpace(braceSpan(strings.TrimSpace(text)))
	if fallback != "" && isJSONObject(fallback) {
		return []byte(fallback), nil
	}
	return nil, ErrNoJSONObject
}

// braceSpan slices s to the first '{' .. last '}' span when both exist.
func braceSpan(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first >= 0 && last > first {
		return s[first : last+1]
	}
	return s
}

func isJSONObject(s string) bool {
	if s == "" {
		return false
	}
	var m map[string]any
	return json.Unmarshal([]byte(s), &m) == nil
}
