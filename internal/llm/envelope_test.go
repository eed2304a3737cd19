package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Shape
	}{
		{
			name:     "chat completions",
			raw:      `{"choices":[{"message":{"content":"hi"}}]}`,
			expected: ShapeChat,
		},
		{
			name:     "output items",
			raw:      `{"output":[{"content":[{"text":"hi"}]}]}`,
			expected: ShapeItems,
		},
		{
			name:     "output text only",
			raw:      `{"output_text":"hi"}`,
			expected: ShapeItems,
		},
		{
			name:     "neither",
			raw:      `{"id":"resp_123"}`,
			expected: ShapeUnrecognized,
		},
		{
			name:     "not json",
			raw:      `<html>`,
			expected: ShapeUnrecognized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectShape([]byte(tt.raw)))
		})
	}
}

func TestDecodeResponseText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "chat string content",
			raw:      `{"choices":[{"message":{"content":"{\"to\":\"Nagpur\"}"}}]}`,
			expected: `{"to":"Nagpur"}`,
		},
		{
			name:     "chat content parts",
			raw:      `{"choices":[{"message":{"content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}]}}]}`,
			expected: "part one part two",
		},
		{
			name:     "legacy choice text",
			raw:      `{"choices":[{"text":"plain completion"}]}`,
			expected: "plain completion",
		},
		{
			name:     "streaming delta",
			raw:      `{"choices":[{"delta":{"content":"chunk"}}]}`,
			expected: "chunk",
		},
		{
			name:     "output items concatenated",
			raw:      `{"output":[{"content":[{"text":"{\"weight\":"}]},{"content":[{"text":"\"24000\"}"}]}]}`,
			expected: `{"weight":"24000"}`,
		},
		{
			name:     "output_text fallback",
			raw:      `{"output_text":"fallback"}`,
			expected: "fallback",
		},
		{
			name:     "plain string output items",
			raw:      `{"output":["{\"to\":","\"Nagpur\"}"]}`,
			expected: `{"to":"Nagpur"}`,
		},
		{
			name:     "string content in output item",
			raw:      `{"output":[{"content":"whole text"}]}`,
			expected: "whole text",
		},
		{
			name:     "bare string parts in content array",
			raw:      `{"output":[{"content":["part one ","part two"]}]}`,
			expected: "part one part two",
		},
		{
			name:     "mixed string and object parts",
			raw:      `{"choices":[{"message":{"content":["plain ",{"type":"text","text":"typed"}]}}]}`,
			expected: "plain typed",
		},
		{
			name:     "first choice wins",
			raw:      `{"choices":[{"message":{"content":"first"}},{"message":{"content":"second"}}]}`,
			expected: "first",
		},
		{
			name:     "unrecognized yields empty",
			raw:      `{"id":"resp_123"}`,
			expected: "",
		},
		{
			name:     "invalid json yields empty",
			raw:      `not json`,
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeResponseText([]byte(tt.raw)))
		})
	}
}
