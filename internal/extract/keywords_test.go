package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindGoods(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{name: "empty message", message: "", expected: nil},
		{name: "no keywords", message: "gaadi kal pahunch jayegi", expected: nil},
		{
			name:     "single phrase",
			message:  "24 ton Plastic Dana load karna hai",
			expected: []string{"plastic dana", "plastic", "dana"},
		},
		{
			name:     "phrase before its single words",
			message:  "iron scrap bhejna hai",
			expected: []string{"iron scrap", "scrap", "iron"},
		},
		{
			name:     "whole word only",
			message:  "scrapped plans",
			expected: nil,
		},
		{
			name:     "case insensitive",
			message:  "CEMENT aur STEEL",
			expected: []string{"cement", "steel"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindGoods(tt.message))
		})
	}
}
