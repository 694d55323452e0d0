package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"money note passes", "50k taxi", false},
		{"russian note passes", "такси 30к", false},
		{"greeting", "hello", true},
		{"greeting case insensitive", "Hi", true},
		{"thanks", "thanks", true},
		{"single character", "x", true},
		{"overlong input", strings.Repeat("a", 201), true},
		{"long cyrillic note passes", "потратил на продукты " + strings.Repeat("и", 129), false},
		{"overlong cyrillic input", strings.Repeat("и", 201), true},
		{"url", "check https://example.com/deal", true},
		{"www url", "www.example.com", true},
		{"python fragment", "self.amount = 5", true},
		{"js fragment", "const x = () => y", true},
		{"symbol soup", "#$%^&*() {}[]", true},
		{"normal punctuation passes", "lunch, coffee and cake 40k", false},
		{"dollar amount passes", "$25 coffee", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.text))
		})
	}
}
