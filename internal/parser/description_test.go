package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDescription(t *testing.T) {
	p := New()

	tests := []struct {
		name      string
		text      string
		hasAmount bool
		want      string
	}{
		{
			name:      "amount and keyword strip to placeholder",
			text:      "50k taxi",
			hasAmount: true,
			want:      "Transaction",
		},
		{
			name:      "residual words survive",
			text:      "lunch with friends 25k",
			hasAmount: true,
			want:      "with friends",
		},
		{
			name:      "merchant detail survives indicator stripping",
			text:      "paid 50k to Alisher for plov",
			hasAmount: true,
			want:      "to Alisher plov",
		},
		{
			name:      "leading connector removed",
			text:      "25k for coffee at work",
			hasAmount: true,
			want:      "work",
		},
		{
			name:      "cyrillic keywords strip cleanly",
			text:      "такси 30к",
			hasAmount: true,
			want:      "Transaction",
		},
		{
			name:      "empty input",
			text:      "",
			hasAmount: false,
			want:      "Transaction",
		},
		{
			name:      "amount kept when not extracted",
			text:      "maybe 500 later",
			hasAmount: false,
			want:      "maybe 500 later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.extractDescription(tt.text, tt.hasAmount))
		})
	}
}

func TestExtractDescription_Truncation(t *testing.T) {
	p := New()

	long := strings.Repeat("x", 150)
	got := p.extractDescription(long, false)

	assert.Len(t, []rune(got), maxDescriptionLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractDescription_KeywordInsideWordKept(t *testing.T) {
	p := New()

	// "rent" is a bills keyword but "parents" must stay intact.
	got := p.extractDescription("parents evening", false)
	assert.Equal(t, "parents evening", got)
}
