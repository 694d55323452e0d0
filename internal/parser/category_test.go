package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatfin/finbot/internal/model"
)

func TestMatchCategory(t *testing.T) {
	p := New()

	tests := []struct {
		name           string
		text           string
		userCategories []model.Category
		wantName       string
		wantKeywords   []string
		wantConfidence float64
	}{
		{
			name:           "single primary keyword",
			text:           "taxi to airport",
			wantName:       "transport",
			wantKeywords:   []string{"taxi"},
			wantConfidence: 0.85,
		},
		{
			name:           "two primary keywords reach top band",
			text:           "lunch at cafe",
			wantName:       "food",
			wantKeywords:   []string{"lunch", "cafe"},
			wantConfidence: 0.95,
		},
		{
			name:           "secondary keyword scores at half weight",
			text:           "snack",
			wantName:       "food",
			wantKeywords:   []string{"snack*"},
			wantConfidence: 0.65,
		},
		{
			name:           "russian keyword",
			text:           "аптека",
			wantName:       "healthcare",
			wantKeywords:   []string{"аптека"},
			wantConfidence: 0.75,
		},
		{
			name: "verbatim user category name wins outright",
			text: "coffee beans 30k",
			userCategories: []model.Category{
				{ID: 7, Name: "Coffee Beans", Type: model.CategoryTypeExpense},
			},
			wantName:       "Coffee Beans",
			wantKeywords:   []string{"coffee beans"},
			wantConfidence: 0.95,
		},
		{
			name: "user category word match",
			text: "pets vitamins 20k",
			userCategories: []model.Category{
				{ID: 3, Name: "Pets", Type: model.CategoryTypeExpense},
			},
			wantName:       "Pets",
			wantKeywords:   []string{"pets"},
			wantConfidence: 0.85,
		},
		{
			name:           "equal scores resolve by table order",
			text:           "meal ride",
			wantName:       "food",
			wantKeywords:   []string{"meal"},
			wantConfidence: 0.85,
		},
		{
			name: "short user category words are ignored",
			text: "fun 40k",
			userCategories: []model.Category{
				{ID: 5, Name: "Fun Stuff", Type: model.CategoryTypeExpense},
			},
			wantName: "",
		},
		{
			name:     "no match returns zero value",
			text:     "zzz qqq",
			wantName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := p.matchCategory(tt.text, tt.userCategories)

			assert.Equal(t, tt.wantName, match.Name)
			if tt.wantName == "" {
				assert.Empty(t, match.Keywords)
				assert.Zero(t, match.Confidence)
				return
			}
			assert.Equal(t, tt.wantKeywords, match.Keywords)
			assert.InDelta(t, tt.wantConfidence, match.Confidence, 1e-9)
		})
	}
}

func TestMatchCategory_Deterministic(t *testing.T) {
	p := New()

	// Equal-scoring candidates must resolve the same way on every call.
	first := p.matchCategory("meal ride", nil)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, p.matchCategory("meal ride", nil))
	}
}

func TestScoreToConfidence(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{4.0, 0.95},
		{3.0, 0.95},
		{2.0, 0.85},
		{1.5, 0.75},
		{1.0, 0.65},
		{0.5, 0.45},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, scoreToConfidence(tt.score), 1e-9, "score %v", tt.score)
	}
}
