package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatfin/finbot/internal/model"
)

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantType       model.TransactionType
		wantConfidence float64
	}{
		{
			name:           "strong income indicator",
			text:           "received payment from client",
			wantType:       model.TypeIncome,
			wantConfidence: 0.8,
		},
		{
			name:           "multiple income indicators cap at 0.95",
			text:           "received salary income",
			wantType:       model.TypeIncome,
			wantConfidence: 0.95,
		},
		{
			name:           "strong expense indicator",
			text:           "bought shoes",
			wantType:       model.TypeExpense,
			wantConfidence: 0.9,
		},
		{
			name:           "weak expense indicator alone",
			text:           "50 for parking",
			wantType:       model.TypeExpense,
			wantConfidence: 0.75,
		},
		{
			name:           "weak income indicator alone",
			text:           "got 50",
			wantType:       model.TypeIncome,
			wantConfidence: 0.65,
		},
		{
			name:           "no indicators default to expense",
			text:           "50k taxi",
			wantType:       model.TypeExpense,
			wantConfidence: 0.6,
		},
		{
			name:           "russian income indicator",
			text:           "получил доход",
			wantType:       model.TypeIncome,
			wantConfidence: 0.95,
		},
		{
			name:           "russian expense indicator",
			text:           "потратил на такси",
			wantType:       model.TypeExpense,
			wantConfidence: 0.9,
		},
		{
			name:           "tie between directions goes to expense",
			text:           "got paid for work",
			wantType:       model.TypeExpense,
			wantConfidence: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txType, confidence := classifyDirection(tt.text)

			assert.Equal(t, tt.wantType, txType)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-9)
		})
	}
}
