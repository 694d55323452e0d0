package parser

import (
	"strings"

	"github.com/chatfin/finbot/internal/model"
)

// Indicator sets for transaction direction. Strong indicators score 2,
// weak indicators 0.5. Matching is substring-based, mirroring how people
// embed these words in short utterances.
var (
	strongIncomeIndicators = []string{
		"received", "gift", "got paid", "earned", "salary", "income", "paycheck",
		"получил", "зарплата", "доход", "оплата получена",
	}
	weakIncomeIndicators = []string{"got", "получил деньги"}

	strongExpenseIndicators = []string{
		"spent", "paid", "bought", "purchased", "cost",
		"потратил", "заплатил", "купил", "стоило",
	}
	weakExpenseIndicators = []string{"for", "on"}
)

// classifyDirection decides income vs. expense from lexical indicators.
// Expense is the deliberate low-confidence default: it is the far more
// common direction and downstream thresholds are tuned against this bias.
func classifyDirection(text string) (model.TransactionType, float64) {
	lower := strings.ToLower(text)

	incomeScore := indicatorScore(lower, strongIncomeIndicators, weakIncomeIndicators)
	expenseScore := indicatorScore(lower, strongExpenseIndicators, weakExpenseIndicators)

	if incomeScore > 0 && incomeScore > expenseScore {
		return model.TypeIncome, minFloat(0.95, 0.6+incomeScore*0.1)
	}

	if expenseScore > 0 {
		return model.TypeExpense, minFloat(0.9, 0.7+expenseScore*0.1)
	}

	return model.TypeExpense, 0.6
}

func indicatorScore(text string, strong, weak []string) float64 {
	var score float64
	for _, ind := range strong {
		if strings.Contains(text, ind) {
			score += 2
		}
	}
	for _, ind := range weak {
		if strings.Contains(text, ind) {
			score += 0.5
		}
	}
	return score
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
