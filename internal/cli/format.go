package cli

import (
	"fmt"
	"strings"

	"github.com/chatfin/finbot/internal/flow"
	"github.com/chatfin/finbot/internal/model"
)

// FormatAmount renders a monetary amount with thousand separators, dropping
// the fraction when it is zero.
func FormatAmount(amount float64) string {
	whole := int64(amount)
	fraction := amount - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}

	if fraction > 0.004 {
		return fmt.Sprintf("%s.%02d", b.String(), int(fraction*100+0.5))
	}
	return b.String()
}

// ConfidenceIndicator returns a short marker describing how sure the parser
// was.
func ConfidenceIndicator(confidence float64) string {
	switch {
	case confidence < 0.6:
		return " (?)"
	case confidence < 0.75:
		return " (~)"
	case confidence >= 0.9:
		return " (*)"
	default:
		return ""
	}
}

// guidanceText is shown when input could not be understood.
const guidanceText = `I couldn't understand that clearly.

Try these formats:
  50k taxi                       quick expense
  lunch 25000                    amount first or last
  bought groceries 120k          with description
  received 5k from freelance     for income`

// RenderOutcome formats a flow decision for the terminal.
func RenderOutcome(out flow.Outcome) string {
	switch out.Kind {
	case flow.OutcomeIgnored:
		return ""
	case flow.OutcomeRejected:
		return SubtleStyle.Render(guidanceText)
	case flow.OutcomeNoCategories:
		return WarningStyle.Render("No matching categories found. Create one first with: finbot categories add")
	case flow.OutcomeCancelled:
		return SubtleStyle.Render("Cancelled. Transaction was not saved.")
	case flow.OutcomeAutoCreated, flow.OutcomePromptCategory:
		return renderCommitAndPrompt(out)
	default:
		return ""
	}
}

func renderCommitAndPrompt(out flow.Outcome) string {
	var b strings.Builder

	if len(out.Committed) > 0 {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("%d transaction(s) logged", len(out.Committed))))
		if out.Total > 0 {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("   total -%s", FormatAmount(out.Total))))
		}
		b.WriteByte('\n')

		for _, line := range out.Committed {
			sign := "-"
			if line.Type == model.TypeIncome {
				sign = "+"
			}
			b.WriteString(fmt.Sprintf("  %s%s  %s%s", sign, FormatAmount(line.Amount), line.CategoryName, ConfidenceIndicator(line.Confidence)))
			if line.Description != "" && line.Description != "Transaction" {
				b.WriteString(SubtleStyle.Render("  " + line.Description))
			}
			b.WriteByte('\n')
			b.WriteString(renderBudget(line))
		}
	}

	if out.Failed > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%d transaction(s) could not be saved\n", out.Failed)))
	}

	if out.Kind == flow.OutcomePromptCategory && out.Pending != nil {
		b.WriteString(renderPrompt(out))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderBudget(line flow.CommittedLine) string {
	if line.Budget == nil {
		return ""
	}

	status := fmt.Sprintf("budget %s / %s (%.1f%%)",
		FormatAmount(line.Budget.Spent), FormatAmount(line.Budget.BudgetAmount), line.Budget.Percentage)

	switch {
	case line.Budget.IsExceeded:
		return "  " + ErrorStyle.Render("Budget exceeded! "+status) + "\n"
	case line.Budget.IsWarning:
		return "  " + WarningStyle.Render("Budget warning: "+status) + "\n"
	default:
		return "  " + SubtleStyle.Render(status) + "\n"
	}
}

func renderPrompt(out flow.Outcome) string {
	var b strings.Builder

	label, sign := "Expense", "-"
	if out.Pending.Type == model.TypeIncome {
		label, sign = "Income", "+"
	}

	b.WriteString(BoldStyle.Render(fmt.Sprintf("%s: %s%s", label, sign, FormatAmount(out.Pending.Amount))))
	b.WriteByte('\n')

	if out.Pending.Description != "" && out.Pending.Description != "Transaction" {
		b.WriteString(SubtleStyle.Render("  " + out.Pending.Description + "\n"))
	}
	if out.Pending.SuggestedCategory != "" {
		b.WriteString(SubtleStyle.Render("  suggested: " + out.Pending.SuggestedCategory + "\n"))
	}
	if out.Remaining > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d more transaction(s) need review\n", out.Remaining+1)))
	}

	b.WriteString("Select the correct category (or 'cancel'):\n")
	for i, cat := range out.Choices {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, cat.Name))
	}

	return b.String()
}
