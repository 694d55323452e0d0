package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/common"
	"github.com/chatfin/finbot/internal/flow"
	"github.com/chatfin/finbot/internal/model"
	"github.com/chatfin/finbot/internal/parser"
	"github.com/chatfin/finbot/internal/session"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation session",
		Long: `Start an interactive session. Type money notes like "50k taxi" or
"45k taxi, 15k snacks" and finbot records them, asking for a category when
it is unsure. Type "cancel" to drop a pending transaction, Ctrl-D to exit.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := currentUser()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	p, err := initParser()
	if err != nil {
		return err
	}

	// First contact: give the user the standard category set to pick from.
	existing, err := store.GetCategories(ctx, userID, model.CategoryTypeAny)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		if err := store.SeedDefaultCategories(ctx, userID); err != nil {
			return err
		}
	}

	sessions := session.NewStore(15 * time.Minute)
	defer sessions.Close()

	dialog := flow.New(p, store, store, store, sessions)
	reader := cli.NewReader(os.Stdin)

	fmt.Println(cli.TitleStyle.Render("finbot chat"))
	fmt.Println(cli.SubtleStyle.Render(`Tell me about your money: "50k taxi", "received 5k salary". Ctrl-D to quit.`))

	// The prompt shown while a category choice is pending, so numeric
	// replies can be mapped back to category ids.
	var choices []model.Category

	for {
		fmt.Print("> ")
		line, err := reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		var outcome flow.Outcome
		switch {
		case dialog.State(userID) == model.StateAwaitingCategory:
			outcome, err = handleChoice(ctx, dialog, userID, line, choices)
		default:
			outcome, err = dialog.HandleMessage(ctx, userID, line)
		}

		if err != nil {
			fmt.Println(cli.ErrorStyle.Render(common.UserMessage(err)))
			continue
		}

		choices = outcome.Choices
		if text := cli.RenderOutcome(outcome); text != "" {
			fmt.Println(text)
		}
	}
}

// handleChoice interprets a reply while a category selection is pending:
// either a choice number, a category name, or "cancel".
func handleChoice(ctx context.Context, dialog *flow.Flow, userID int64, line string, choices []model.Category) (flow.Outcome, error) {
	if strings.EqualFold(line, "cancel") {
		return dialog.Cancel(ctx, userID)
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(choices) {
			return flow.Outcome{}, common.NewUserError("Invalid choice.", common.ErrCategoryNotFound)
		}
		return dialog.SelectCategory(ctx, userID, choices[n-1].ID)
	}

	for _, cat := range choices {
		if strings.EqualFold(cat.Name, line) {
			return dialog.SelectCategory(ctx, userID, cat.ID)
		}
	}

	// Not a selection: chatter is swallowed silently, anything else gets
	// nudged back to the pending choice.
	if !parser.ShouldIgnore(line) {
		return flow.Outcome{}, common.NewUserError("Please pick a category number or 'cancel'.", common.ErrCategoryNotFound)
	}
	return flow.Outcome{Kind: flow.OutcomeIgnored}, nil
}
