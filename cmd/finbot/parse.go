package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/model"
	"github.com/chatfin/finbot/internal/parser"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a message without recording anything",
		Long: `Run the transaction parser on a message and print the extracted fields
and confidence scores. Nothing is written to the ledger; useful for checking
how a phrasing will be understood.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Bool("with-categories", false, "load the user's categories from the database for matching")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	if parser.ShouldIgnore(text) {
		fmt.Println(cli.SubtleStyle.Render("input would be ignored as non-transaction chatter"))
		return nil
	}

	var userCategories []model.Category
	if withCats, _ := cmd.Flags().GetBool("with-categories"); withCats {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		userCategories, err = store.GetCategories(cmd.Context(), currentUser(), model.CategoryTypeAny)
		if err != nil {
			return err
		}
	}

	p, err := initParser()
	if err != nil {
		return err
	}

	parsed := p.Parse(text, userCategories)

	if parsed.IsMultiple {
		fmt.Printf("multi-transaction message, %d segments, overall confidence %.3f\n",
			len(parsed.Segments), parsed.Confidence)
	}

	for i, seg := range parsed.Segments {
		if parsed.IsMultiple {
			fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("segment %d", i+1)))
		}
		printSegment(seg)
	}

	return nil
}

func printSegment(seg model.ParseResult) {
	if seg.Amount != nil {
		fmt.Printf("  amount:      %s (confidence %.2f)\n", cli.FormatAmount(*seg.Amount), seg.AmountConfidence)
	} else {
		fmt.Println("  amount:      none")
	}

	if seg.Category != "" {
		fmt.Printf("  category:    %s (confidence %.2f, keywords %s)\n",
			seg.Category, seg.CategoryConfidence, strings.Join(seg.MatchedKeywords, ", "))
	} else {
		fmt.Println("  category:    none")
	}

	fmt.Printf("  type:        %s (confidence %.2f)\n", seg.Type, seg.TypeConfidence)
	fmt.Printf("  description: %s\n", seg.Description)
	fmt.Printf("  confidence:  %.3f", seg.Confidence)
	if seg.NeedsClarification {
		fmt.Print(cli.WarningStyle.Render("  needs clarification"))
	}
	fmt.Println()
}
