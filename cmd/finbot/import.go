package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chatfin/finbot/internal/cli"
	"github.com/chatfin/finbot/internal/model"
	"github.com/chatfin/finbot/internal/parser"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Backfill transactions from a CSV of money notes",
		Long: `Import historical notes from a CSV file. Each row is "text[,date]" where
text is a free-form note ("50k taxi") and date is an optional YYYY-MM-DD.
Only rows the parser is confident about are committed; ambiguous rows are
reported and skipped rather than queued for interactive review.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Float64("min-confidence", 0.75, "minimum confidence to commit a row")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID := currentUser()
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")

	file, err := os.Open(args[0]) //nolint:gosec // User-supplied import path
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = file.Close() }()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	p, err := initParser()
	if err != nil {
		return err
	}

	userCategories, err := store.GetCategories(ctx, userID, model.CategoryTypeAny)
	if err != nil {
		return err
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read csv: %w", err)
		}
		if len(record) > 0 && record[0] != "" {
			rows = append(rows, record)
		}
	}

	bar := progressbar.Default(int64(len(rows)), "importing")

	var committed, skipped, failed int
	for _, row := range rows {
		_ = bar.Add(1)

		text := row[0]
		date := time.Now().UTC()
		if len(row) > 1 {
			if d, err := time.Parse("2006-01-02", row[1]); err == nil {
				date = d
			}
		}

		if parser.ShouldIgnore(text) {
			skipped++
			continue
		}

		for _, seg := range p.Parse(text, userCategories).Segments {
			switch {
			case !seg.HasAmount(), seg.Confidence < minConfidence, seg.Category == "":
				skipped++
				continue
			default:
			}

			category, err := store.GetCategoryByName(ctx, userID, seg.Category, seg.Type.CategoryType())
			if err != nil {
				return err
			}
			if category == nil {
				skipped++
				continue
			}

			method := model.PaymentCash
			if seg.Type == model.TypeIncome {
				method = model.PaymentBank
			}

			err = store.CreateTransaction(ctx, &model.Transaction{
				ID:            uuid.NewString(),
				UserID:        userID,
				Amount:        *seg.Amount,
				CategoryID:    category.ID,
				Type:          seg.Type,
				Description:   seg.Description,
				PaymentMethod: method,
				Date:          date,
			})
			if err != nil {
				slog.Error("failed to import row", "text", text, "error", err)
				failed++
				continue
			}
			committed++
		}
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("imported %d transaction(s)", committed)))
	if skipped > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d row(s) skipped (low confidence or unmatched category)", skipped)))
	}
	if failed > 0 {
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("%d row(s) failed to save", failed)))
	}
	return nil
}
