package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chatfin/finbot/internal/model"
)

// defaultCategories is the starter set created for a new user.
var defaultCategories = []struct {
	Name string
	Type model.CategoryType
}{
	{"Food", model.CategoryTypeExpense},
	{"Transport", model.CategoryTypeExpense},
	{"Groceries", model.CategoryTypeExpense},
	{"Entertainment", model.CategoryTypeExpense},
	{"Shopping", model.CategoryTypeExpense},
	{"Bills", model.CategoryTypeExpense},
	{"Healthcare", model.CategoryTypeExpense},
	{"Salary", model.CategoryTypeIncome},
	{"Other Income", model.CategoryTypeIncome},
}

// GetCategories returns the user's active categories, optionally filtered by
// type.
func (s *SQLiteStorage) GetCategories(ctx context.Context, userID int64, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, type, is_active, created_at
		FROM categories
		WHERE user_id = ? AND is_active = 1`
	args := []any{userID}

	if categoryType != model.CategoryTypeAny {
		query += ` AND type = ?`
		args = append(args, string(categoryType))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "user_id", userID, "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns the user's category with the given name
// (case-insensitive), or nil when not found.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, userID int64, name string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, type, is_active, created_at
		FROM categories
		WHERE user_id = ? AND name = ? COLLATE NOCASE AND is_active = 1`
	args := []any{userID, name}

	if categoryType != model.CategoryTypeAny {
		query += ` AND type = ?`
		args = append(args, string(categoryType))
	}

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.IsActive, &cat.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// GetCategoryByID returns the user's category with the given id, or nil when
// not found or owned by a different user.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, userID int64, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var cat model.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, is_active, created_at
		FROM categories
		WHERE id = ? AND user_id = ? AND is_active = 1`, id, userID).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.IsActive, &cat.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// CreateCategory creates a new category, reactivating a soft-deleted one
// with the same name if present.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, userID int64, name string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if categoryType != model.CategoryTypeIncome && categoryType != model.CategoryTypeExpense {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, categoryType)
	}

	var existing model.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, is_active, created_at
		FROM categories
		WHERE user_id = ? AND name = ? COLLATE NOCASE AND type = ?`,
		userID, name, string(categoryType)).Scan(
		&existing.ID, &existing.UserID, &existing.Name, &existing.Type, &existing.IsActive, &existing.CreatedAt,
	)

	if err == nil {
		if !existing.IsActive {
			if _, err := s.db.ExecContext(ctx, `UPDATE categories SET is_active = 1 WHERE id = ?`, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to reactivate category: %w", err)
			}
			existing.IsActive = true
			slog.Info("reactivated existing category", "name", name)
		}
		return &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, type, is_active, created_at)
		VALUES (?, ?, ?, 1, ?)`,
		userID, name, string(categoryType), now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	return &model.Category{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		IsActive:  true,
		CreatedAt: now,
	}, nil
}

// SeedDefaultCategories creates the starter category set for a user.
// Existing categories with the same names are left untouched.
func (s *SQLiteStorage) SeedDefaultCategories(ctx context.Context, userID int64) error {
	for _, def := range defaultCategories {
		if _, err := s.CreateCategory(ctx, userID, def.Name, def.Type); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", def.Name, err)
		}
	}
	return nil
}
