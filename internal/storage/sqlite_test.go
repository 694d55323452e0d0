package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfin/finbot/internal/common"
	"github.com/chatfin/finbot/internal/model"
)

const testUser int64 = 7

// createTestStorage opens a migrated database in a temp directory.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTransaction(categoryID int64, amount float64) *model.Transaction {
	return &model.Transaction{
		ID:            uuid.NewString(),
		UserID:        testUser,
		Amount:        amount,
		CategoryID:    categoryID,
		Type:          model.TypeExpense,
		Description:   "test expense",
		PaymentMethod: model.PaymentCash,
		Date:          time.Now().UTC(),
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Re-running migrations is a no-op.
	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSchemaVersion_FreshDatabase(t *testing.T) {
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestCreateCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Coffee", model.CategoryTypeExpense)
	require.NoError(t, err)
	assert.NotZero(t, cat.ID)
	assert.Equal(t, "Coffee", cat.Name)
	assert.Equal(t, model.CategoryTypeExpense, cat.Type)
	assert.True(t, cat.IsActive)

	// Creating the same name again returns the existing row.
	again, err := store.CreateCategory(ctx, testUser, "coffee", model.CategoryTypeExpense)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, again.ID)

	// Same name with a different type is a distinct category.
	other, err := store.CreateCategory(ctx, testUser, "Coffee", model.CategoryTypeIncome)
	require.NoError(t, err)
	assert.NotEqual(t, cat.ID, other.ID)
}

func TestCreateCategory_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateCategory(ctx, testUser, "  ", model.CategoryTypeExpense)
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = store.CreateCategory(ctx, 0, "Coffee", model.CategoryTypeExpense)
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = store.CreateCategory(ctx, testUser, "Coffee", model.CategoryType("weird"))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestGetCategories_TypeFilterAndOrder(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDefaultCategories(ctx, testUser))

	all, err := store.GetCategories(ctx, testUser, model.CategoryTypeAny)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	// Name-ordered.
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}

	income, err := store.GetCategories(ctx, testUser, model.CategoryTypeIncome)
	require.NoError(t, err)
	require.Len(t, income, 2)
	for _, c := range income {
		assert.Equal(t, model.CategoryTypeIncome, c.Type)
	}

	// Other users see nothing.
	none, err := store.GetCategories(ctx, testUser+1, model.CategoryTypeAny)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSeedDefaultCategories_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDefaultCategories(ctx, testUser))
	require.NoError(t, store.SeedDefaultCategories(ctx, testUser))

	all, err := store.GetCategories(ctx, testUser, model.CategoryTypeAny)
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

func TestGetCategoryByName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, testUser, "Transport", model.CategoryTypeExpense)
	require.NoError(t, err)

	tests := []struct {
		name         string
		lookup       string
		categoryType model.CategoryType
		wantFound    bool
	}{
		{"exact match", "Transport", model.CategoryTypeExpense, true},
		{"case insensitive", "transport", model.CategoryTypeExpense, true},
		{"uppercase", "TRANSPORT", model.CategoryTypeAny, true},
		{"wrong type", "Transport", model.CategoryTypeIncome, false},
		{"unknown name", "Nope", model.CategoryTypeAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := store.GetCategoryByName(ctx, testUser, tt.lookup, tt.categoryType)
			require.NoError(t, err)

			if !tt.wantFound {
				assert.Nil(t, cat)
				return
			}
			require.NotNil(t, cat)
			assert.Equal(t, created.ID, cat.ID)
		})
	}
}

func TestGetCategoryByID_ScopedToUser(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)

	got, err := store.GetCategoryByID(ctx, testUser, cat.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Food", got.Name)

	// Another user cannot see it.
	got, err = store.GetCategoryByID(ctx, testUser+1, cat.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateTransaction_AndRecent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		txn := testTransaction(cat.ID, float64((i+1)*100))
		txn.Description = fmt.Sprintf("expense %d", i+1)
		txn.Date = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.CreateTransaction(ctx, txn))
	}

	recent, err := store.GetRecentTransactions(ctx, testUser, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first, with the category name joined in.
	assert.Equal(t, "expense 3", recent[0].Description)
	assert.Equal(t, "expense 2", recent[1].Description)
	assert.Equal(t, "Food", recent[0].CategoryName)
}

func TestCreateTransaction_FailureWrapsPersistence(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// A duplicate primary key fails at the SQL level, past validation.
	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)

	txn := testTransaction(cat.ID, 100)
	require.NoError(t, store.CreateTransaction(ctx, txn))

	err = store.CreateTransaction(ctx, txn)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestCreateTransaction_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	err := store.CreateTransaction(ctx, nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	txn := testTransaction(1, 100)
	txn.ID = ""
	assert.ErrorIs(t, store.CreateTransaction(ctx, txn), ErrInvalidTransaction)

	txn = testTransaction(1, -5)
	assert.ErrorIs(t, store.CreateTransaction(ctx, txn), ErrInvalidAmount)

	txn = testTransaction(1, 100)
	txn.Type = "transfer"
	assert.ErrorIs(t, store.CreateTransaction(ctx, txn), ErrInvalidType)
}

func TestGetTransactionsByPeriod(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		day.Add(-time.Hour),     // before the window
		day.Add(2 * time.Hour),  // inside
		day.Add(20 * time.Hour), // inside
		day.Add(24 * time.Hour), // at the exclusive end
	}
	for i, d := range dates {
		txn := testTransaction(cat.ID, float64((i+1)*10))
		txn.Date = d
		require.NoError(t, store.CreateTransaction(ctx, txn))
	}

	got, err := store.GetTransactionsByPeriod(ctx, testUser, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Oldest first.
	assert.InDelta(t, 20, got[0].Amount, 1e-9)
	assert.InDelta(t, 30, got[1].Amount, 1e-9)
}

func TestBudgets_SetAndGet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)

	require.NoError(t, store.SetBudget(ctx, testUser, cat.ID, 1000))

	// Upsert replaces the amount.
	require.NoError(t, store.SetBudget(ctx, testUser, cat.ID, 2000))

	budgets, err := store.GetBudgets(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.InDelta(t, 2000, budgets[cat.ID], 1e-9)

	assert.ErrorIs(t, store.SetBudget(ctx, testUser, cat.ID, 0), ErrInvalidAmount)
}

func TestBudgetStatus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)

	// No budget configured.
	status, err := store.Status(ctx, testUser, cat.ID)
	require.NoError(t, err)
	assert.Nil(t, status)

	require.NoError(t, store.SetBudget(ctx, testUser, cat.ID, 1000))

	tests := []struct {
		name           string
		spend          float64
		wantPercentage float64
		wantWarning    bool
		wantExceeded   bool
	}{
		{"well under budget", 500, 50, false, false},
		{"crosses warning band", 350, 85, true, false},
		{"exactly at budget stays warning", 150, 100, true, false},
		{"over budget", 100, 110, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.CreateTransaction(ctx, testTransaction(cat.ID, tt.spend)))

			status, err := store.Status(ctx, testUser, cat.ID)
			require.NoError(t, err)
			require.NotNil(t, status)

			assert.InDelta(t, 1000, status.BudgetAmount, 1e-9)
			assert.InDelta(t, tt.wantPercentage, status.Percentage, 1e-9)
			assert.Equal(t, tt.wantWarning, status.IsWarning, "spent %v", status.Spent)
			assert.Equal(t, tt.wantExceeded, status.IsExceeded, "spent %v", status.Spent)
		})
	}
}

func TestBudgetStatus_IgnoresIncome(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, testUser, "Food", model.CategoryTypeExpense)
	require.NoError(t, err)
	require.NoError(t, store.SetBudget(ctx, testUser, cat.ID, 1000))

	income := testTransaction(cat.ID, 5000)
	income.Type = model.TypeIncome
	income.PaymentMethod = model.PaymentBank
	require.NoError(t, store.CreateTransaction(ctx, income))

	status, err := store.Status(ctx, testUser, cat.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Zero(t, status.Spent)
}
