package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gastonapp/gaston-api/internal/database"
)

func setupExpenseNameTest(t *testing.T) (*ExpenseNameRepository, *CategoryRepository, context.Context) {
	t.Helper()

	tx := database.TestTx(t)
	return NewExpenseNameRepository(tx), NewCategoryRepository(tx), context.Background()
}

func TestExpenseNameRepository_Create(t *testing.T) {
	nameRepo, categoryRepo, ctx := setupExpenseNameTest(t)

	cat, err := categoryRepo.Create(ctx, "Comida", "#FF7043")
	require.NoError(t, err)

	t.Run("creates with suggested category", func(t *testing.T) {
		name, err := nameRepo.Create(ctx, "Supermercado", &cat.ID)
		require.NoError(t, err)
		require.NotZero(t, name.ID)
		require.NotNil(t, name.SuggestedCategoryID)
		require.Equal(t, cat.ID, *name.SuggestedCategoryID)
	})

	t.Run("creates without suggested category", func(t *testing.T) {
		name, err := nameRepo.Create(ctx, "Varios", nil)
		require.NoError(t, err)
		require.Nil(t, name.SuggestedCategoryID)
	})

	t.Run("rejects duplicate name case-insensitively", func(t *testing.T) {
		_, err := nameRepo.Create(ctx, "SUPERMERCADO", nil)
		require.Error(t, err)
	})
}

func TestExpenseNameRepository_GetByID(t *testing.T) {
	nameRepo, categoryRepo, ctx := setupExpenseNameTest(t)

	cat, err := categoryRepo.Create(ctx, "Transporte", "#42A5F5")
	require.NoError(t, err)
	created, err := nameRepo.Create(ctx, "Colectivo", &cat.ID)
	require.NoError(t, err)

	t.Run("loads suggested category", func(t *testing.T) {
		fetched, err := nameRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched.SuggestedCategory)
		require.Equal(t, "Transporte", fetched.SuggestedCategory.Name)
	})

	t.Run("returns error when absent", func(t *testing.T) {
		_, err := nameRepo.GetByID(ctx, 999999)
		require.Error(t, err)
	})
}

func TestExpenseNameRepository_SuggestedCategoryNulledOnDelete(t *testing.T) {
	nameRepo, categoryRepo, ctx := setupExpenseNameTest(t)

	cat, err := categoryRepo.Create(ctx, "Efímera", "#9E9E9E")
	require.NoError(t, err)
	name, err := nameRepo.Create(ctx, "Suscripción", &cat.ID)
	require.NoError(t, err)

	// Deleting the category clears the suggestion instead of cascading.
	require.NoError(t, categoryRepo.Delete(ctx, cat.ID))

	fetched, err := nameRepo.GetByID(ctx, name.ID)
	require.NoError(t, err)
	require.Nil(t, fetched.SuggestedCategoryID)
	require.Nil(t, fetched.SuggestedCategory)
}

func TestExpenseNameRepository_Update(t *testing.T) {
	nameRepo, categoryRepo, ctx := setupExpenseNameTest(t)

	cat, err := categoryRepo.Create(ctx, "Salud", "#EF5350")
	require.NoError(t, err)
	name, err := nameRepo.Create(ctx, "Farmacia", nil)
	require.NoError(t, err)

	err = nameRepo.Update(ctx, name.ID, "Farmacia Central", &cat.ID)
	require.NoError(t, err)

	fetched, err := nameRepo.GetByID(ctx, name.ID)
	require.NoError(t, err)
	require.Equal(t, "Farmacia Central", fetched.Name)
	require.NotNil(t, fetched.SuggestedCategoryID)
	require.Equal(t, cat.ID, *fetched.SuggestedCategoryID)
}

func TestExpenseNameRepository_Delete(t *testing.T) {
	nameRepo, _, ctx := setupExpenseNameTest(t)

	name, err := nameRepo.Create(ctx, "Temporal", nil)
	require.NoError(t, err)

	require.NoError(t, nameRepo.Delete(ctx, name.ID))

	_, err = nameRepo.GetByID(ctx, name.ID)
	require.Error(t, err)
}

func TestExpenseNameRepository_CountExpenses(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	nameRepo := NewExpenseNameRepository(tx)
	catRepo := NewCategoryRepository(tx)
	expRepo := NewExpenseRepository(tx)

	cat, err := catRepo.Create(ctx, "Comida", "#FF7043")
	require.NoError(t, err)
	name, err := nameRepo.Create(ctx, "Supermercado", nil)
	require.NoError(t, err)

	count, err := nameRepo.CountExpenses(ctx, name.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	seedExpense(t, expRepo, ctx, 100, "2025-01-13", cat.ID, name.ID)

	count, err = nameRepo.CountExpenses(ctx, name.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
