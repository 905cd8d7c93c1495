package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpenseNameService_Create(t *testing.T) {
	fix, ctx := setupServices(t)

	cat, err := fix.categories.Create(ctx, "Comida", "")
	require.NoError(t, err)

	t.Run("creates a name without a suggestion", func(t *testing.T) {
		name, err := fix.names.Create(ctx, "supermercado dia", nil)
		require.NoError(t, err)
		require.Equal(t, "Supermercado Dia", name.Name)
		require.Nil(t, name.SuggestedCategoryID)
	})

	t.Run("creates a name with a suggested category", func(t *testing.T) {
		name, err := fix.names.Create(ctx, "Verduleria", &cat.ID)
		require.NoError(t, err)
		require.NotNil(t, name.SuggestedCategoryID)
		require.Equal(t, cat.ID, *name.SuggestedCategoryID)
	})

	t.Run("rejects unknown suggested category", func(t *testing.T) {
		missing := 99999
		_, err := fix.names.Create(ctx, "Farmacia", &missing)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects duplicate name ignoring case", func(t *testing.T) {
		_, err := fix.names.Create(ctx, "Kiosco", nil)
		require.NoError(t, err)
		_, err = fix.names.Create(ctx, "KIOSCO", nil)
		require.ErrorIs(t, err, ErrNameTaken)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := fix.names.Create(ctx, "  ", nil)
		require.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestExpenseNameService_Update(t *testing.T) {
	fix, ctx := setupServices(t)

	cat, err := fix.categories.Create(ctx, "Comida", "")
	require.NoError(t, err)
	name, err := fix.names.Create(ctx, "Supermercado", nil)
	require.NoError(t, err)

	t.Run("renames and sets a suggestion", func(t *testing.T) {
		updated, err := fix.names.Update(ctx, name.ID, "supermercado dia", &cat.ID)
		require.NoError(t, err)
		require.Equal(t, "Supermercado Dia", updated.Name)
		require.NotNil(t, updated.SuggestedCategoryID)
		require.Equal(t, cat.ID, *updated.SuggestedCategoryID)
	})

	t.Run("clears the suggestion with nil", func(t *testing.T) {
		updated, err := fix.names.Update(ctx, name.ID, "Supermercado Dia", nil)
		require.NoError(t, err)
		require.Nil(t, updated.SuggestedCategoryID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := fix.names.Update(ctx, 99999, "Nada", nil)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExpenseNameService_Delete(t *testing.T) {
	fix, ctx := setupServices(t)

	cat, err := fix.categories.Create(ctx, "Comida", "")
	require.NoError(t, err)

	t.Run("deletes unused name", func(t *testing.T) {
		name, err := fix.names.Create(ctx, "Temporal", nil)
		require.NoError(t, err)
		require.NoError(t, fix.names.Delete(ctx, name.ID))
		_, err = fix.names.Get(ctx, name.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("refuses to delete a referenced name", func(t *testing.T) {
		name, err := fix.names.Create(ctx, "Supermercado", nil)
		require.NoError(t, err)
		_, err = fix.expenses.Create(ctx, ExpenseInput{
			Amount:        "100",
			Date:          "2025-06-14",
			CategoryID:    cat.ID,
			ExpenseNameID: name.ID,
		})
		require.NoError(t, err)

		require.ErrorIs(t, fix.names.Delete(ctx, name.ID), ErrInUse)
	})
}
