package server

import (
	"encoding/json"
	"time"

	"gitlab.com/gastonapp/gaston-api/internal/calendar"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

type categoryView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type expenseNameView struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	SuggestedCategoryID *int   `json:"suggestedCategoryId"`
	SuggestedCategory   string `json:"suggestedCategory,omitempty"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

type expenseView struct {
	ID            int         `json:"id"`
	Amount        json.Number `json:"amount"`
	Date          string      `json:"date"`
	CategoryID    int         `json:"categoryId"`
	Category      string      `json:"category,omitempty"`
	ExpenseNameID int         `json:"expenseNameId"`
	ExpenseName   string      `json:"expenseName,omitempty"`
	Description   string      `json:"description,omitempty"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toCategoryView(cat models.Category) categoryView {
	return categoryView{
		ID:        cat.ID,
		Name:      cat.Name,
		Color:     cat.Color,
		CreatedAt: stamp(cat.CreatedAt),
		UpdatedAt: stamp(cat.UpdatedAt),
	}
}

func toExpenseNameView(name models.ExpenseName) expenseNameView {
	view := expenseNameView{
		ID:                  name.ID,
		Name:                name.Name,
		SuggestedCategoryID: name.SuggestedCategoryID,
		CreatedAt:           stamp(name.CreatedAt),
		UpdatedAt:           stamp(name.UpdatedAt),
	}
	if name.SuggestedCategory != nil {
		view.SuggestedCategory = name.SuggestedCategory.Name
	}
	return view
}

func toExpenseView(exp models.Expense) expenseView {
	view := expenseView{
		ID:            exp.ID,
		Amount:        json.Number(exp.Amount.StringFixed(2)),
		Date:          calendar.FormatDate(exp.Date),
		CategoryID:    exp.CategoryID,
		ExpenseNameID: exp.ExpenseNameID,
		Description:   exp.Description,
		CreatedAt:     stamp(exp.CreatedAt),
		UpdatedAt:     stamp(exp.UpdatedAt),
	}
	if exp.Category != nil {
		view.Category = exp.Category.Name
	}
	if exp.ExpenseName != nil {
		view.ExpenseName = exp.ExpenseName.Name
	}
	return view
}
