// Package models defines the domain entities for the GastOn expense tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxNameLength is the maximum allowed length for category and expense names.
const MaxNameLength = 50

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#9E9E9E"

// MaxAmount is the exclusive upper bound for expense amounts (10^8).
var MaxAmount = decimal.New(1, 8)

// Category groups expenses under a label with a display color (#RRGGBB).
type Category struct {
	ID        int
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseName is a reusable label for recurring expenses. It may suggest a
// category, but expenses using the name are free to pick another one.
type ExpenseName struct {
	ID                  int
	Name                string
	SuggestedCategoryID *int
	SuggestedCategory   *Category
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Expense is a single dated spending record.
type Expense struct {
	ID            int
	Amount        decimal.Decimal
	Date          time.Time
	CategoryID    int
	ExpenseNameID int
	Description   string
	Category      *Category
	ExpenseName   *ExpenseName
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RangeAggregate holds the overall statistics for a date range. All monetary
// fields are zero (not null) when Count is zero.
type RangeAggregate struct {
	Count              int64
	Sum                decimal.Decimal
	Avg                decimal.Decimal
	Min                decimal.Decimal
	Max                decimal.Decimal
	DistinctCategories int64
	DistinctNames      int64
}

// CategoryAggregate holds per-category totals for a date range. Every known
// category gets a row, including those with no expenses in range.
type CategoryAggregate struct {
	Category Category
	Count    int64
	Sum      decimal.Decimal
	Avg      decimal.Decimal
}
