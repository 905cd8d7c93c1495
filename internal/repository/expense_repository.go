package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/gastonapp/gaston-api/internal/database"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

// ErrInvalidRange signals a reversed date range reaching the store. Ranges are
// validated before queries run, so hitting this is a programming error in the
// caller, not a user-facing validation failure.
var ErrInvalidRange = errors.New("invalid date range: start after end")

// FindOptions narrows a range read. Zero values mean "no limit", "no offset"
// and "all categories".
type FindOptions struct {
	CategoryID *int
	Limit      int
	Offset     int
}

// ExpenseRepository handles expense database operations and range aggregates.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create adds a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (amount, date, category_id, expense_name_id, description)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at, updated_at
	`, expense.Amount, expense.Date, expense.CategoryID, expense.ExpenseNameID, expense.Description,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by ID with its category and expense name.
func (r *ExpenseRepository) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	row := r.db.QueryRow(ctx, expenseSelect+` WHERE e.id = $1`, id)
	exp, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return exp, nil
}

// Update modifies an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	_, err := r.db.Exec(ctx, `
		UPDATE expenses SET
			amount = $2,
			date = $3,
			category_id = $4,
			expense_name_id = $5,
			description = NULLIF($6, ''),
			updated_at = NOW()
		WHERE id = $1
	`, expense.ID, expense.Amount, expense.Date, expense.CategoryID, expense.ExpenseNameID, expense.Description)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// Delete removes an expense by ID.
func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// FindInRange retrieves expenses dated within [start, end], both ends
// inclusive, ordered newest-first (date descending, then id descending).
func (r *ExpenseRepository) FindInRange(
	ctx context.Context,
	start, end time.Time,
	opts FindOptions,
) ([]models.Expense, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	var limit *int
	if opts.Limit > 0 {
		limit = &opts.Limit
	}

	rows, err := r.db.Query(ctx, expenseSelect+`
		WHERE e.date >= $1 AND e.date <= $2
		  AND ($3::int IS NULL OR e.category_id = $3)
		ORDER BY e.date DESC, e.id DESC
		LIMIT $4::int OFFSET $5
	`, start, end, opts.CategoryID, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses in range: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// AggregateInRange computes overall statistics for [start, end], optionally
// narrowed to one category. A range with no matching expenses yields all-zero
// aggregates, never nulls.
func (r *ExpenseRepository) AggregateInRange(
	ctx context.Context,
	start, end time.Time,
	categoryID *int,
) (models.RangeAggregate, error) {
	var agg models.RangeAggregate
	if start.After(end) {
		return agg, ErrInvalidRange
	}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COALESCE(AVG(amount), 0),
		       COALESCE(MIN(amount), 0),
		       COALESCE(MAX(amount), 0),
		       COUNT(DISTINCT category_id),
		       COUNT(DISTINCT expense_name_id)
		FROM expenses
		WHERE date >= $1 AND date <= $2
		  AND ($3::int IS NULL OR category_id = $3)
	`, start, end, categoryID).Scan(
		&agg.Count, &agg.Sum, &agg.Avg, &agg.Min, &agg.Max,
		&agg.DistinctCategories, &agg.DistinctNames,
	)
	if err != nil {
		return models.RangeAggregate{}, fmt.Errorf("failed to aggregate expenses in range: %w", err)
	}
	return agg, nil
}

// AggregateByCategory computes per-category totals for [start, end] with one
// row per known category, including categories with no expenses in range.
// Implemented as an explicit two-step merge (all categories, then grouped
// totals) rather than an outer join. Rows are ordered by sum descending,
// zero-activity categories last, then category name ascending.
func (r *ExpenseRepository) AggregateByCategory(
	ctx context.Context,
	start, end time.Time,
) ([]models.CategoryAggregate, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	categories, err := NewCategoryRepository(r.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}

	type grouped struct {
		count int64
		sum   decimal.Decimal
	}
	totals := make(map[int]grouped)

	rows, err := r.db.Query(ctx, `
		SELECT category_id, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE date >= $1 AND date <= $2
		GROUP BY category_id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID int
		var g grouped
		if err := rows.Scan(&categoryID, &g.count, &g.sum); err != nil {
			return nil, fmt.Errorf("failed to scan category aggregate: %w", err)
		}
		totals[categoryID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category aggregates: %w", err)
	}

	aggregates := make([]models.CategoryAggregate, 0, len(categories))
	for _, cat := range categories {
		agg := models.CategoryAggregate{
			Category: cat,
			Sum:      decimal.Zero,
			Avg:      decimal.Zero,
		}
		if g, ok := totals[cat.ID]; ok {
			agg.Count = g.count
			agg.Sum = g.sum
			agg.Avg = g.sum.Div(decimal.NewFromInt(g.count))
		}
		aggregates = append(aggregates, agg)
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		if cmp := aggregates[i].Sum.Cmp(aggregates[j].Sum); cmp != 0 {
			return cmp > 0
		}
		return aggregates[i].Category.Name < aggregates[j].Category.Name
	})

	return aggregates, nil
}

// expenseSelect is the shared projection with category and expense name joins.
const expenseSelect = `
	SELECT e.id, e.amount, e.date, e.category_id, e.expense_name_id,
	       COALESCE(e.description, ''), e.created_at, e.updated_at,
	       c.name, c.color, c.created_at, c.updated_at,
	       n.name, n.suggested_category_id, n.created_at, n.updated_at
	FROM expenses e
	JOIN categories c ON e.category_id = c.id
	JOIN expense_names n ON e.expense_name_id = n.id`

// scanExpense scans a joined expense row.
func scanExpense(row interface{ Scan(dest ...any) error }) (*models.Expense, error) {
	var exp models.Expense
	var cat models.Category
	var name models.ExpenseName

	if err := row.Scan(
		&exp.ID, &exp.Amount, &exp.Date, &exp.CategoryID, &exp.ExpenseNameID,
		&exp.Description, &exp.CreatedAt, &exp.UpdatedAt,
		&cat.Name, &cat.Color, &cat.CreatedAt, &cat.UpdatedAt,
		&name.Name, &name.SuggestedCategoryID, &name.CreatedAt, &name.UpdatedAt,
	); err != nil {
		return nil, err
	}

	cat.ID = exp.CategoryID
	name.ID = exp.ExpenseNameID
	exp.Category = &cat
	exp.ExpenseName = &name
	return &exp, nil
}
