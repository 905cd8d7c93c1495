package repository

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/gastonapp/gaston-api/internal/database"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

// ExpenseNameRepository handles expense name database operations.
type ExpenseNameRepository struct {
	db database.PGXDB
}

// NewExpenseNameRepository creates a new ExpenseNameRepository.
func NewExpenseNameRepository(db database.PGXDB) *ExpenseNameRepository {
	return &ExpenseNameRepository{db: db}
}

// GetAll retrieves all expense names with their suggested categories.
func (r *ExpenseNameRepository) GetAll(ctx context.Context) ([]models.ExpenseName, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.id, n.name, n.suggested_category_id, n.created_at, n.updated_at,
		       c.id, c.name, c.color, c.created_at, c.updated_at
		FROM expense_names n
		LEFT JOIN categories c ON n.suggested_category_id = c.id
		ORDER BY n.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense names: %w", err)
	}
	defer rows.Close()

	var names []models.ExpenseName
	for rows.Next() {
		name, err := scanExpenseName(rows)
		if err != nil {
			return nil, err
		}
		names = append(names, *name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense names: %w", err)
	}
	return names, nil
}

// GetByID retrieves an expense name by ID.
func (r *ExpenseNameRepository) GetByID(ctx context.Context, id int) (*models.ExpenseName, error) {
	row := r.db.QueryRow(ctx, `
		SELECT n.id, n.name, n.suggested_category_id, n.created_at, n.updated_at,
		       c.id, c.name, c.color, c.created_at, c.updated_at
		FROM expense_names n
		LEFT JOIN categories c ON n.suggested_category_id = c.id
		WHERE n.id = $1
	`, id)
	name, err := scanExpenseName(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense name: %w", err)
	}
	return name, nil
}

// GetByName retrieves an expense name by name (case-insensitive).
func (r *ExpenseNameRepository) GetByName(ctx context.Context, name string) (*models.ExpenseName, error) {
	row := r.db.QueryRow(ctx, `
		SELECT n.id, n.name, n.suggested_category_id, n.created_at, n.updated_at,
		       c.id, c.name, c.color, c.created_at, c.updated_at
		FROM expense_names n
		LEFT JOIN categories c ON n.suggested_category_id = c.id
		WHERE LOWER(n.name) = LOWER($1)
	`, name)
	found, err := scanExpenseName(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense name by name: %w", err)
	}
	return found, nil
}

// Create adds a new expense name.
func (r *ExpenseNameRepository) Create(ctx context.Context, name string, suggestedCategoryID *int) (*models.ExpenseName, error) {
	var n models.ExpenseName
	err := r.db.QueryRow(ctx, `
		INSERT INTO expense_names (name, suggested_category_id) VALUES ($1, $2)
		RETURNING id, name, suggested_category_id, created_at, updated_at
	`, name, suggestedCategoryID).Scan(&n.ID, &n.Name, &n.SuggestedCategoryID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense name: %w", err)
	}
	return &n, nil
}

// Update modifies an existing expense name.
func (r *ExpenseNameRepository) Update(ctx context.Context, id int, name string, suggestedCategoryID *int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE expense_names SET name = $2, suggested_category_id = $3, updated_at = NOW() WHERE id = $1
	`, id, name, suggestedCategoryID)
	if err != nil {
		return fmt.Errorf("failed to update expense name: %w", err)
	}
	return nil
}

// Delete removes an expense name by ID.
func (r *ExpenseNameRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM expense_names WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense name: %w", err)
	}
	return nil
}

// CountExpenses returns the number of expenses referencing an expense name.
func (r *ExpenseNameRepository) CountExpenses(ctx context.Context, id int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM expenses WHERE expense_name_id = $1
	`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses for expense name: %w", err)
	}
	return count, nil
}

// scanExpenseName scans an expense name row with its left-joined category.
func scanExpenseName(row interface{ Scan(dest ...any) error }) (*models.ExpenseName, error) {
	var n models.ExpenseName
	var catID *int
	var catName, catColor *string
	var catCreatedAt, catUpdatedAt *time.Time

	if err := row.Scan(
		&n.ID, &n.Name, &n.SuggestedCategoryID, &n.CreatedAt, &n.UpdatedAt,
		&catID, &catName, &catColor, &catCreatedAt, &catUpdatedAt,
	); err != nil {
		return nil, err
	}

	if catID != nil {
		n.SuggestedCategory = &models.Category{
			ID:        *catID,
			Name:      *catName,
			Color:     *catColor,
			CreatedAt: *catCreatedAt,
			UpdatedAt: *catUpdatedAt,
		}
	}
	return &n, nil
}
