package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL CHECK (color ~ '^#[0-9A-Fa-f]{6}$'),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories (LOWER(name))`,

		`CREATE TABLE IF NOT EXISTS expense_names (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			suggested_category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_expense_names_name_lower ON expense_names (LOWER(name))`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id SERIAL PRIMARY KEY,
			amount DECIMAL(10, 2) NOT NULL CHECK (amount > 0),
			date DATE NOT NULL,
			category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
			expense_name_id INTEGER NOT NULL REFERENCES expense_names(id) ON DELETE RESTRICT,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_expense_name_id ON expenses(expense_name_id)`,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// SeedCategories inserts the default expense categories with display colors.
func SeedCategories(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []struct {
		name  string
		color string
	}{
		{"Comida", "#FF7043"},
		{"Transporte", "#42A5F5"},
		{"Vivienda", "#8D6E63"},
		{"Salud", "#EF5350"},
		{"Entretenimiento", "#AB47BC"},
		{"Servicios", "#FFCA28"},
		{"Educación", "#26A69A"},
		{"Ropa", "#EC407A"},
		{"Otros", "#9E9E9E"},
	}

	for _, cat := range categories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (name, color)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))
		`, cat.name, cat.color)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.name, err)
		}
	}

	return nil
}
