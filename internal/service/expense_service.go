package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/gastonapp/gaston-api/internal/calendar"
	"gitlab.com/gastonapp/gaston-api/internal/models"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
)

// ExpenseInput carries the raw fields of an expense create or update.
// Amount and Date arrive as strings and are parsed here.
type ExpenseInput struct {
	Amount        string
	Date          string
	CategoryID    int
	ExpenseNameID int
	Description   string
}

// ExpenseService validates expense mutations. Amounts must be positive,
// carry at most two decimal places and stay below the hard cap; dates must
// be real calendar dates no later than tomorrow.
type ExpenseService struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
	names      *repository.ExpenseNameRepository
	now        func() time.Time
}

// NewExpenseService creates an expense service. now defaults to time.Now.
func NewExpenseService(
	expenses *repository.ExpenseRepository,
	categories *repository.CategoryRepository,
	names *repository.ExpenseNameRepository,
	now func() time.Time,
) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{expenses: expenses, categories: categories, names: names, now: now}
}

// Get returns one expense by ID with its category and name joined.
func (s *ExpenseService) Get(ctx context.Context, id int) (*models.Expense, error) {
	exp, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return exp, nil
}

// Create validates and stores a new expense.
func (s *ExpenseService) Create(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	exp, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, exp); err != nil {
		return nil, err
	}
	return s.expenses.GetByID(ctx, exp.ID)
}

// Update validates and replaces an existing expense's fields.
func (s *ExpenseService) Update(ctx context.Context, id int, input ExpenseInput) (*models.Expense, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	exp, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	exp.ID = id
	if err := s.expenses.Update(ctx, exp); err != nil {
		return nil, err
	}
	return s.expenses.GetByID(ctx, id)
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, id)
}

func (s *ExpenseService) validate(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	date, err := calendar.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	// One day of slack covers clients ahead of the server's clock.
	tomorrow := calendar.Midnight(s.now()).AddDate(0, 0, 1)
	if date.After(tomorrow) {
		return nil, fmt.Errorf("%s: %w", input.Date, ErrDateInFuture)
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", input.CategoryID, ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.names.GetByID(ctx, input.ExpenseNameID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense name %d: %w", input.ExpenseNameID, ErrNotFound)
		}
		return nil, err
	}

	return &models.Expense{
		Amount:        amount,
		Date:          date,
		CategoryID:    input.CategoryID,
		ExpenseNameID: input.ExpenseNameID,
		Description:   strings.TrimSpace(input.Description),
	}, nil
}

// parseAmount parses a monetary amount: positive, at most two decimal
// places, below the configured cap.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
	}
	if amount.GreaterThanOrEqual(models.MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: must be below %s", ErrInvalidAmount, models.MaxAmount)
	}
	return amount, nil
}
