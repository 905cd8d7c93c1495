package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/gastonapp/gaston-api/internal/models"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
)

// ExpenseNameService validates and normalizes expense name mutations.
type ExpenseNameService struct {
	names      *repository.ExpenseNameRepository
	categories *repository.CategoryRepository
}

// NewExpenseNameService creates an expense name service.
func NewExpenseNameService(names *repository.ExpenseNameRepository, categories *repository.CategoryRepository) *ExpenseNameService {
	return &ExpenseNameService{names: names, categories: categories}
}

// List returns all expense names ordered by name.
func (s *ExpenseNameService) List(ctx context.Context) ([]models.ExpenseName, error) {
	return s.names.GetAll(ctx)
}

// Get returns one expense name by ID.
func (s *ExpenseNameService) Get(ctx context.Context, id int) (*models.ExpenseName, error) {
	name, err := s.names.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense name %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return name, nil
}

// Create adds an expense name. The suggested category is optional but must
// exist when given.
func (s *ExpenseNameService) Create(ctx context.Context, name string, suggestedCategoryID *int) (*models.ExpenseName, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, 0); err != nil {
		return nil, err
	}
	if err := s.checkCategoryExists(ctx, suggestedCategoryID); err != nil {
		return nil, err
	}
	return s.names.Create(ctx, name, suggestedCategoryID)
}

// Update renames an expense name or changes its suggested category.
func (s *ExpenseNameService) Update(ctx context.Context, id int, name string, suggestedCategoryID *int) (*models.ExpenseName, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if err := s.checkCategoryExists(ctx, suggestedCategoryID); err != nil {
		return nil, err
	}
	if err := s.names.Update(ctx, id, name, suggestedCategoryID); err != nil {
		return nil, err
	}
	return s.names.GetByID(ctx, id)
}

// Delete removes an expense name unless expenses still reference it.
func (s *ExpenseNameService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.names.CountExpenses(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("expense name %d has %d expenses: %w", id, count, ErrInUse)
	}
	return s.names.Delete(ctx, id)
}

func (s *ExpenseNameService) checkNameFree(ctx context.Context, name string, selfID int) error {
	existing, err := s.names.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("expense name %q: %w", name, ErrNameTaken)
	}
	return nil
}

func (s *ExpenseNameService) checkCategoryExists(ctx context.Context, id *int) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("suggested category %d: %w", *id, ErrNotFound)
		}
		return err
	}
	return nil
}
