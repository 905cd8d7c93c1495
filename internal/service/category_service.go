package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/gastonapp/gaston-api/internal/models"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
)

// CategoryService validates and normalizes category mutations.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// Get returns one category by ID.
func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return cat, nil
}

// Create adds a category. The name is trimmed and title-cased, the color
// defaults to the standard grey when empty, and names are unique ignoring
// case.
func (s *CategoryService) Create(ctx context.Context, name, color string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	color, err = normalizeColor(color)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, 0); err != nil {
		return nil, err
	}
	return s.categories.Create(ctx, name, color)
}

// Update renames or recolors a category under the same rules as Create.
func (s *CategoryService) Update(ctx context.Context, id int, name, color string) (*models.Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	color, err = normalizeColor(color)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, id, name, color); err != nil {
		return nil, err
	}
	return s.categories.GetByID(ctx, id)
}

// Delete removes a category unless expenses still reference it.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.categories.CountExpenses(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category %d has %d expenses: %w", id, count, ErrInUse)
	}
	return s.categories.Delete(ctx, id)
}

func (s *CategoryService) checkNameFree(ctx context.Context, name string, selfID int) error {
	existing, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("category %q: %w", name, ErrNameTaken)
	}
	return nil
}
