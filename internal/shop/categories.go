package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/models"
)

type CategoryStore interface {
	CreateCategory(ctx context.Context, name, description string) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, description string) error
	DeleteCategory(ctx context.Context, id int64) error
	ArticleExistsWithCategory(ctx context.Context, categoryID int64) (bool, error)
}

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Category(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrCategoryNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("category %d not found", id), err)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.New(apperr.KindPrecondition, "category name is required")
	}
	return s.categories.CreateCategory(ctx, name, description)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, name, description string) error {
	if name == "" {
		return apperr.New(apperr.KindPrecondition, "category name is required")
	}
	err := s.categories.UpdateCategory(ctx, id, name, description)
	if errors.Is(err, database.ErrCategoryNotFound) {
		return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("category %d not found", id), err)
	}
	return err
}

// DeleteCategory refuses to delete a category that still owns articles.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.Category(ctx, id)
	if err != nil {
		return err
	}

	hasArticles, err := s.categories.ArticleExistsWithCategory(ctx, id)
	if err != nil {
		return err
	}
	if hasArticles {
		return apperr.New(apperr.KindConflict,
			fmt.Sprintf("cannot delete category %q: it has associated articles", category.Name))
	}

	err = s.categories.DeleteCategory(ctx, id)
	if errors.Is(err, database.ErrCategoryNotFound) {
		return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("category %d not found", id), err)
	}
	return err
}
