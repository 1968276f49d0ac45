package shop

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/media"
	"github.com/duartesilva/plantshop/internal/models"
	"github.com/duartesilva/plantshop/internal/store"
)

const articleImageBucket = "articles"

type ArticleStore interface {
	CreateArticle(ctx context.Context, params store.ArticleParams) (*models.Article, error)
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListArticlesByCategory(ctx context.Context, categoryID int64) ([]models.Article, error)
	ListFeaturedArticles(ctx context.Context) ([]models.Article, error)
	UpdateArticle(ctx context.Context, id int64, params store.ArticleParams) error
	DeleteArticle(ctx context.Context, id int64) error
	ItemExistsWithArticle(ctx context.Context, articleID int64) (bool, error)
}

type CategoryGetter interface {
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
}

// storedImageName keeps the original extension but replaces the name, so
// uploads can never collide or carry a hostile file name.
func storedImageName(fileName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}

// ArticleService implements the admin-facing catalog operations.
type ArticleService struct {
	articles   ArticleStore
	categories CategoryGetter
	files      media.Store
	logger     *zap.Logger
}

func NewArticleService(articles ArticleStore, categories CategoryGetter, files media.Store, logger *zap.Logger) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		files:      files,
		logger:     logger,
	}
}

func (s *ArticleService) Article(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.articles.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrArticleNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("article %d not found", id), err)
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) Articles(ctx context.Context) ([]models.Article, error) {
	return s.articles.ListArticles(ctx)
}

func (s *ArticleService) ArticlesByCategory(ctx context.Context, categoryID int64) ([]models.Article, error) {
	return s.articles.ListArticlesByCategory(ctx, categoryID)
}

func (s *ArticleService) FeaturedArticles(ctx context.Context) ([]models.Article, error) {
	return s.articles.ListFeaturedArticles(ctx)
}

func (s *ArticleService) CreateArticle(ctx context.Context, params store.ArticleParams, image *media.File) (*models.Article, error) {
	if params.CategoryID <= 0 {
		return nil, apperr.New(apperr.KindPrecondition, "a valid category is required")
	}
	if err := s.checkCategoryExists(ctx, params.CategoryID); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		params.ImageURL = url
	}

	return s.articles.CreateArticle(ctx, params)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, id int64, params store.ArticleParams, image *media.File) error {
	existing, err := s.Article(ctx, id)
	if err != nil {
		return err
	}

	if params.CategoryID <= 0 {
		return apperr.New(apperr.KindPrecondition, "a valid category is required")
	}
	if params.CategoryID != existing.CategoryID {
		if err := s.checkCategoryExists(ctx, params.CategoryID); err != nil {
			return err
		}
	}

	oldImageURL := existing.ImageURL
	newImageURL := oldImageURL
	if image != nil {
		newImageURL, err = s.uploadImage(ctx, image)
		if err != nil {
			return err
		}
	}
	params.ImageURL = newImageURL

	if err := s.articles.UpdateArticle(ctx, id, params); err != nil {
		if errors.Is(err, database.ErrArticleNotFound) {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("article %d not found", id), err)
		}
		return err
	}

	if oldImageURL != newImageURL && oldImageURL != "" {
		s.logger.Info("deleting replaced article image", zap.String("url", oldImageURL))
		if err := s.files.Delete(ctx, oldImageURL, articleImageBucket); err != nil {
			s.logger.Warn("failed to delete replaced image", zap.Error(err), zap.String("url", oldImageURL))
		}
	}

	return nil
}

// DeleteArticle removes an article from the catalog. Articles referenced
// by any order item are kept for historical pricing and blocked from
// deletion.
func (s *ArticleService) DeleteArticle(ctx context.Context, id int64) error {
	existing, err := s.Article(ctx, id)
	if err != nil {
		return err
	}

	ordered, err := s.articles.ItemExistsWithArticle(ctx, id)
	if err != nil {
		return err
	}
	if ordered {
		return apperr.New(apperr.KindConflict,
			fmt.Sprintf("cannot delete article %q: it appears in one or more orders", existing.Name))
	}

	if err := s.articles.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, database.ErrArticleNotFound) {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("article %d not found", id), err)
		}
		return err
	}

	if existing.ImageURL != "" {
		if err := s.files.Delete(ctx, existing.ImageURL, articleImageBucket); err != nil {
			s.logger.Warn("failed to delete article image", zap.Error(err), zap.String("url", existing.ImageURL))
		}
	}

	return nil
}

func (s *ArticleService) checkCategoryExists(ctx context.Context, categoryID int64) error {
	if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, database.ErrCategoryNotFound) {
			return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("category %d not found", categoryID), err)
		}
		return err
	}
	return nil
}

func (s *ArticleService) uploadImage(ctx context.Context, image *media.File) (string, error) {
	name := storedImageName(image.FileName)
	s.logger.Info("uploading article image", zap.String("name", name))

	url, err := s.files.Upload(ctx, image.Reader, name, image.ContentType, articleImageBucket)
	if err != nil {
		return "", fmt.Errorf("upload article image: %w", err)
	}
	return url, nil
}
