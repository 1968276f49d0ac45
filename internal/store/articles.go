package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/models"
)

type ArticleParams struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      string
	IsFeatured    bool
	CategoryID    int64
}

const articleColumns = `
	a.id, a.name, a.description, a.price, a.stock_quantity,
	a.image_url, a.is_featured, a.category_id, c.name,
	a.created_at, a.updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*models.Article, error) {
	article := &models.Article{}
	err := row.Scan(
		&article.ID,
		&article.Name,
		&article.Description,
		&article.Price,
		&article.StockQuantity,
		&article.ImageURL,
		&article.IsFeatured,
		&article.CategoryID,
		&article.CategoryName,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (s *Store) CreateArticle(ctx context.Context, params ArticleParams) (*models.Article, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO articles (name, description, price, stock_quantity, image_url, is_featured, category_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		 RETURNING id`,
		params.Name, params.Description, params.Price, params.StockQuantity,
		params.ImageURL, params.IsFeatured, params.CategoryID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	return s.GetArticle(ctx, id)
}

func (s *Store) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		WHERE a.id = $1`

	article, err := scanArticle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}

	return article, nil
}

func (s *Store) listArticles(ctx context.Context, where string, args ...any) ([]models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN categories c ON c.id = a.category_id
		` + where + `
		ORDER BY a.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return articles, nil
}

func (s *Store) ListArticles(ctx context.Context) ([]models.Article, error) {
	return s.listArticles(ctx, "")
}

func (s *Store) ListArticlesByCategory(ctx context.Context, categoryID int64) ([]models.Article, error) {
	return s.listArticles(ctx, "WHERE a.category_id = $1", categoryID)
}

func (s *Store) ListFeaturedArticles(ctx context.Context) ([]models.Article, error) {
	return s.listArticles(ctx, "WHERE a.is_featured")
}

func (s *Store) UpdateArticle(ctx context.Context, id int64, params ArticleParams) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE articles
		 SET name = $1, description = $2, price = $3, stock_quantity = $4,
		     image_url = $5, is_featured = $6, category_id = $7, updated_at = NOW()
		 WHERE id = $8`,
		params.Name, params.Description, params.Price, params.StockQuantity,
		params.ImageURL, params.IsFeatured, params.CategoryID, id)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrArticleNotFound
	}

	return nil
}

func (s *Store) DeleteArticle(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrArticleNotFound
	}

	return nil
}

// ArticleExistsWithCategory guards category deletion.
func (s *Store) ArticleExistsWithCategory(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE category_id = $1)`,
		categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category articles: %w", err)
	}
	return exists, nil
}
