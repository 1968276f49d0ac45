package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/store"
)

func TestArticleCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	st := store.New(db)

	category, err := st.CreateCategory(ctx, "Succulents", "Low maintenance plants")
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	article, err := st.CreateArticle(ctx, store.ArticleParams{
		Name:          "Aloe Vera",
		Description:   "Easy to care for",
		Price:         decimal.NewFromInt(15),
		StockQuantity: 40,
		IsFeatured:    true,
		CategoryID:    category.ID,
	})
	if err != nil {
		t.Fatalf("Create article: %v", err)
	}

	if article.CategoryName != "Succulents" {
		t.Errorf("Expected joined category name, got %q", article.CategoryName)
	}

	featured, err := st.ListFeaturedArticles(ctx)
	if err != nil {
		t.Fatalf("List featured: %v", err)
	}
	if len(featured) != 1 {
		t.Errorf("Expected 1 featured article, got %d", len(featured))
	}

	byCategory, err := st.ListArticlesByCategory(ctx, category.ID)
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(byCategory) != 1 {
		t.Errorf("Expected 1 article in category, got %d", len(byCategory))
	}

	err = st.UpdateArticle(ctx, article.ID, store.ArticleParams{
		Name:          "Aloe Vera",
		Price:         decimal.NewFromInt(18),
		StockQuantity: 35,
		IsFeatured:    false,
		CategoryID:    category.ID,
	})
	if err != nil {
		t.Fatalf("Update article: %v", err)
	}

	updated, err := st.GetArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("Get article: %v", err)
	}
	if !updated.Price.Equal(decimal.NewFromInt(18)) {
		t.Errorf("Expected price 18, got %s", updated.Price)
	}
	if updated.IsFeatured {
		t.Error("Article should no longer be featured")
	}

	if err := st.DeleteArticle(ctx, article.ID); err != nil {
		t.Fatalf("Delete article: %v", err)
	}

	_, err = st.GetArticle(ctx, article.ID)
	if !errors.Is(err, database.ErrArticleNotFound) {
		t.Errorf("Expected article not found after delete, got: %v", err)
	}
}

func TestCategoryDeleteGuard(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	st := store.New(db)

	category, err := st.CreateCategory(ctx, "Tropical", "")
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	_, err = st.CreateArticle(ctx, store.ArticleParams{
		Name:          "Monstera Deliciosa",
		Price:         decimal.NewFromInt(30),
		StockQuantity: 10,
		CategoryID:    category.ID,
	})
	if err != nil {
		t.Fatalf("Create article: %v", err)
	}

	hasArticles, err := st.ArticleExistsWithCategory(ctx, category.ID)
	if err != nil {
		t.Fatalf("Check category articles: %v", err)
	}
	if !hasArticles {
		t.Error("Expected category to report associated articles")
	}

	empty, err := st.CreateCategory(ctx, "Empty", "")
	if err != nil {
		t.Fatalf("Create empty category: %v", err)
	}
	hasArticles, err = st.ArticleExistsWithCategory(ctx, empty.ID)
	if err != nil {
		t.Fatalf("Check empty category: %v", err)
	}
	if hasArticles {
		t.Error("Empty category should report no articles")
	}
}

func TestArticleDeleteGuard(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	st := store.New(db)

	user := seedUser(t, st, "Maria Duarte")
	plant := seedArticle(t, st, "Monstera Deliciosa", 100, 10)

	if _, err := st.CreateOrder(ctx, user.ID, []store.CartLine{{ArticleID: plant.ID, Quantity: 1}}); err != nil {
		t.Fatalf("Create order: %v", err)
	}

	ordered, err := st.ItemExistsWithArticle(ctx, plant.ID)
	if err != nil {
		t.Fatalf("Check article orders: %v", err)
	}
	if !ordered {
		t.Error("Expected article to report order items")
	}
}

func TestUserProfile(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	st := store.New(db)

	user, err := st.CreateUser(ctx, "Maria Duarte")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	if user.Address != "" {
		t.Errorf("New user should have no address, got %q", user.Address)
	}

	if err := st.UpdateUserProfile(ctx, user.ID, "Maria Duarte", "Rua das Flores 12, Lisboa"); err != nil {
		t.Fatalf("Update profile: %v", err)
	}

	fetched, err := st.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get user: %v", err)
	}
	if fetched.Address != "Rua das Flores 12, Lisboa" {
		t.Errorf("Expected updated address, got %q", fetched.Address)
	}

	err = st.UpdateUserProfile(ctx, "missing", "Nobody", "")
	if !errors.Is(err, database.ErrUserNotFound) {
		t.Errorf("Expected user not found, got: %v", err)
	}
}
