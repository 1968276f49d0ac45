package shop

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/duartesilva/plantshop/internal/apperr"
	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/media"
	"github.com/duartesilva/plantshop/internal/models"
	"github.com/duartesilva/plantshop/internal/store"
)

type fakeArticleStore struct {
	article        *models.Article
	articleErr     error
	created        *store.ArticleParams
	updated        *store.ArticleParams
	deleteCalled   bool
	orderedArticle bool
}

func (f *fakeArticleStore) CreateArticle(_ context.Context, params store.ArticleParams) (*models.Article, error) {
	f.created = &params
	return &models.Article{ID: 1, Name: params.Name, ImageURL: params.ImageURL}, nil
}

func (f *fakeArticleStore) GetArticle(_ context.Context, _ int64) (*models.Article, error) {
	return f.article, f.articleErr
}

func (f *fakeArticleStore) ListArticles(_ context.Context) ([]models.Article, error) {
	return nil, nil
}

func (f *fakeArticleStore) ListArticlesByCategory(_ context.Context, _ int64) ([]models.Article, error) {
	return nil, nil
}

func (f *fakeArticleStore) ListFeaturedArticles(_ context.Context) ([]models.Article, error) {
	return nil, nil
}

func (f *fakeArticleStore) UpdateArticle(_ context.Context, _ int64, params store.ArticleParams) error {
	f.updated = &params
	return nil
}

func (f *fakeArticleStore) DeleteArticle(_ context.Context, _ int64) error {
	f.deleteCalled = true
	return nil
}

func (f *fakeArticleStore) ItemExistsWithArticle(_ context.Context, _ int64) (bool, error) {
	return f.orderedArticle, nil
}

type fakeCategoryStore struct {
	category     *models.Category
	categoryErr  error
	hasArticles  bool
	deleteCalled bool
}

func (f *fakeCategoryStore) CreateCategory(_ context.Context, name, description string) (*models.Category, error) {
	return &models.Category{ID: 1, Name: name, Description: description}, nil
}

func (f *fakeCategoryStore) GetCategory(_ context.Context, _ int64) (*models.Category, error) {
	return f.category, f.categoryErr
}

func (f *fakeCategoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeCategoryStore) UpdateCategory(_ context.Context, _ int64, _, _ string) error {
	return nil
}

func (f *fakeCategoryStore) DeleteCategory(_ context.Context, _ int64) error {
	f.deleteCalled = true
	return nil
}

func (f *fakeCategoryStore) ArticleExistsWithCategory(_ context.Context, _ int64) (bool, error) {
	return f.hasArticles, nil
}

type fakeMediaStore struct {
	uploaded []string
	deleted  []string
}

func (f *fakeMediaStore) Upload(_ context.Context, _ io.Reader, name, _, bucket string) (string, error) {
	url := "/media/" + bucket + "/" + name
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, fileURL, _ string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func TestCreateArticleRequiresCategory(t *testing.T) {
	articles := &fakeArticleStore{}
	svc := NewArticleService(articles, &fakeCategoryStore{}, &fakeMediaStore{}, zap.NewNop())

	_, err := svc.CreateArticle(context.Background(), store.ArticleParams{Name: "Aloe Vera"}, nil)

	require.Error(t, err)
	assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
	assert.Nil(t, articles.created)
}

func TestCreateArticleUnknownCategory(t *testing.T) {
	articles := &fakeArticleStore{}
	categories := &fakeCategoryStore{categoryErr: database.ErrCategoryNotFound}
	svc := NewArticleService(articles, categories, &fakeMediaStore{}, zap.NewNop())

	_, err := svc.CreateArticle(context.Background(), store.ArticleParams{Name: "Aloe Vera", CategoryID: 9}, nil)

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Nil(t, articles.created)
}

func TestCreateArticleStoresImage(t *testing.T) {
	articles := &fakeArticleStore{}
	categories := &fakeCategoryStore{category: &models.Category{ID: 3, Name: "Succulents"}}
	files := &fakeMediaStore{}
	svc := NewArticleService(articles, categories, files, zap.NewNop())

	image := &media.File{
		Reader:      strings.NewReader("png-bytes"),
		FileName:    "Aloe Photo.PNG",
		ContentType: "image/png",
	}
	_, err := svc.CreateArticle(context.Background(), store.ArticleParams{Name: "Aloe Vera", CategoryID: 3}, image)

	require.NoError(t, err)
	require.Len(t, files.uploaded, 1)
	assert.True(t, strings.HasPrefix(files.uploaded[0], "/media/articles/"))
	assert.True(t, strings.HasSuffix(files.uploaded[0], ".png"), "extension should be kept lowercased")
	require.NotNil(t, articles.created)
	assert.Equal(t, files.uploaded[0], articles.created.ImageURL)
}

func TestUpdateArticleReplacesImage(t *testing.T) {
	articles := &fakeArticleStore{
		article: &models.Article{ID: 1, Name: "Aloe Vera", CategoryID: 3, ImageURL: "/media/articles/old.png"},
	}
	categories := &fakeCategoryStore{category: &models.Category{ID: 3}}
	files := &fakeMediaStore{}
	svc := NewArticleService(articles, categories, files, zap.NewNop())

	image := &media.File{Reader: strings.NewReader("x"), FileName: "new.png"}
	err := svc.UpdateArticle(context.Background(), 1, store.ArticleParams{Name: "Aloe Vera", CategoryID: 3}, image)

	require.NoError(t, err)
	require.Len(t, files.uploaded, 1)
	assert.Equal(t, []string{"/media/articles/old.png"}, files.deleted)
	require.NotNil(t, articles.updated)
	assert.Equal(t, files.uploaded[0], articles.updated.ImageURL)
}

func TestUpdateArticleKeepsImageWhenNoneSent(t *testing.T) {
	articles := &fakeArticleStore{
		article: &models.Article{ID: 1, Name: "Aloe Vera", CategoryID: 3, ImageURL: "/media/articles/old.png"},
	}
	categories := &fakeCategoryStore{category: &models.Category{ID: 3}}
	files := &fakeMediaStore{}
	svc := NewArticleService(articles, categories, files, zap.NewNop())

	err := svc.UpdateArticle(context.Background(), 1, store.ArticleParams{Name: "Aloe Vera", CategoryID: 3}, nil)

	require.NoError(t, err)
	assert.Empty(t, files.uploaded)
	assert.Empty(t, files.deleted)
	require.NotNil(t, articles.updated)
	assert.Equal(t, "/media/articles/old.png", articles.updated.ImageURL)
}

func TestDeleteArticleBlockedWhenOrdered(t *testing.T) {
	articles := &fakeArticleStore{
		article:        &models.Article{ID: 1, Name: "Aloe Vera"},
		orderedArticle: true,
	}
	svc := NewArticleService(articles, &fakeCategoryStore{}, &fakeMediaStore{}, zap.NewNop())

	err := svc.DeleteArticle(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Aloe Vera")
	assert.False(t, articles.deleteCalled)
}

func TestDeleteArticleRemovesImage(t *testing.T) {
	articles := &fakeArticleStore{
		article: &models.Article{ID: 1, Name: "Aloe Vera", ImageURL: "/media/articles/a.png"},
	}
	files := &fakeMediaStore{}
	svc := NewArticleService(articles, &fakeCategoryStore{}, files, zap.NewNop())

	err := svc.DeleteArticle(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, articles.deleteCalled)
	assert.Equal(t, []string{"/media/articles/a.png"}, files.deleted)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryStore{})

	_, err := svc.CreateCategory(context.Background(), "", "desc")

	require.Error(t, err)
	assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
}

func TestDeleteCategoryBlockedWhenArticlesExist(t *testing.T) {
	categories := &fakeCategoryStore{
		category:    &models.Category{ID: 3, Name: "Succulents"},
		hasArticles: true,
	}
	svc := NewCategoryService(categories)

	err := svc.DeleteCategory(context.Background(), 3)

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Succulents")
	assert.False(t, categories.deleteCalled)
}

func TestDeleteCategoryEmpty(t *testing.T) {
	categories := &fakeCategoryStore{category: &models.Category{ID: 3, Name: "Succulents"}}
	svc := NewCategoryService(categories)

	err := svc.DeleteCategory(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, categories.deleteCalled)
}
