package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/duartesilva/plantshop/internal/store"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *api) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.Categories(r.Context())
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, categories)
}

func (a *api) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := a.categories.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, category)
}

func (a *api) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := a.categories.Category(r.Context(), id)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, category)
}

func (a *api) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.categories.UpdateCategory(r.Context(), id, req.Name, req.Description); err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusNoContent, nil)
}

func (a *api) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := a.categories.DeleteCategory(r.Context(), id); err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusNoContent, nil)
}

func (a *api) handleListArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("featured") == "true" {
		articles, err := a.articles.FeaturedArticles(ctx)
		if err != nil {
			a.respondAppError(w, r, err)
			return
		}
		a.respondJSON(w, http.StatusOK, articles)
		return
	}

	if categoryStr := r.URL.Query().Get("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			a.respondError(w, http.StatusBadRequest, "invalid category ID")
			return
		}
		articles, err := a.articles.ArticlesByCategory(ctx, categoryID)
		if err != nil {
			a.respondAppError(w, r, err)
			return
		}
		a.respondJSON(w, http.StatusOK, articles)
		return
	}

	articles, err := a.articles.Articles(ctx)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, articles)
}

func (a *api) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	article, err := a.articles.Article(r.Context(), id)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, article)
}

// articleParamsFromForm reads the article fields out of a multipart
// form. The image part travels separately.
func articleParamsFromForm(r *http.Request) (store.ArticleParams, error) {
	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		return store.ArticleParams{}, err
	}

	stock, err := strconv.Atoi(r.FormValue("stock_quantity"))
	if err != nil {
		return store.ArticleParams{}, err
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return store.ArticleParams{}, err
	}

	return store.ArticleParams{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         price,
		StockQuantity: stock,
		IsFeatured:    r.FormValue("is_featured") == "true",
		CategoryID:    categoryID,
	}, nil
}

func (a *api) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	params, err := articleParamsFromForm(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid article fields")
		return
	}

	image, err := formImage(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	article, err := a.articles.CreateArticle(r.Context(), params, image)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, article)
}

func (a *api) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	params, err := articleParamsFromForm(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid article fields")
		return
	}

	image, err := formImage(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	if err := a.articles.UpdateArticle(r.Context(), id, params, image); err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusNoContent, nil)
}

func (a *api) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := a.articles.DeleteArticle(r.Context(), id); err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusNoContent, nil)
}
