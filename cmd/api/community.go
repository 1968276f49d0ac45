package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// currentUserID identifies the requesting player for view projection.
// Authentication is handled upstream; the gateway forwards the identity
// in this header.
func currentUserID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (a *api) handleTodaysChallenge(w http.ResponseWriter, r *http.Request) {
	view, err := a.community.TodaysChallenge(r.Context(), currentUserID(r))
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, view)
}

func (a *api) handleChallengeArchive(w http.ResponseWriter, r *http.Request) {
	views, err := a.community.ChallengeArchive(r.Context(), currentUserID(r))
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, views)
}

func (a *api) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	view, err := a.community.ChallengeDetails(r.Context(), chi.URLParam(r, "id"), currentUserID(r))
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, view)
}

func (a *api) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	date := time.Now()
	if dateStr := r.FormValue("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			a.respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	image, err := formImage(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	challenge, err := a.community.CreateChallenge(r.Context(), date, r.FormValue("correct_plant_name"), image)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, challenge)
}

func (a *api) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	if err := a.community.DeleteChallenge(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusNoContent, nil)
}

func (a *api) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		UserName string `json:"user_name"`
		Guess    string `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct, err := a.community.SubmitGuess(r.Context(), chi.URLParam(r, "id"), req.UserID, req.UserName, req.Guess)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]bool{"correct": correct})
}

func (a *api) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.community.Posts(r.Context())
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, posts)
}

func (a *api) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.community.Post(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, post)
}

func (a *api) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	image, err := formImage(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	post, err := a.community.CreatePost(r.Context(),
		r.FormValue("author_id"), r.FormValue("author_name"),
		r.FormValue("title"), r.FormValue("description"), image)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, post)
}

func (a *api) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AuthorID   string `json:"author_id"`
		AuthorName string `json:"author_name"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := a.community.AddComment(r.Context(), chi.URLParam(r, "id"),
		req.AuthorID, req.AuthorName, req.Text)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, comment)
}
