package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (a *api) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.Users(r.Context())
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, users)
}

func (a *api) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.users.CreateUser(r.Context(), req.FullName)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, user)
}

func (a *api) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.User(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, user)
}

func (a *api) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
		Address  string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.users.UpdateProfile(r.Context(), chi.URLParam(r, "id"), req.FullName, req.Address)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, user)
}

func (a *api) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	page, err := a.orders.OrdersForUser(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, page)
}
