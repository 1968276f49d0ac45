package main

import (
	"encoding/json"
	"net/http"

	"github.com/duartesilva/plantshop/internal/store"
)

func (a *api) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orders.AllOrders(r.Context())
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, orders)
}

func (a *api) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Items  []struct {
			ArticleID int64 `json:"article_id"`
			Quantity  int   `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]store.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, store.CartLine{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
		})
	}

	order, err := a.orders.PlaceOrder(r.Context(), req.UserID, lines)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, order)
}

func (a *api) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := a.orders.OrderDetails(r.Context(), id)
	if err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, order)
}

func (a *api) handleShipOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := a.orders.ShipOrder(r.Context(), id); err != nil {
		a.respondAppError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusNoContent, nil)
}
