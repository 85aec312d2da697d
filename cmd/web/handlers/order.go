package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nskaik/order-payment-api/cmd/web/validator"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/kit/db"
)

type OrderServiceContract interface {
	Create(ctx context.Context, userID string, items []order.ItemInput) (*order.Order, error)
	Get(ctx context.Context, userID, orderID string) (*order.Order, error)
	List(ctx context.Context, userID string, status order.Status) ([]*order.Order, error)
	ReplaceItems(ctx context.Context, userID, orderID string, items []order.ItemInput) (*order.Order, error)
	Delete(ctx context.Context, userID, orderID string) error
	Confirm(ctx context.Context, userID, orderID string) (*order.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*order.Order, error)
	Events(ctx context.Context, userID, orderID string) ([]db.Record, error)
}

type Order struct {
	json  *validator.JSON
	order OrderServiceContract
}

func NewOrder(jsonV *validator.JSON, orderSvc OrderServiceContract) *Order {
	return &Order{json: jsonV, order: orderSvc}
}

type itemsReq struct {
	Items []order.ItemInput `json:"items"`
}

func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	var req itemsReq
	if err := h.json.Decode(w, r, &req); err != nil {
		writeError(w, r, "order", "Create", err)
		return
	}
	o, err := h.order.Create(r.Context(), UserID(r.Context()), req.Items)
	if err != nil {
		writeError(w, r, "order", "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	status := order.Status(r.URL.Query().Get("status"))
	orders, err := h.order.List(r.Context(), UserID(r.Context()), status)
	if err != nil {
		writeError(w, r, "order", "List", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderList(orders))
}

func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.order.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "order", "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Order) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	var req itemsReq
	if err := h.json.Decode(w, r, &req); err != nil {
		writeError(w, r, "order", "ReplaceItems", err)
		return
	}
	o, err := h.order.ReplaceItems(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req.Items)
	if err != nil {
		writeError(w, r, "order", "ReplaceItems", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Order) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.order.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "order", "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Order) Confirm(w http.ResponseWriter, r *http.Request) {
	o, err := h.order.Confirm(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "order", "Confirm", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Order) Cancel(w http.ResponseWriter, r *http.Request) {
	o, err := h.order.Cancel(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "order", "Cancel", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Order) Events(w http.ResponseWriter, r *http.Request) {
	records, err := h.order.Events(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "order", "Events", err)
		return
	}
	writeJSON(w, http.StatusOK, toEventList(records))
}
