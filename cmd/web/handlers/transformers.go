package handlers

import (
	"encoding/json"
	"time"

	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/internal/payment"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/money"
)

const msgPaymentSucceeded = "Payment processed successfully."

type itemResponse struct {
	ID          string       `json:"id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unit_price"`
	Subtotal    money.Amount `json:"subtotal"`
}

type orderResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Status      string         `json:"status"`
	TotalAmount money.Amount   `json:"total_amount"`
	Items       []itemResponse `json:"items"`
	PaymentID   *string        `json:"payment_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type paymentResponse struct {
	ID            string       `json:"id"`
	OrderID       string       `json:"order_id"`
	UserID        string       `json:"user_id"`
	PaymentMethod string       `json:"payment_method"`
	Amount        money.Amount `json:"amount"`
	Status        string       `json:"status"`
	TransactionID *string      `json:"transaction_id"`
	CreatedAt     time.Time    `json:"created_at"`
	Message       string       `json:"message,omitempty"`
}

type eventResponse struct {
	Event      string          `json:"event"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		TotalAmount: o.Total,
		Items:       items,
		PaymentID:   optional(o.PaymentID),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrderList(orders []*order.Order) listResponse[orderResponse] {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return listResponse[orderResponse]{Data: out}
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		PaymentMethod: p.Method,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: optional(p.TransactionID),
		CreatedAt:     p.CreatedAt,
	}
}

// toOutcomeResponse adds the gateway message, which is never stored.
func toOutcomeResponse(out *payment.Outcome) paymentResponse {
	resp := toPaymentResponse(out.Payment)
	resp.Message = out.Message
	if out.Payment.Status == payment.StatusSuccessful && resp.Message == "" {
		resp.Message = msgPaymentSucceeded
	}
	return resp
}

func toPaymentList(payments []*payment.Payment) listResponse[paymentResponse] {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return listResponse[paymentResponse]{Data: out}
}

func toEventList(records []db.Record) listResponse[eventResponse] {
	out := make([]eventResponse, 0, len(records))
	for _, r := range records {
		out = append(out, eventResponse{Event: r.EventName, Payload: r.Payload, OccurredAt: r.OccurredAt})
	}
	return listResponse[eventResponse]{Data: out}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
