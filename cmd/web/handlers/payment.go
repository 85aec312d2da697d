package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nskaik/order-payment-api/cmd/web/validator"
	"github.com/nskaik/order-payment-api/internal/health"
	"github.com/nskaik/order-payment-api/internal/payment"
	"github.com/nskaik/order-payment-api/kit/cache"
)

// IdempotencyKeyHeader names the client-chosen key for safe retries of a
// payment submission.
const IdempotencyKeyHeader = "Idempotency-Key"

type PaymentServiceContract interface {
	Process(ctx context.Context, userID, orderID string, req payment.ProcessRequest) (*payment.Outcome, error)
	Get(ctx context.Context, userID, paymentID string) (*payment.Payment, error)
	GetByOrder(ctx context.Context, userID, orderID string) (*payment.Payment, error)
	List(ctx context.Context, userID string) ([]*payment.Payment, error)
}

type PaymentHealthContract interface {
	Check(ctx context.Context) health.Result
}

type PaymentIdempotencyContract interface {
	GenerateKey(operation, scope, key string) string
	Begin(ctx context.Context, key string) (*cache.Entry, error)
	Complete(ctx context.Context, key string, status int, body []byte) error
	Release(ctx context.Context, key string) error
}

type Payment struct {
	json    *validator.JSON
	payment PaymentServiceContract
	health  PaymentHealthContract
	idem    PaymentIdempotencyContract
}

// NewPayment builds the payment handler. healthSvc and idem may be nil.
func NewPayment(jsonV *validator.JSON, paymentSvc PaymentServiceContract, healthSvc PaymentHealthContract, idem PaymentIdempotencyContract) *Payment {
	return &Payment{json: jsonV, payment: paymentSvc, health: healthSvc, idem: idem}
}

func (h *Payment) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := UserID(ctx)
	orderID := chi.URLParam(r, "id")

	var req payment.ProcessRequest
	if err := h.json.Decode(w, r, &req); err != nil {
		writeError(w, r, "payment", "Process", err)
		return
	}
	if h.health != nil {
		res := h.health.Check(ctx)
		if !res.OK {
			slog.ErrorContext(ctx, "service unavailable", "layer", "handler", "component", "payment", "method", "Process", "checks", res.Checks)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "down", "checks": res.Checks})
			return
		}
	}

	key := ""
	if raw := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader)); raw != "" && h.idem != nil {
		key = h.idem.GenerateKey("payments.process", userID+":"+orderID, raw)
		entry, err := h.idem.Begin(ctx, key)
		switch {
		case errors.Is(err, cache.ErrInFlight):
			writeJSON(w, http.StatusConflict, messageResponse{Message: "A request with this idempotency key is already being processed."})
			return
		case err != nil:
			// Replay is best-effort; the unique payment per order still holds.
			slog.ErrorContext(ctx, "idempotency begin", "layer", "handler", "component", "payment", "method", "Process", "order_id", orderID, "err", err)
			key = ""
		case entry != nil:
			w.Header().Set("Idempotent-Replayed", "true")
			writeRaw(w, entry.Status, entry.Body)
			return
		}
	}

	out, err := h.payment.Process(ctx, userID, orderID, req)
	if err != nil {
		h.release(ctx, key)
		writeError(w, r, "payment", "Process", err)
		return
	}

	body, err := json.Marshal(toOutcomeResponse(out))
	if err != nil {
		h.release(ctx, key)
		writeError(w, r, "payment", "Process", err)
		return
	}
	if key != "" {
		if err := h.idem.Complete(context.WithoutCancel(ctx), key, http.StatusCreated, body); err != nil {
			slog.ErrorContext(ctx, "idempotency complete", "layer", "handler", "component", "payment", "method", "Process", "order_id", orderID, "err", err)
		}
	}
	writeRaw(w, http.StatusCreated, body)
}

func (h *Payment) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := h.idem.Release(context.WithoutCancel(ctx), key); err != nil {
		slog.ErrorContext(ctx, "idempotency release", "layer", "handler", "component", "payment", "err", err)
	}
}

func (h *Payment) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.payment.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "payment", "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Payment) GetByOrder(w http.ResponseWriter, r *http.Request) {
	p, err := h.payment.GetByOrder(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "payment", "GetByOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Payment) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payment.List(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, "payment", "List", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentList(payments))
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("write response", "layer", "handler", "err", err)
	}
}
