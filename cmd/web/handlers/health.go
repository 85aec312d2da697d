package handlers

import (
	"context"
	"net/http"

	"github.com/nskaik/order-payment-api/internal/health"
)

type HealthContract interface {
	Check(ctx context.Context) health.Result
}

type Health struct {
	svc HealthContract
}

func NewHealth(svc HealthContract) *Health { return &Health{svc: svc} }

func (h *Health) Handler(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Check(r.Context())
	status := http.StatusOK
	state := "up"
	if !res.OK {
		status = http.StatusServiceUnavailable
		state = "down"
	}
	writeJSON(w, status, map[string]any{"status": state, "checks": res.Checks, "at": res.At})
}
