package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nskaik/order-payment-api/cmd/web/validator"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/validation"
)

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "layer", "handler", "err", err)
	}
}

// writeError maps a service error onto a status code and body. Rule
// errors carry their own user-facing message; anything unclassified is a
// 500 with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, component, method string, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "layer", "handler", "component", component, "method", method, "err", err)
	} else {
		slog.InfoContext(r.Context(), "request rejected", "layer", "handler", "component", component, "method", method, "status", status, "err", err)
	}
	writeJSON(w, status, body)
}

func classify(err error) (int, any) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return http.StatusUnprocessableEntity, validationResponse{Message: vErr.Message(), Errors: vErr.Fields}
	}
	if errors.Is(err, validator.ErrInvalidJSON) {
		return http.StatusBadRequest, messageResponse{Message: "The request body is not valid JSON."}
	}

	var ruleErr *db.RuleError
	msg := ""
	if errors.As(err, &ruleErr) {
		msg = ruleErr.Error()
	}
	withDefault := func(def string) messageResponse {
		if msg == "" {
			msg = def
		}
		return messageResponse{Message: msg}
	}

	switch {
	case db.IsNotFound(err):
		return http.StatusNotFound, withDefault("Resource not found.")
	case db.IsForbidden(err):
		return http.StatusForbidden, withDefault("This action is unauthorized.")
	case db.IsConflict(err):
		return http.StatusConflict, withDefault("The request conflicts with the current state of the resource.")
	case db.IsUnprocessable(err), db.IsInvalid(err) && ruleErr != nil:
		return http.StatusUnprocessableEntity, withDefault("The request could not be processed.")
	}
	return http.StatusInternalServerError, messageResponse{Message: "Internal server error."}
}
