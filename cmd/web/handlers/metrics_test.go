package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/nskaik/order-payment-api/cmd/web/validator"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/stretchr/testify/mock"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	t.Parallel()
	rec := &recorderMock{}
	pattern := mock.MatchedBy(func(route string) bool {
		return strings.HasPrefix(route, "GET /orders") && !strings.Contains(route, "o9")
	})
	rec.On("HTTPRequest", pattern, "404", mock.Anything).Once()
	rec.On("HTTPRequest", pattern, "401", mock.Anything).Once()

	svc := &orderServiceMock{}
	svc.On("Get", mock.Anything, "u1", "o9").Return(nil, order.ErrNotFound).Once()

	jsonV := validator.NewJSON()
	h := NewRouter(Routes{
		Order:    NewOrder(jsonV, svc),
		Payment:  NewPayment(jsonV, &paymentServiceMock{}, nil, nil),
		Recorder: rec,
	})

	do(t, h, http.MethodGet, "/orders/o9", "u1", "")
	do(t, h, http.MethodGet, "/orders", "", "")

	rec.AssertExpectations(t)
	svc.AssertExpectations(t)
}
