package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	consumerhandlers "github.com/nskaik/order-payment-api/cmd/consumers/handlers"
	"github.com/nskaik/order-payment-api/cmd/web/config"
	"github.com/nskaik/order-payment-api/cmd/web/handlers"
	"github.com/nskaik/order-payment-api/cmd/web/validator"
	"github.com/nskaik/order-payment-api/internal/audit"
	"github.com/nskaik/order-payment-api/internal/gateway"
	"github.com/nskaik/order-payment-api/internal/health"
	"github.com/nskaik/order-payment-api/internal/notification"
	"github.com/nskaik/order-payment-api/internal/order"
	"github.com/nskaik/order-payment-api/internal/payment"
	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/cache"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger("info").Error("config error", "error", err.Error())
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel)
	metricsKit := observability.NewMetrics(cfg.Name)
	bus := broker.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlClient, err := db.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("db init error", "error", err.Error())
		return
	}
	defer func() { _ = sqlClient.Close() }()

	journal, err := db.NewJournalWithFile(cfg.JournalPath)
	if err != nil {
		logger.Error("journal init error", "error", err.Error())
		return
	}
	defer func() { _ = journal.Close() }()

	auditSvc, err := audit.NewServiceWithFile(logger, cfg.AuditPath)
	if err != nil {
		logger.Error("audit init error", "error", err.Error())
		return
	}
	defer func() { _ = auditSvc.Close() }()

	registry, err := gateway.NewRegistry(cfg.Gateways, gateway.Drivers(), func(method string, status gateway.Status, d time.Duration) {
		metricsKit.GatewayCall(method, string(status), d)
	})
	if err != nil {
		logger.Error("gateway registry error", "error", err.Error())
		return
	}

	orderSvc := order.NewService(bus, journal, order.NewSQLRepository(sqlClient), metricsKit)
	paymentSvc := payment.NewService(bus, journal, payment.NewSQLRepository(sqlClient), orderSvc, registry, metricsKit)

	checks := map[string]health.CheckFunc{"db": sqlClient.Ping}
	var idem handlers.PaymentIdempotencyContract
	if cfg.RedisAddr != "" {
		redisClient := cache.NewRedisClient(cfg.RedisAddr)
		defer func() { _ = redisClient.Close() }()
		idemStore := cache.NewIdempotency(redisClient, cfg.Name, cfg.IdempotencyTTL)
		checks["redis"] = idemStore.Ping
		idem = idemStore
	}
	healthSvc := health.NewService(2*time.Second, checks)

	// Audit always runs in-process. With Kafka configured the rest of the
	// fan-out belongs to the consumers binary.
	bus.SubscribeAll(consumerhandlers.NewAuditEvent(auditSvc).HandleAny)
	if len(cfg.KafkaBrokers) > 0 {
		forwarder := broker.NewKafkaForwarder(broker.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer func() { _ = forwarder.Close() }()
		bus.SubscribeAll(forwarder.Handle)
		logger.Info("forwarding events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		notificationHandler := consumerhandlers.NewNotificationEvent(notification.NewService(logger))
		for _, name := range notificationHandler.Names() {
			bus.Subscribe(name, notificationHandler.Handle)
		}
	}

	jsonV := validator.NewJSON()
	router := handlers.NewRouter(handlers.Routes{
		Order:     handlers.NewOrder(jsonV, orderSvc),
		Payment:   handlers.NewPayment(jsonV, paymentSvc, healthSvc, idem),
		Health:    handlers.NewHealth(healthSvc),
		Metrics:   metricsKit.Handler(),
		Recorder:  metricsKit,
		AccessLog: true,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 2 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("web server shutdown error", "error", err.Error())
		}
	}()

	logger.Info("web server started", "addr", srv.Addr, "methods", registry.Methods())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("web server error", "error", err.Error())
	}
	logger.Info("web server stopped")
}
