package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nskaik/order-payment-api/cmd/consumers/config"
	consumerhandlers "github.com/nskaik/order-payment-api/cmd/consumers/handlers"
	"github.com/nskaik/order-payment-api/internal/audit"
	"github.com/nskaik/order-payment-api/internal/events"
	"github.com/nskaik/order-payment-api/internal/notification"
	"github.com/nskaik/order-payment-api/internal/recovery"
	"github.com/nskaik/order-payment-api/kit/broker"
	"github.com/nskaik/order-payment-api/kit/db"
	"github.com/nskaik/order-payment-api/kit/observability"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	metricsKit := observability.NewMetrics(cfg.Name)
	bus := broker.New()

	journal, err := db.NewJournalWithFile(cfg.JournalPath)
	if err != nil {
		logger.Error("journal init error", "error", err.Error())
		os.Exit(1)
	}
	defer journal.Close()

	auditSvc, err := audit.NewServiceWithFile(logger, cfg.AuditPath)
	if err != nil {
		logger.Error("audit init error", "error", err.Error())
		os.Exit(1)
	}
	defer auditSvc.Close()
	notificationSvc := notification.NewService(logger)

	auditHandler := consumerhandlers.NewAuditEvent(auditSvc)
	metricsHandler := consumerhandlers.NewMetricsEvent(metricsKit)
	journalHandler := consumerhandlers.NewJournalEvent(journal)
	notificationHandler := consumerhandlers.NewNotificationEvent(notificationSvc)

	bus.SubscribeAll(auditHandler.HandleAny)
	bus.SubscribeAll(metricsHandler.HandleAny)
	bus.SubscribeAll(journalHandler.HandleAny)
	for _, name := range notificationHandler.Names() {
		bus.Subscribe(name, notificationHandler.Handle)
	}

	reader := broker.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.GroupID)
	recoverySvc := recovery.NewService(logger, broker.NewKafkaWriter(cfg.KafkaBrokers, cfg.DLQTopic))
	defer recoverySvc.Close()
	source := broker.NewKafkaSource(reader, events.Decode, bus).WithDeadLetter(recoverySvc)
	defer source.Close()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsKit.Handler(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return source.Run(gctx)
	})
	g.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	logger.Info("consumers started", "name", cfg.Name, "topic", cfg.KafkaTopic, "group", cfg.GroupID)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumers stopped", "error", err.Error())
		return
	}
	logger.Info("consumers stopped")
}
