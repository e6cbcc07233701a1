package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"

	"github.com/BruksfildServices01/coach-calendar/internal/audit"
	"github.com/BruksfildServices01/coach-calendar/internal/config"
	dbpkg "github.com/BruksfildServices01/coach-calendar/internal/db"
	"github.com/BruksfildServices01/coach-calendar/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/coach-calendar/internal/infra/repository"
	"github.com/BruksfildServices01/coach-calendar/internal/logging"
	"github.com/BruksfildServices01/coach-calendar/internal/notify"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
	"github.com/BruksfildServices01/coach-calendar/internal/routes"
)

const auditQueueSize = 256

func main() {

	cfg := config.Load()
	logging.SetupGlobalHandler("coach-calendar", !cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// CHANGE FEED
	// ======================================================
	var broker realtime.Broker
	if cfg.RedisURL != "" {
		client, err := realtime.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		broker = realtime.NewRedisBroker(client)
		slog.Info("change feed on redis")
	} else {
		broker = realtime.NewMemoryBroker()
	}

	// ======================================================
	// STORE + AUDIT
	// ======================================================
	infra := routes.Infra{Broker: broker}

	if cfg.UsesMemoryStore() {
		store := memory.New(broker)
		auditLog := audit.NewMemoryLog()

		infra.Accounts = store
		infra.Events = store
		infra.AuditLogs = auditLog
		infra.Audit = audit.NewDispatcher(auditLog, auditQueueSize)
		slog.Warn("using in-memory store; data is lost on restart")
	} else {
		db := dbpkg.NewDB(cfg)
		auditLogger := audit.New(db)

		infra.Accounts = infraRepo.NewAccountGormRepository(db, broker)
		infra.Events = infraRepo.NewEventGormRepository(db, broker)
		infra.AuditLogs = auditLogger
		infra.Audit = audit.NewDispatcher(auditLogger, auditQueueSize)
	}
	defer infra.Audit.Close()

	// ======================================================
	// EMAIL
	// ======================================================
	var sender notify.Sender = notify.LogSender{}
	switch {
	case cfg.NatsURL != "":
		nc, err := nats.Connect(cfg.NatsURL, nats.Name("coach-calendar-api"))
		if err != nil {
			slog.Error("failed to connect to nats", "error", err)
			os.Exit(1)
		}
		defer nc.Drain()
		sender = notify.NewNatsSender(nc)
		slog.Info("emails relayed to notifier", "subject", notify.Subject)
	case cfg.EmailJS.Enabled():
		sender = notify.NewEmailJSClient(cfg.EmailJS)
	default:
		slog.Warn("EmailJS not configured; emails are only logged")
	}

	emails := notify.NewDispatcher(sender, cfg.NotifyQueueSize)
	defer emails.Close()
	infra.Emails = emails

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, infra, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Addr(), "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
}
