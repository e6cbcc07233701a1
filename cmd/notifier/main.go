package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/BruksfildServices01/coach-calendar/internal/config"
	"github.com/BruksfildServices01/coach-calendar/internal/logging"
	"github.com/BruksfildServices01/coach-calendar/internal/notify"
)

func main() {
	cfg := config.Load()
	logging.SetupGlobalHandler("coach-calendar-notifier", !cfg.IsProduction())

	if cfg.NatsURL == "" {
		slog.Error("NATS_URL environment variable is not set")
		os.Exit(1)
	}

	nc, err := nats.Connect(cfg.NatsURL, nats.Name("coach-calendar-notifier"))
	if err != nil {
		slog.Error("failed to connect to nats", "error", err)
		os.Exit(1)
	}
	defer nc.Close()

	var sender notify.Sender = notify.LogSender{}
	if cfg.EmailJS.Enabled() {
		sender = notify.NewEmailJSClient(cfg.EmailJS)
	} else {
		slog.Warn("EmailJS not configured; emails are only logged")
	}

	worker := notify.NewWorker(nc, sender)
	if err := worker.Start(); err != nil {
		slog.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	slog.Info("notifier started, waiting for messages", "subject", notify.Subject)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down notifier")
	if err := worker.Stop(); err != nil {
		slog.Error("drain subscription", "error", err)
	}
}
