package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

const Subject = "notify.email"

// NatsSender relays messages to the notifier worker.
type NatsSender struct {
	conn *nats.Conn
}

func NewNatsSender(conn *nats.Conn) *NatsSender {
	return &NatsSender{conn: conn}
}

func (s *NatsSender) Send(_ context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if err := s.conn.Publish(Subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", Subject, err)
	}
	return nil
}

// Worker receives relayed messages and delivers them with sender.
type Worker struct {
	conn   *nats.Conn
	sender Sender
	sub    *nats.Subscription
}

func NewWorker(conn *nats.Conn, sender Sender) *Worker {
	return &Worker{conn: conn, sender: sender}
}

func (w *Worker) Start() error {
	sub, err := w.conn.QueueSubscribe(Subject, "notifier", w.handle)
	if err != nil {
		return err
	}
	w.sub = sub
	return nil
}

func (w *Worker) Stop() error {
	if w.sub == nil {
		return nil
	}
	return w.sub.Drain()
}

func (w *Worker) handle(m *nats.Msg) {
	var msg Message
	if err := json.Unmarshal(m.Data, &msg); err != nil {
		slog.Error("decode notification", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := w.sender.Send(ctx, msg); err != nil {
		slog.Error("notification failed",
			"template", msg.Template,
			"to", msg.Params.ToEmail,
			"error", err,
		)
		return
	}
	slog.Info("notification sent", "template", msg.Template, "to", msg.Params.ToEmail)
}
