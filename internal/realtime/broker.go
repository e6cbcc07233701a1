package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

var ErrClosed = errors.New("realtime: closed")

// Broker carries change signals between store writers and stream readers.
type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (Subscription, error)
}

// Subscription delivers payloads published to one topic until closed.
// C is closed once the subscription ends.
type Subscription interface {
	C() <-chan []byte
	Close() error
}

const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// Change is the signal published after a write. Subscribers re-read the
// store; the signal carries no document body.
type Change struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// PublishChange publishes c to every topic. Failures are logged; a write
// that already committed is never undone by a lost signal.
func PublishChange(ctx context.Context, b Broker, c Change, topics ...string) {
	if b == nil {
		return
	}

	payload, err := json.Marshal(c)
	if err != nil {
		slog.ErrorContext(ctx, "encode change", "error", err)
		return
	}

	for _, topic := range topics {
		if err := b.Publish(ctx, topic, payload); err != nil {
			slog.WarnContext(ctx, "publish change failed", "topic", topic, "error", err)
		}
	}
}
