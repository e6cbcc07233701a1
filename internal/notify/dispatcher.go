package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/coach-calendar/internal/metrics"
)

const sendTimeout = 15 * time.Second

// Dispatcher hands messages to a Sender on a background worker. Callers
// never wait for delivery and never see its failure.
type Dispatcher struct {
	sender Sender
	queue  chan Message

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sender Sender, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, msg)
		cancel()

		if err != nil {
			metrics.NotificationsTotal.WithLabelValues(msg.Template, "failed").Inc()
			slog.Error("notification failed",
				"template", msg.Template,
				"to", msg.Params.ToEmail,
				"error", err,
			)
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(msg.Template, "sent").Inc()
	}
}

func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		metrics.NotificationsTotal.WithLabelValues(msg.Template, "dropped").Inc()
		slog.Warn("notification queue full, dropping message",
			"template", msg.Template,
			"to", msg.Params.ToEmail,
		)
	}
}

// Close waits for queued messages to be handed to the sender.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
