package notify

import (
	"context"
	"log/slog"
)

// Sender delivers one message. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender only logs; it is used when no email provider is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email sent (mock)",
		"template", msg.Template,
		"to", msg.Params.ToEmail,
		"event_title", msg.Params.EventTitle,
		"status", msg.Params.Status,
	)
	return nil
}
