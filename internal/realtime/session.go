package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
)

const (
	SessionSignedOut = "signed_out"
	SessionDeleted   = "deleted"
)

// SessionChange is published on sessions/{uid}. SessionID is empty when the
// change applies to every session of the account.
type SessionChange struct {
	Kind      string `json:"kind"`
	SessionID string `json:"sid,omitempty"`
}

func PublishSession(ctx context.Context, b Broker, userID string, sc SessionChange) {
	if b == nil {
		return
	}

	payload, err := json.Marshal(sc)
	if err != nil {
		return
	}
	if err := b.Publish(ctx, SessionTopic(userID), payload); err != nil {
		slog.WarnContext(ctx, "publish session change failed", "user_id", userID, "error", err)
	}
}

// EndsSession reports whether payload terminates the session sid.
func EndsSession(payload []byte, sid string) bool {
	var sc SessionChange
	if err := json.Unmarshal(payload, &sc); err != nil {
		return false
	}

	switch sc.Kind {
	case SessionDeleted:
		return true
	case SessionSignedOut:
		return sc.SessionID == "" || sc.SessionID == sid
	default:
		return false
	}
}
