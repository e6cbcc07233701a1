package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/coach-calendar/internal/dto"
	domain "github.com/BruksfildServices01/coach-calendar/internal/domain/booking"
	"github.com/BruksfildServices01/coach-calendar/internal/httperr"
	"github.com/BruksfildServices01/coach-calendar/internal/identity"
	"github.com/BruksfildServices01/coach-calendar/internal/middleware"
	"github.com/BruksfildServices01/coach-calendar/internal/realtime"
	ucClient "github.com/BruksfildServices01/coach-calendar/internal/usecase/client"
	ucCoach "github.com/BruksfildServices01/coach-calendar/internal/usecase/coach"
)

// CloseSessionEnded is the close code sent when the account is deleted or
// the session signs out.
const CloseSessionEnded = 4001

// Frame is every message pushed on a stream.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`

	ErrorCode string `json:"error_code,omitempty"`
}

// ======================================================
// HANDLER
// ======================================================

type StreamHandler struct {
	broker   realtime.Broker
	upgrader *websocket.Upgrader
	repo     domain.Repository

	listEvents *ucCoach.ListEvents
	loadCorpus *ucClient.LoadCorpus
}

func NewStreamHandler(
	broker realtime.Broker,
	upgrader *websocket.Upgrader,
	repo domain.Repository,
	listEvents *ucCoach.ListEvents,
	loadCorpus *ucClient.LoadCorpus,
) *StreamHandler {
	return &StreamHandler{
		broker:     broker,
		upgrader:   upgrader,
		repo:       repo,
		listEvents: listEvents,
		loadCorpus: loadCorpus,
	}
}

// open subscribes to the caller's session and to topics before upgrading,
// so no change between the first snapshot and the subscription is lost.
func (h *StreamHandler) open(
	c *gin.Context,
	kind string,
	topics ...string,
) (*realtime.Stream, realtime.Subscription, []realtime.Subscription, *identity.Claims, bool) {

	claims, _ := middleware.ClaimsFrom(c)
	ctx := c.Request.Context()

	session, err := h.broker.Subscribe(ctx, realtime.SessionTopic(claims.UserID()))
	if err != nil {
		slog.ErrorContext(ctx, "subscribe session", "error", err)
		httperr.Internal(c, "stream_unavailable", "Live updates are unavailable.")
		return nil, nil, nil, nil, false
	}

	subs := make([]realtime.Subscription, 0, len(topics))
	for _, topic := range topics {
		sub, err := h.broker.Subscribe(ctx, topic)
		if err != nil {
			session.Close()
			closeAll(subs)
			slog.ErrorContext(ctx, "subscribe topic", "topic", topic, "error", err)
			httperr.Internal(c, "stream_unavailable", "Live updates are unavailable.")
			return nil, nil, nil, nil, false
		}
		subs = append(subs, sub)
	}

	stream, err := realtime.Upgrade(h.upgrader, c.Writer, c.Request, kind)
	if err != nil {
		session.Close()
		closeAll(subs)
		slog.WarnContext(ctx, "upgrade failed", "kind", kind, "error", err)
		return nil, nil, nil, nil, false
	}

	return stream, session, subs, claims, true
}

func closeAll(subs []realtime.Subscription) {
	for _, s := range subs {
		s.Close()
	}
}

func (h *StreamHandler) send(ctx context.Context, s *realtime.Stream, f Frame) bool {
	if err := s.Send(f); err != nil {
		slog.DebugContext(ctx, "stream send failed", "type", f.Type, "error", err)
		return false
	}
	return true
}

// ======================================================
// COACH: EVENTS COLLECTION
// ======================================================

func (h *StreamHandler) CoachEvents(c *gin.Context) {
	uid := coachID(c)

	stream, session, subs, claims, ok := h.open(c, "coach_events", realtime.EventsTopic(uid))
	if !ok {
		return
	}
	defer session.Close()
	defer closeAll(subs)
	defer stream.Close()

	ctx := c.Request.Context()
	stream.Start(nil)

	push := func() bool {
		overview, err := h.listEvents.Execute(ctx, uid)
		if err != nil {
			slog.ErrorContext(ctx, "coach stream read", "coach_id", uid, "error", err)
			return h.send(ctx, stream, Frame{Type: "error", ErrorCode: "internal_error"})
		}
		return h.send(ctx, stream, Frame{Type: "events", Data: overview})
	}

	if !push() {
		return
	}

	for {
		select {
		case <-stream.Done():
			return
		case payload, open := <-session.C():
			if !open || realtime.EndsSession(payload, claims.SID) {
				stream.CloseWith(CloseSessionEnded, "session ended")
				return
			}
		case _, open := <-subs[0].C():
			if !open || !push() {
				return
			}
		}
	}
}

// ======================================================
// COACH: SINGLE EVENT
// ======================================================

func (h *StreamHandler) CoachEvent(c *gin.Context) {
	uid := coachID(c)
	eventID := c.Param("eventId")

	if _, err := h.repo.GetEvent(c.Request.Context(), uid, eventID); err != nil {
		respondError(c, err)
		return
	}

	stream, session, subs, claims, ok := h.open(c, "coach_event", realtime.EventTopic(uid, eventID))
	if !ok {
		return
	}
	defer session.Close()
	defer closeAll(subs)
	defer stream.Close()

	ctx := c.Request.Context()
	stream.Start(nil)

	push := func() bool {
		ev, err := h.repo.GetEvent(ctx, uid, eventID)
		if err != nil {
			if code, isBusiness := httperr.BusinessCode(err); isBusiness {
				h.send(ctx, stream, Frame{Type: "event_deleted", ErrorCode: code})
				stream.CloseWith(websocket.CloseNormalClosure, "event deleted")
				return false
			}
			slog.ErrorContext(ctx, "event stream read", "event_id", eventID, "error", err)
			return h.send(ctx, stream, Frame{Type: "error", ErrorCode: "internal_error"})
		}
		return h.send(ctx, stream, Frame{Type: "event", Data: ev})
	}

	if !push() {
		return
	}

	for {
		select {
		case <-stream.Done():
			return
		case payload, open := <-session.C():
			if !open || realtime.EndsSession(payload, claims.SID) {
				stream.CloseWith(CloseSessionEnded, "session ended")
				return
			}
		case _, open := <-subs[0].C():
			if !open || !push() {
				return
			}
		}
	}
}

// ======================================================
// CLIENT: DASHBOARD
// ======================================================

// Client streams the dashboard view. It follows the coaches collection and
// one events feed per coach; the per-coach set is rebuilt whenever the coach
// list changes. Commands from the socket update search, selection and jumps.
func (h *StreamHandler) Client(c *gin.Context) {
	user := caller(c)

	stream, session, subs, claims, ok := h.open(c, "client", realtime.CoachesTopic)
	if !ok {
		return
	}
	defer session.Close()
	defer closeAll(subs)
	defer stream.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	mux := realtime.NewMux(ctx, h.broker)
	defer mux.Close()

	corpus, err := h.loadCorpus.Execute(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "client stream load", "error", err)
		stream.CloseWith(websocket.CloseInternalServerErr, "load failed")
		return
	}
	dash := ucClient.NewDashboard(corpus, user.Email)

	if err := mux.Set(coachTopics(corpus)); err != nil {
		slog.ErrorContext(ctx, "client stream subscribe", "error", err)
		stream.CloseWith(websocket.CloseInternalServerErr, "subscribe failed")
		return
	}

	commands := make(chan dto.StreamCommand, 8)
	stream.Start(func(raw []byte) {
		var cmd dto.StreamCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return
		}
		select {
		case commands <- cmd:
		case <-stream.Done():
		}
	})

	view := func() bool {
		return h.send(ctx, stream, Frame{Type: "view", Data: dash.View()})
	}

	if !view() {
		return
	}

	for {
		select {
		case <-stream.Done():
			return

		case payload, open := <-session.C():
			if !open || realtime.EndsSession(payload, claims.SID) {
				stream.CloseWith(CloseSessionEnded, "session ended")
				return
			}

		case _, open := <-subs[0].C():
			if !open {
				return
			}
			if err := h.refreshCoaches(ctx, dash, mux); err != nil {
				slog.ErrorContext(ctx, "client stream refresh coaches", "error", err)
				continue
			}
			if !view() {
				return
			}

		case sig := <-mux.C():
			events, err := h.repo.ListEvents(ctx, sig.Key)
			if err != nil {
				slog.ErrorContext(ctx, "client stream refresh events", "coach_id", sig.Key, "error", err)
				continue
			}
			dash.Corpus().SetEvents(sig.Key, events)
			if !view() {
				return
			}

		case cmd := <-commands:
			if !h.apply(ctx, stream, dash, cmd) || !view() {
				return
			}
		}
	}
}

// refreshCoaches re-reads the coach list, loads events for coaches not yet
// followed and replaces the per-coach subscriptions.
func (h *StreamHandler) refreshCoaches(ctx context.Context, dash *ucClient.Dashboard, mux *realtime.Mux) error {
	coaches, err := h.repo.ListCoaches(ctx)
	if err != nil {
		return err
	}

	followed := make(map[string]struct{})
	for _, k := range mux.Keys() {
		followed[k] = struct{}{}
	}

	corpus := dash.Corpus()
	corpus.SetCoaches(coaches)

	for _, co := range coaches {
		if _, ok := followed[co.ID]; ok {
			continue
		}
		events, err := h.repo.ListEvents(ctx, co.ID)
		if err != nil {
			return err
		}
		corpus.SetEvents(co.ID, events)
	}

	return mux.Set(coachTopics(corpus))
}

func (h *StreamHandler) apply(ctx context.Context, s *realtime.Stream, dash *ucClient.Dashboard, cmd dto.StreamCommand) bool {
	switch cmd.Type {
	case "search":
		dash.Search(cmd.Term)

	case "select_coach":
		if err := dash.Select(cmd.CoachID); err != nil {
			return h.sendError(ctx, s, err)
		}

	case "jump":
		loc, err := dash.Jump(cmd.EventID)
		if err != nil {
			return h.sendError(ctx, s, err)
		}
		return h.send(ctx, s, Frame{Type: "jump", Data: loc})

	default:
		return h.send(ctx, s, Frame{Type: "error", ErrorCode: "unknown_command"})
	}
	return true
}

func (h *StreamHandler) sendError(ctx context.Context, s *realtime.Stream, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		code = "internal_error"
	}
	return h.send(ctx, s, Frame{Type: "error", ErrorCode: code})
}

func coachTopics(corpus *ucClient.Corpus) map[string]string {
	topics := make(map[string]string, len(corpus.Coaches()))
	for _, co := range corpus.Coaches() {
		topics[co.ID] = realtime.EventsTopic(co.ID)
	}
	return topics
}
