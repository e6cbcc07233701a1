package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-calendar/internal/config"
	"github.com/BruksfildServices01/coach-calendar/internal/models"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return s.err
}

type queueRecorder struct {
	msgs []Message
}

func (q *queueRecorder) Enqueue(msg Message) {
	q.msgs = append(q.msgs, msg)
}

func yogaEvent() models.Event {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return models.Event{ID: "e1", CoachID: "c1", Title: "Yoga", Start: start, End: &end}
}

func TestNotifier_BookingAccepted(t *testing.T) {
	q := &queueRecorder{}
	n := NewNotifier(q, "UTC")

	n.BookingAccepted(models.Booking{ClientEmail: "anna@example.com", Status: models.BookingAccepted}, yogaEvent())

	require.Len(t, q.msgs, 1)
	msg := q.msgs[0]
	assert.Equal(t, TemplateBookingAccepted, msg.Template)
	assert.Equal(t, Params{
		ToEmail:          "anna@example.com",
		EventTitle:       "Yoga",
		EventDescription: "",
		EventTime:        "Monday, March 2, 10:00 AM",
		EventEnd:         "Monday, March 2, 11:00 AM",
		Status:           models.BookingAccepted,
	}, msg.Params)
}

func TestNotifier_EventUpdatedOnlyAccepted(t *testing.T) {
	q := &queueRecorder{}
	n := NewNotifier(q, "UTC")

	ev := yogaEvent()
	ev.End = nil

	sent := n.EventUpdated([]models.Booking{
		{ClientEmail: "a@x.io", Status: models.BookingAccepted},
		{ClientEmail: "b@x.io", Status: models.BookingPending},
		{ClientEmail: "c@x.io", Status: models.BookingDeclined},
		{ClientEmail: "d@x.io", Status: models.BookingAccepted},
	}, ev)

	assert.Equal(t, 2, sent)
	require.Len(t, q.msgs, 2)
	assert.Equal(t, "a@x.io", q.msgs[0].Params.ToEmail)
	assert.Equal(t, "d@x.io", q.msgs[1].Params.ToEmail)
	assert.Equal(t, TemplateEventUpdated, q.msgs[1].Template)
	assert.Equal(t, "", q.msgs[1].Params.EventEnd)
}

func TestDispatcher_SendsAndSurvivesFailures(t *testing.T) {
	s := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(s, 4)

	d.Enqueue(Message{Template: TemplateBookingAccepted})
	d.Enqueue(Message{Template: TemplateEventUpdated})
	d.Close()

	assert.Len(t, s.msgs, 2)
}

func TestEmailJSClient_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewEmailJSClient(config.EmailJSConfig{
		APIURL:                 srv.URL + "/",
		ServiceID:              "svc",
		BookingTemplateID:      "tpl_accepted",
		EventUpdatedTemplateID: "tpl_updated",
		PublicKey:              "pub",
	})

	err := c.Send(context.Background(), Message{
		Template: TemplateEventUpdated,
		Params:   Params{ToEmail: "anna@example.com", Status: "accepted"},
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", got["service_id"])
	assert.Equal(t, "tpl_updated", got["template_id"])
	assert.Equal(t, "pub", got["user_id"])
	assert.NotContains(t, got, "accessToken")
	params := got["template_params"].(map[string]any)
	assert.Equal(t, "anna@example.com", params["to_email"])
	assert.Equal(t, "", params["event_end"])
}

func TestEmailJSClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	c := NewEmailJSClient(config.EmailJSConfig{APIURL: srv.URL})

	err := c.Send(context.Background(), Message{Template: TemplateBookingAccepted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The template ID is invalid")

	err = c.Send(context.Background(), Message{Template: "unknown"})
	assert.Error(t, err)
}

func TestWorker_HandleDeliversRelayedMessage(t *testing.T) {
	s := &recordingSender{}
	w := NewWorker(nil, s)

	payload, err := json.Marshal(Message{
		Template: TemplateBookingAccepted,
		Params:   Params{ToEmail: "anna@example.com"},
	})
	require.NoError(t, err)

	w.handle(&nats.Msg{Subject: Subject, Data: payload})
	w.handle(&nats.Msg{Subject: Subject, Data: []byte("not json")})

	require.Len(t, s.msgs, 1)
	assert.Equal(t, "anna@example.com", s.msgs[0].Params.ToEmail)
}
