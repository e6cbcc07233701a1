package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (w *recordingWriter) Log(_ context.Context, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w, 10)

	d.Dispatch(Event{CoachID: "c1", Action: "event_created"})
	d.Dispatch(Event{CoachID: "c1", Action: "event_deleted"})
	d.Close()

	assert.Len(t, w.events, 2)
	assert.Equal(t, "event_created", w.events[0].Action)
	assert.Equal(t, "event_deleted", w.events[1].Action)
}

func TestDispatcher_WriterErrorDoesNotStopWorker(t *testing.T) {
	w := &recordingWriter{err: errors.New("db down")}
	d := NewDispatcher(w, 10)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	assert.Len(t, w.events, 2)
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingWriter{}, 1)

	d.Close()
	d.Close()
}
