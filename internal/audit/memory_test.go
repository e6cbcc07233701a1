package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLog_ListFiltersAndPages(t *testing.T) {
	m := NewMemoryLog()
	ctx := context.Background()

	require.NoError(t, m.Log(ctx, Event{CoachID: "c1", Action: "event_created", Entity: "event"}))
	require.NoError(t, m.Log(ctx, Event{CoachID: "c1", Action: "booking_accepted", Entity: "event", Metadata: map[string]any{"index": 0}}))
	require.NoError(t, m.Log(ctx, Event{CoachID: "c2", Action: "event_created", Entity: "event"}))
	require.NoError(t, m.Log(ctx, Event{CoachID: "c1", Action: "event_deleted", Entity: "event"}))

	logs, total, err := m.List(ctx, Filter{CoachID: "c1", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.Equal(t, "event_deleted", logs[0].Action)
	assert.Equal(t, "booking_accepted", logs[1].Action)
	assert.JSONEq(t, `{"index":0}`, logs[1].Metadata)

	logs, _, err = m.List(ctx, Filter{CoachID: "c1", Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, logs)

	logs, total, err = m.List(ctx, Filter{CoachID: "c1", Action: "event_created", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, logs, 1)

	future := time.Now().Add(time.Hour)
	logs, _, err = m.List(ctx, Filter{CoachID: "c1", From: &future, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
