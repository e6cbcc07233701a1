package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestMemoryBroker_PublishReachesTopicSubscribersOnly(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	events, err := b.Subscribe(ctx, EventsTopic("coach-1"))
	require.NoError(t, err)
	other, err := b.Subscribe(ctx, EventsTopic("coach-2"))
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, EventsTopic("coach-1"), []byte("x")))

	assert.Equal(t, []byte("x"), receive(t, events.C()))
	select {
	case <-other.C():
		t.Fatal("unexpected message on other topic")
	default:
	}
}

func TestMemoryBroker_CloseUnsubscribes(t *testing.T) {
	b := NewMemoryBroker()

	sub, err := b.Subscribe(context.Background(), CoachesTopic)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Subscribers(CoachesTopic))

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	assert.Equal(t, 0, b.Subscribers(CoachesTopic))
	_, ok := <-sub.C()
	assert.False(t, ok)
}

func TestMemoryBroker_ContextCancelUnsubscribes(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := b.Subscribe(ctx, CoachesTopic)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-sub.C():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed on cancel")
	}
	assert.Equal(t, 0, b.Subscribers(CoachesTopic))
}

func TestMemoryBroker_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, CoachesTopic)
	require.NoError(t, err)

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, b.Publish(ctx, CoachesTopic, []byte("x")))
	}

	assert.Len(t, sub.C(), subscriberBuffer)
}

func TestPublishChange_EncodesSignal(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, EventTopic("c1", "e1"))
	require.NoError(t, err)

	PublishChange(ctx, b, Change{Kind: ChangeUpdated, ID: "e1"}, EventsTopic("c1"), EventTopic("c1", "e1"))

	assert.JSONEq(t, `{"kind":"updated","id":"e1"}`, string(receive(t, sub.C())))
}

func TestEndsSession(t *testing.T) {
	assert.True(t, EndsSession([]byte(`{"kind":"deleted"}`), "s1"))
	assert.True(t, EndsSession([]byte(`{"kind":"signed_out","sid":"s1"}`), "s1"))
	assert.True(t, EndsSession([]byte(`{"kind":"signed_out"}`), "s1"))
	assert.False(t, EndsSession([]byte(`{"kind":"signed_out","sid":"s2"}`), "s1"))
	assert.False(t, EndsSession([]byte(`garbage`), "s1"))
}
