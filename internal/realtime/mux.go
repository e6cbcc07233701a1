package realtime

import (
	"context"
	"sort"
	"sync"
)

// Signal is a payload received on one of a Mux's keyed subscriptions.
type Signal struct {
	Key     string
	Payload []byte
}

// Mux fans many keyed subscriptions into one channel. The key set is
// replaced as a whole by Set; signals carry no ordering between keys.
type Mux struct {
	ctx    context.Context
	broker Broker

	mu     sync.Mutex
	subs   map[string]keyedSub
	out    chan Signal
	done   chan struct{}
	closed bool
}

type keyedSub struct {
	topic string
	sub   Subscription
}

func NewMux(ctx context.Context, broker Broker) *Mux {
	return &Mux{
		ctx:    ctx,
		broker: broker,
		subs:   make(map[string]keyedSub),
		out:    make(chan Signal, 64),
		done:   make(chan struct{}),
	}
}

func (m *Mux) C() <-chan Signal {
	return m.out
}

// Set subscribes to every key -> topic pair not yet held and drops the
// subscriptions whose key is gone.
func (m *Mux) Set(topics map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for key, ks := range m.subs {
		if topic, ok := topics[key]; !ok || topic != ks.topic {
			ks.sub.Close()
			delete(m.subs, key)
		}
	}

	for key, topic := range topics {
		if _, ok := m.subs[key]; ok {
			continue
		}

		sub, err := m.broker.Subscribe(m.ctx, topic)
		if err != nil {
			return err
		}
		m.subs[key] = keyedSub{topic: topic, sub: sub}
		go m.forward(key, sub)
	}
	return nil
}

func (m *Mux) forward(key string, sub Subscription) {
	for payload := range sub.C() {
		select {
		case m.out <- Signal{Key: key, Payload: payload}:
		case <-m.done:
			return
		}
	}
}

// Keys returns the subscribed keys in sorted order.
func (m *Mux) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.subs))
	for k := range m.subs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Mux) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	close(m.done)

	for key, ks := range m.subs {
		ks.sub.Close()
		delete(m.subs, key)
	}
}
