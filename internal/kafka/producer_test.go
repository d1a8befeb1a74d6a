package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
	block  chan struct{}
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestProducer_PublishAndFlushOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "auction.notifications", 8)
	p.Start()

	require.NoError(t, p.Publish([]byte("u1"), []byte(`{"a":1}`)))
	require.NoError(t, p.Publish([]byte("u2"), []byte(`{"a":2}`)))

	p.Close()
	p.Close()
	p.WaitClosed()

	require.True(t, w.closed)
	require.Len(t, w.msgs, 2)
	require.Equal(t, "u1", string(w.msgs[0].Key))
	require.ErrorIs(t, p.Publish([]byte("u3"), nil), ErrClosed)
}

func TestProducer_InboxFullDoesNotBlock(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	p := newProducer(w, "t", 1)
	p.Start()

	// the writer goroutine holds at most one message while blocked
	var full bool
	for i := 0; i < 5 && !full; i++ {
		full = errors.Is(p.Publish([]byte("k"), nil), ErrInboxFull)
	}
	require.True(t, full)

	close(w.block)
	p.Close()
	p.WaitClosed()
}

func TestProducer_WriteErrorsAreLoggedNotFatal(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newProducer(w, "t", 4)
	p.Start()

	require.NoError(t, p.Publish([]byte("k"), nil))
	require.NoError(t, p.Publish([]byte("k"), nil))
	p.Close()
	p.WaitClosed()
	require.Len(t, w.msgs, 2)
}

func TestEnvelope_RoundTripPayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env, err := NewEnvelope("e1", "BidConfirmed", "auction-engine", "p1", at, map[string]string{"product_id": "p1"})
	require.NoError(t, err)
	require.Equal(t, 1, env.EventVersion)

	payload, err := UnwrapPayload[map[string]string](env.Payload)
	require.NoError(t, err)
	require.Equal(t, "p1", payload["product_id"])

	_, err = UnwrapPayload[int](env.Payload)
	require.Error(t, err)
}
