package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsAndWorkerPersists(t *testing.T) {
	inbox := make(chan Event, 8)
	store := NewMemoryStore()

	pub := NewPublisher(inbox, nil)
	worker := NewWorker(store, nil, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	pub.Emit(context.Background(), Event{
		Category: CategoryTrading,
		Actor:    "rAlice",
		Action:   "order.place",
		TxHash:   "ABC",
	})

	require.Eventually(t, func() bool {
		events, err := store.ListByActor(context.Background(), "rAlice")
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := store.ListByActor(context.Background(), "rAlice")
	require.NoError(t, err)
	assert.NotZero(t, events[0].ID, "publisher assigns an ID")
	assert.False(t, events[0].Timestamp.IsZero(), "publisher stamps time")
	assert.Equal(t, "order.place", events[0].Action)

	cancel()
	<-done
}

func TestPublisherDropsWhenFull(t *testing.T) {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, nil)

	pub.Emit(context.Background(), Event{Actor: "a", Action: "one"})
	pub.Emit(context.Background(), Event{Actor: "a", Action: "two"})

	assert.Len(t, inbox, 1, "overflow is dropped, never blocks")
}

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureSink) Publish(_ context.Context, e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestWorkerForwardsToSink(t *testing.T) {
	inbox := make(chan Event, 1)
	store := NewMemoryStore()
	sink := &captureSink{}
	worker := NewWorker(store, sink, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	inbox <- Event{Actor: "rBob", Action: "credential.issue"}

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
