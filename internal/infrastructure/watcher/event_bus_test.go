package watcher

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mediverse/backend/internal/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completed(sessionID string) events.Event {
	return &events.TriageCompletedEvent{SessionID: sessionID, EventTime: time.Now()}
}

func TestEventBus_Subscribe(t *testing.T) {
	bus := NewEventBus()

	var received atomic.Value
	unsub := bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(event events.Event) error {
		received.Store(event.(*events.TriageCompletedEvent).SessionID)
		return nil
	}))
	defer unsub()

	bus.Publish(completed("s-1"))
	bus.Close()

	assert.Equal(t, "s-1", received.Load())
}

func TestEventBus_MultipleHandlers(t *testing.T) {
	bus := NewEventBus()

	var count atomic.Int32
	for i := 0; i < 3; i++ {
		bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(events.Event) error {
			count.Add(1)
			return nil
		}))
	}

	bus.Publish(completed("s-1"))
	bus.Close()

	assert.Equal(t, int32(3), count.Load(), "all 3 handlers should have received the event")
}

func TestEventBus_SubscribeMultiple(t *testing.T) {
	bus := NewEventBus()

	var count atomic.Int32
	unsub := bus.SubscribeMultiple(
		[]events.EventType{events.TriageSessionCompleted, events.QueueEntryCreated},
		events.HandlerFunc(func(events.Event) error {
			count.Add(1)
			return nil
		}),
	)
	defer unsub()

	bus.Publish(completed("s-1"))
	bus.Publish(&events.QueueEntryEvent{EventTime: time.Now()})
	bus.Close()

	assert.Equal(t, int32(2), count.Load())
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	var first, second atomic.Int32
	unsubFirst := bus.Subscribe(events.QueueEntryCreated, events.HandlerFunc(func(events.Event) error {
		first.Add(1)
		return nil
	}))
	bus.Subscribe(events.QueueEntryCreated, events.HandlerFunc(func(events.Event) error {
		second.Add(1)
		return nil
	}))

	unsubFirst()
	unsubFirst() // 重复调用无副作用

	bus.Publish(&events.QueueEntryEvent{EventTime: time.Now()})
	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestEventBus_ErrorAndPanicIsolation(t *testing.T) {
	bus := NewEventBus()

	var successCount atomic.Int32
	bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(events.Event) error {
		return errors.New("handler error")
	}))
	bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(events.Event) error {
		panic("handler panic")
	}))
	bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(events.Event) error {
		successCount.Add(1)
		return nil
	}))

	require.NotPanics(t, func() {
		bus.Publish(completed("s-1"))
		bus.Close()
	})
	assert.Equal(t, int32(1), successCount.Load())
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	bus := NewEventBus()

	var count atomic.Int32
	bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(events.Event) error {
		count.Add(1)
		return nil
	}))
	bus.Close()
	bus.Close()

	bus.Publish(completed("s-1"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())
}

func TestEventBus_CloseWaitsForHandlers(t *testing.T) {
	bus := NewEventBus()

	var done atomic.Bool
	bus.Subscribe(events.TriageSessionCompleted, events.HandlerFunc(func(events.Event) error {
		time.Sleep(100 * time.Millisecond)
		done.Store(true)
		return nil
	}))

	bus.Publish(completed("s-1"))
	bus.Close()

	assert.True(t, done.Load(), "Close should wait for in-flight handlers")
}
