package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/ghostchess/pkg/coredto"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	h := NewHub(nil)
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelA()
	defer cancelB()

	h.Publish(coredto.Event{Type: coredto.EventMoveApplied, Move: "e2e4"})

	evA := <-a
	evB := <-b
	assert.Equal(t, "e2e4", evA.Move)
	assert.Equal(t, "e2e4", evB.Move)
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	h := NewHub(nil)
	slow, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i <= subscriberBuffer; i++ {
		h.Publish(coredto.Event{Type: coredto.EventMoveApplied})
	}
	assert.Zero(t, h.SubscriberCount(), "overflowing subscriber is removed")

	// Drain: the channel was closed after buffer-many deliveries.
	n := 0
	for range slow {
		n++
	}
	assert.Equal(t, subscriberBuffer, n)
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub(nil)
	_, cancel := h.Subscribe()
	require.Equal(t, 1, h.SubscriberCount())
	cancel()
	cancel()
	assert.Zero(t, h.SubscriberCount())

	h.Publish(coredto.Event{Type: coredto.EventCheck})
}

func TestHubCloseDropsEveryone(t *testing.T) {
	h := NewHub(nil)
	ch, cancel := h.Subscribe()
	defer cancel()
	h.Close()
	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.SubscriberCount())
}
