package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()

	var got []Event
	b.Subscribe(TopicMarkChanged, func(ev Event) {
		got = append(got, ev)
	})

	b.Publish(TopicMarkChanged, MarkChanged{GroupID: "g1", MarkType: "important"})

	require.Len(t, got, 1)
	assert.Equal(t, TopicMarkChanged, got[0].Topic)
	payload, ok := got[0].Payload.(MarkChanged)
	require.True(t, ok)
	assert.Equal(t, "g1", payload.GroupID)
}

func TestPublish_TopicIsolation(t *testing.T) {
	b := New()

	var markEvents, playEvents int
	b.Subscribe(TopicMarkChanged, func(Event) { markEvents++ })
	b.Subscribe(TopicPlayFromTimeRequested, func(Event) { playEvents++ })

	b.Publish(TopicPlayFromTimeRequested, PlayFromTimeRequested{TimeMs: 500})

	assert.Zero(t, markEvents)
	assert.Equal(t, 1, playEvents)
}

func TestPublish_SubscriptionOrder(t *testing.T) {
	b := New()

	var order []int
	b.Subscribe(TopicMarkChanged, func(Event) { order = append(order, 1) })
	b.Subscribe(TopicMarkChanged, func(Event) { order = append(order, 2) })

	b.Publish(TopicMarkChanged, MarkChanged{})
	assert.Equal(t, []int{1, 2}, order)
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	var calls int
	unsub := b.Subscribe(TopicMarkChanged, func(Event) { calls++ })

	b.Publish(TopicMarkChanged, MarkChanged{})
	unsub()
	b.Publish(TopicMarkChanged, MarkChanged{})

	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	unsub()
}

func TestPublish_NoSubscribers(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() {
		b.Publish(TopicQuickExtractRequested, QuickExtractRequested{GroupID: "g0"})
	})
}
