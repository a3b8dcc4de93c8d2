// Package bus provides the typed in-process event channel through which the
// session core and presentation surfaces communicate. Topics and payloads
// form the core's public event contract; the bus instance is owned by the
// session controller and injected into components rather than reached
// through any ambient global.
package bus

import (
	"sync"
	"time"
)

// Topic names an event stream on the bus.
type Topic string

// Bus topics. Payload types are documented next to their records in
// events.go.
const (
	TopicSentenceChangeRequested Topic = "sentenceChangeRequested"
	TopicMarkChanged             Topic = "markChanged"
	TopicSelectionMarkAdded      Topic = "selectionMarkAdded"
	TopicPlayFromTimeRequested   Topic = "playFromTimeRequested"
	TopicNoteCaptureRequested    Topic = "noteCaptureRequested"
	TopicQuickExtractRequested   Topic = "quickExtractRequested"
)

// Event is a published occurrence on a topic.
type Event struct {
	Topic     Topic       `json:"topic"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Handler consumes events on a subscribed topic. Handlers run synchronously
// on the publisher's goroutine; the bus adds no concurrency of its own.
type Handler func(Event)

// Bus is an in-process publish/subscribe channel.
type Bus struct {
	mu   sync.Mutex
	subs map[Topic][]subscription
	next int
}

type subscription struct {
	id      int
	handler Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers a handler for a topic and returns a function that
// removes the subscription.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to every subscriber of the topic, in
// subscription order. Unknown topics are a no-op.
func (b *Bus) Publish(topic Topic, payload interface{}) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	ev := Event{Topic: topic, Timestamp: time.Now().UTC(), Payload: payload}
	for _, s := range subs {
		s.handler(ev)
	}
}
