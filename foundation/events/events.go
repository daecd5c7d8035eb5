// Package events fans ledger messages out to the websocket clients that are
// watching the node.
package events

import (
	"fmt"
	"sync"
)

// backlog is how many messages a subscriber can fall behind before new
// messages are dropped for it.
const backlog = 100

// Events tracks the subscribers watching the ledger, keyed by the trace id
// of the request that opened the subscription.
type Events struct {
	mu   sync.RWMutex
	subs map[string]chan string
}

// New constructs an empty set of subscribers.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Subscribe returns the channel ledger messages are delivered on for the
// id. Subscribing with an id that is already known returns its channel.
func (evt *Events) Subscribe(id string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.subs[id]; exists {
		return ch
	}

	ch := make(chan string, backlog)
	evt.subs[id] = ch

	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (evt *Events) Unsubscribe(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("subscriber %q not found", id)
	}

	delete(evt.subs, id)
	close(ch)

	return nil
}

// Shutdown removes every subscriber and closes their channels.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}

// Count returns the number of subscribers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.subs)
}

// Send delivers the message to every subscriber with room in its backlog.
// A subscriber that has fallen behind misses the message.
func (evt *Events) Send(msg string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
