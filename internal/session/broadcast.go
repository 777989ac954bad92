package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
)

// Event is a login/logout transition delivered to subscribers.
type Event struct {
	Type   EventType
	UserID uuid.UUID
	At     time.Time
}

// Broadcaster fans session transitions out to subscribers. It replaces the
// source's global auth provider with an explicit value views subscribe to.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Event)}
}

// Subscribe registers a buffered channel for transitions. The returned
// function unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++

	ch := make(chan Event, 8)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Publish delivers ev to every subscriber without blocking. A subscriber
// that stopped draining its channel misses the event.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
