// Package broadcast fans out mutation events to all connected clients.
//
// Delivery is at-most-once best-effort: there is no persistence nor replay,
// a subscriber that is absent or too slow at publish time misses the event
// and relies on its next full fetch for eventual consistency.
package broadcast

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/virada/rolelist/internal/model"
)

// Event types sent over the realtime channel.
const (
	EventItemCreated    = "item:created"
	EventItemUpdated    = "item:updated"
	EventItemDeleted    = "item:deleted"
	EventCommentAdded   = "item:comment-added"
	EventCommentDeleted = "item:comment-deleted"
)

// An Event describes one committed mutation.
type Event struct {
	Type      string         `json:"type"`
	Item      *model.Item    `json:"item,omitempty"`
	ItemID    string         `json:"itemId,omitempty"`
	Comment   *model.Comment `json:"comment,omitempty"`
	CommentID string         `json:"commentId,omitempty"`
}

// ItemCreated returns the event broadcasted after an item creation.
func ItemCreated(item *model.Item) Event {
	return Event{Type: EventItemCreated, Item: item}
}

// ItemUpdated returns the event broadcasted after an item mutation.
// It carries the full post-mutation state.
func ItemUpdated(item *model.Item) Event {
	return Event{Type: EventItemUpdated, Item: item}
}

// ItemDeleted returns the event broadcasted after an item deletion.
func ItemDeleted(id string) Event {
	return Event{Type: EventItemDeleted, ItemID: id}
}

// CommentAdded returns the event broadcasted after a comment is appended to an item.
func CommentAdded(itemID string, comment *model.Comment) Event {
	return Event{Type: EventCommentAdded, ItemID: itemID, Comment: comment}
}

// CommentDeleted returns the event broadcasted after a comment removal.
func CommentDeleted(itemID, commentID string) Event {
	return Event{Type: EventCommentDeleted, ItemID: itemID, CommentID: commentID}
}

// subscriberBuffer absorbs bursts before a slow subscriber starts losing events.
const subscriberBuffer = 32

type (
	// A Hub registers subscribers and fans out events to all of them.
	// Publish order matches mutation commit order for a single instance.
	Hub struct {
		mu   sync.RWMutex
		subs map[*Subscriber]struct{}
	}

	// A Subscriber is one registered event consumer.
	Subscriber struct {
		hub  *Hub
		ch   chan Event
		once sync.Once
	}
)

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new subscriber.
// The caller must Close it to release the registration.
func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{hub: h, ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Publish sends the event to every registered subscriber without blocking.
// Events to subscribers with a full buffer are dropped.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		select {
		case s.ch <- event:
		default:
			logrus.WithField("type", event.Type).Warn("broadcast: dropping event for slow subscriber")
		}
	}
}

// Len returns the number of registered subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Events returns the channel on which events are delivered.
// It is closed when the subscriber is closed.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Close unregisters the subscriber and closes its channel. It is idempotent.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}
