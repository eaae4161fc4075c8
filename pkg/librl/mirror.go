package librl

import (
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// A Mirror is an in-memory copy of the item collection, kept consistent via
// an initial full fetch plus broadcast events. Every patch is idempotent and
// keyed by id, so duplicate or late deliveries are harmless.
type Mirror struct {
	mu       sync.RWMutex
	items    map[string]*Item
	onChange func()
	debounce func(func())
}

// NewMirror returns an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{
		items:    make(map[string]*Item),
		debounce: debounce.New(100 * time.Millisecond),
	}
}

// SetOnChange registers a callback invoked after the mirror content changed.
// Bursts of events are coalesced into a single invocation.
func (m *Mirror) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Load replaces the whole collection with the given items.
// Used for the initial fetch and after a reconnection.
func (m *Mirror) Load(items []*Item) {
	m.mu.Lock()
	m.items = make(map[string]*Item, len(items))
	for _, item := range items {
		m.items[item.ID] = item.Clone()
	}
	m.mu.Unlock()

	m.notify()
}

// Apply patches the mirror with one broadcast event.
func (m *Mirror) Apply(event Event) {
	m.mu.Lock()
	changed := m.apply(event)
	m.mu.Unlock()

	if changed {
		m.notify()
	}
}

func (m *Mirror) apply(event Event) bool {
	switch event.Type {
	case EventItemCreated:
		if event.Item == nil {
			return false
		}
		if _, ok := m.items[event.Item.ID]; ok {
			return false // duplicate delivery
		}
		m.items[event.Item.ID] = event.Item.Clone()

	case EventItemUpdated:
		if event.Item == nil {
			return false
		}
		if _, ok := m.items[event.Item.ID]; !ok {
			return false // deleted concurrently
		}
		m.items[event.Item.ID] = event.Item.Clone()

	case EventItemDeleted:
		if _, ok := m.items[event.ItemID]; !ok {
			return false
		}
		delete(m.items, event.ItemID)

	case EventCommentAdded:
		item, ok := m.items[event.ItemID]
		if !ok || event.Comment == nil {
			return false
		}
		if _, ok := item.Comment(event.Comment.ID); ok {
			return false // duplicate delivery
		}
		item.Comments = append(item.Comments, *event.Comment)

	case EventCommentDeleted:
		item, ok := m.items[event.ItemID]
		if !ok {
			return false
		}
		for i, comment := range item.Comments {
			if comment.ID == event.CommentID {
				item.Comments = append(item.Comments[:i], item.Comments[i+1:]...)
				return true
			}
		}
		return false

	default:
		return false
	}
	return true
}

// Item returns a copy of the item with the given id.
func (m *Mirror) Item(id string) (*Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

// Items returns a display-ordered copy of the collection.
func (m *Mirror) Items() []*Item {
	m.mu.RLock()
	items := make([]*Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item.Clone())
	}
	m.mu.RUnlock()

	SortForDisplay(items)
	return items
}

// Len returns the number of mirrored items.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Mirror) notify() {
	m.mu.RLock()
	fn := m.onChange
	m.mu.RUnlock()

	if fn != nil {
		m.debounce(fn)
	}
}

// SortForDisplay orders items the same way the server lists them: both
// dated, ascending by date; a dated item before an undated one; otherwise
// lexicographic category.
func SortForDisplay(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date) {
			return a.Date.Before(*b.Date)
		}
		if (a.Date != nil) != (b.Date != nil) {
			return a.Date != nil
		}
		return a.Category < b.Category
	})
}
