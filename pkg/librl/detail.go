package librl

import "sync"

// DetailState is the lifecycle state of a DetailView.
type DetailState int

// DetailView states: closed -> loading -> open -> closed.
const (
	DetailClosed DetailState = iota
	DetailLoading
	DetailOpen
)

// A DetailView tracks the single item a client currently inspects.
//
// Comment events that arrive while the item is still being fetched are
// queued and replayed once the fetch completes (queue-and-replay). Replay is
// safe because comment patches are keyed by comment id: a comment already
// present in the fetched item is not appended twice.
type DetailView struct {
	mu      sync.Mutex
	state   DetailState
	id      string
	item    *Item
	pending []Event
}

// NewDetailView returns a closed view.
func NewDetailView() *DetailView {
	return &DetailView{}
}

// Opening transitions to loading for the given item id.
// Any previously shown item is discarded.
func (v *DetailView) Opening(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = DetailLoading
	v.id = id
	v.item = nil
	v.pending = nil
}

// Opened transitions to open with the fetched item and replays the events
// queued during the fetch.
func (v *DetailView) Opened(item *Item) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != DetailLoading || item == nil || item.ID != v.id {
		return
	}

	v.state = DetailOpen
	v.item = item.Clone()
	for _, event := range v.pending {
		v.applyLocked(event)
	}
	v.pending = nil
}

// Close transitions to closed and discards any queued events.
func (v *DetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = DetailClosed
	v.id = ""
	v.item = nil
	v.pending = nil
}

// State returns the current lifecycle state.
func (v *DetailView) State() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Item returns a copy of the shown item, or false when the view is not open.
func (v *DetailView) Item() (*Item, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != DetailOpen {
		return nil, false
	}
	return v.item.Clone(), true
}

// Apply patches the view with one broadcast event.
// Events targeting another item are ignored in every state.
func (v *DetailView) Apply(event Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == DetailClosed || event.TargetID() != v.id {
		return
	}

	if v.state == DetailLoading {
		switch event.Type {
		case EventCommentAdded, EventCommentDeleted:
			v.pending = append(v.pending, event)
		case EventItemDeleted:
			// The item vanished mid-fetch, give up on it.
			v.state = DetailClosed
			v.id = ""
			v.pending = nil
		}
		return
	}

	v.applyLocked(event)
}

func (v *DetailView) applyLocked(event Event) {
	switch event.Type {
	case EventItemUpdated:
		if event.Item != nil {
			v.item = event.Item.Clone()
		}

	case EventItemDeleted:
		v.state = DetailClosed
		v.id = ""
		v.item = nil

	case EventCommentAdded:
		if event.Comment == nil {
			return
		}
		if _, ok := v.item.Comment(event.Comment.ID); ok {
			return
		}
		v.item.Comments = append(v.item.Comments, *event.Comment)

	case EventCommentDeleted:
		for i, comment := range v.item.Comments {
			if comment.ID == event.CommentID {
				v.item.Comments = append(v.item.Comments[:i], v.item.Comments[i+1:]...)
				return
			}
		}
	}
}
