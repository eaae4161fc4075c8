package librl

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// Event types pushed by the server, one per committed mutation.
const (
	EventItemCreated    = "item:created"
	EventItemUpdated    = "item:updated"
	EventItemDeleted    = "item:deleted"
	EventCommentAdded   = "item:comment-added"
	EventCommentDeleted = "item:comment-deleted"
)

// An Event describes one committed mutation pushed by the server.
type Event struct {
	Type      string   `json:"type"`
	Item      *Item    `json:"item,omitempty"`
	ItemID    string   `json:"itemId,omitempty"`
	Comment   *Comment `json:"comment,omitempty"`
	CommentID string   `json:"commentId,omitempty"`
}

var knownEvents = map[string]bool{
	EventItemCreated:    true,
	EventItemUpdated:    true,
	EventItemDeleted:    true,
	EventCommentAdded:   true,
	EventCommentDeleted: true,
}

// ParseEvent decodes one wire message into an Event.
// Messages with an unknown type discriminator are rejected before the full
// payload decode.
func ParseEvent(data []byte) (Event, error) {
	var event Event

	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return event, errors.Wrap(err, "could not parse event")
	}
	kind := string(v.GetStringBytes("type"))
	if !knownEvents[kind] {
		return event, errors.Errorf("unknown event type %q", kind)
	}

	err = json.Unmarshal(data, &event)
	return event, errors.Wrap(err, "could not parse event payload")
}

// TargetID returns the id of the item the event applies to.
func (e Event) TargetID() string {
	if e.Item != nil {
		return e.Item.ID
	}
	return e.ItemID
}
