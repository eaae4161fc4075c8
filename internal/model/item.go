package model

import "time"

// A Category classifies an item. The set is closed; presentation metadata
// (icons, gradients) lives entirely in the clients.
type Category string

// All known categories.
const (
	CategoryBeach Category = "beach"
	CategoryNight Category = "night"
	CategoryFood  Category = "food"
	CategoryTour  Category = "tour"
)

// CategoryLabels maps a category to its display label.
var CategoryLabels = map[Category]string{
	CategoryBeach: "Praia & Sol",
	CategoryNight: "Night Life",
	CategoryFood:  "Gastronomia",
	CategoryTour:  "Turismo",
}

// Valid returns true if the category belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

type (
	// An Item represents a database record and the rendered API response.
	// Comments are embedded; the item document is the unit of atomic update.
	Item struct {
		Base `msgpack:",inline" storm:"inline"`

		Title        string     `json:"title"        msgpack:"title"`
		Location     string     `json:"location"     msgpack:"location"`
		Category     Category   `json:"category"     msgpack:"category" storm:"index"`
		Date         *time.Time `json:"date"         msgpack:"date"`
		Time         string     `json:"time"         msgpack:"time"`
		Neighborhood string     `json:"neighborhood" msgpack:"neighborhood"`
		Done         bool       `json:"done"         msgpack:"done"`
		Comments     []Comment  `json:"comments"     msgpack:"comments"`
	}

	// A Comment is a timestamped note owned by exactly one item.
	// It has no lifecycle of its own and is destroyed with its parent.
	Comment struct {
		ID        string    `json:"id"        msgpack:"id"`
		Text      string    `json:"text"      msgpack:"text"`
		CreatedAt time.Time `json:"createdAt" msgpack:"created_at"`
	}
)
