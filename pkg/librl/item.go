package librl

import "time"

// All known categories.
const (
	CategoryBeach = "beach"
	CategoryNight = "night"
	CategoryFood  = "food"
	CategoryTour  = "tour"
)

type (
	// An Item is a single planned activity entry.
	Item struct {
		ID           string     `json:"id"`
		Title        string     `json:"title"`
		Location     string     `json:"location"`
		Category     string     `json:"category"`
		Date         *time.Time `json:"date"`
		Time         string     `json:"time"`
		Neighborhood string     `json:"neighborhood"`
		Done         bool       `json:"done"`
		Comments     []Comment  `json:"comments"`
		CreatedAt    *time.Time `json:"createdAt"`
		UpdatedAt    *time.Time `json:"updatedAt"`
	}

	// A Comment is a timestamped note attached to exactly one item.
	Comment struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// CreateItem holds the fields sent when creating an item.
	CreateItem struct {
		Title        string `json:"title"`
		Location     string `json:"location,omitempty"`
		Category     string `json:"category"`
		Date         string `json:"date,omitempty"`
		Time         string `json:"time,omitempty"`
		Neighborhood string `json:"neighborhood,omitempty"`
	}
)

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	clone := *i
	clone.Comments = append([]Comment(nil), i.Comments...)
	return &clone
}

// Comment returns the comment with the given id.
func (i *Item) Comment(id string) (Comment, bool) {
	for _, comment := range i.Comments {
		if comment.ID == id {
			return comment, true
		}
	}
	return Comment{}, false
}
