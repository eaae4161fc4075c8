package service

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/virada/rolelist/internal/broadcast"
	"github.com/virada/rolelist/internal/database"
	"github.com/virada/rolelist/internal/model"
	"github.com/virada/rolelist/internal/rlerror"
)

// An ItemService orchestrates item mutations: it validates external input,
// applies the change to the store and publishes exactly one event per
// successful mutation. Failed mutations publish nothing.
type ItemService struct {
	db  database.Client
	hub *broadcast.Hub
}

// NewItem instantiates a new ItemService.
func NewItem(db database.Client, hub *broadcast.Hub) *ItemService {
	return &ItemService{db: db, hub: hub}
}

// Create validates the given fields and persists a new item.
func (s *ItemService) Create(params CreateItemParams) (*model.Item, error) {
	title := strings.TrimSpace(params.Title)
	category := model.Category(strings.TrimSpace(params.Category))
	if title == "" || !category.Valid() {
		return nil, rlerror.NewValidation("Title and category are required")
	}

	var date *time.Time
	if d := strings.TrimSpace(params.Date); d != "" {
		t, err := dateparse.ParseAny(d)
		if err != nil {
			return nil, rlerror.NewValidation("Invalid date")
		}
		date = &t
	}

	item := &model.Item{
		Title:        title,
		Location:     strings.TrimSpace(params.Location),
		Category:     category,
		Date:         date,
		Time:         strings.TrimSpace(params.Time),
		Neighborhood: strings.TrimSpace(params.Neighborhood),
		Done:         false,
		Comments:     []model.Comment{},
	}

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "create item")
	}

	s.hub.Publish(broadcast.ItemCreated(item))
	return item, nil
}

// Get returns the item with the given id, comments included.
func (s *ItemService) Get(id string) (*model.Item, error) {
	item, err := s.db.FindItem(id)
	if s.db.IsNotFound(err) {
		return nil, rlerror.NewNotFound("Item not found")
	}
	return item, errors.Wrap(err, "get item")
}

// List returns all items in display order: scheduled items first, ascending
// by date, unscheduled ones after, ties broken by category. An empty
// category means no filtering.
func (s *ItemService) List(category string) ([]*model.Item, error) {
	filter := model.Category(category)
	if category != "" && !filter.Valid() {
		return nil, rlerror.NewValidation("Unknown category")
	}

	items, err := s.db.FindItems(filter)
	if err != nil {
		return nil, errors.Wrap(err, "list items")
	}

	SortForDisplay(items)
	return items, nil
}

// SetDone sets the done flag of the item with the given id.
func (s *ItemService) SetDone(id string, done bool) (*model.Item, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Done = done
	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "update item")
	}

	s.hub.Publish(broadcast.ItemUpdated(item))
	return item, nil
}

// Delete removes the item with the given id and all its comments.
func (s *ItemService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.db.DeleteItem(id); err != nil {
		return errors.Wrap(err, "delete item")
	}

	s.hub.Publish(broadcast.ItemDeleted(id))
	return nil
}

// AddComment appends a comment to the item with the given id and returns the
// updated item.
func (s *ItemService) AddComment(id, text string) (*model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, rlerror.NewValidation("Comment text is required")
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:        uuid.Must(uuid.NewV4()).String(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	item.Comments = append(item.Comments, comment)

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "add comment")
	}

	s.hub.Publish(broadcast.CommentAdded(item.ID, &comment))
	return item, nil
}

// DeleteComment removes the given comment from the item and returns the
// updated item. Remaining comments keep their insertion order.
func (s *ItemService) DeleteComment(id, commentID string) (*model.Item, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, comment := range item.Comments {
		if comment.ID == commentID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, rlerror.NewNotFound("Comment not found")
	}

	item.Comments = append(item.Comments[:index], item.Comments[index+1:]...)
	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "delete comment")
	}

	s.hub.Publish(broadcast.CommentDeleted(item.ID, commentID))
	return item, nil
}

// SortForDisplay orders items for listing: both dated, ascending by date;
// a dated item before an undated one; otherwise lexicographic category.
// Distinct from the stored order (creation date descending).
func SortForDisplay(items []*model.Item) {
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
