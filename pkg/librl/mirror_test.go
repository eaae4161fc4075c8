package librl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/virada/rolelist/pkg/librl"
)

func item(id, title, category string) *librl.Item {
	now := time.Now().UTC()
	return &librl.Item{
		ID:        id,
		Title:     title,
		Category:  category,
		Comments:  []librl.Comment{},
		CreatedAt: &now,
	}
}

func TestMirrorLoad(t *testing.T) {
	mirror := librl.NewMirror()
	mirror.Load([]*librl.Item{
		item("a", "Posto 9", librl.CategoryBeach),
		item("b", "Lapa", librl.CategoryNight),
	})

	assert.Equal(t, 2, mirror.Len())

	// Reload replaces the whole collection.
	mirror.Load([]*librl.Item{item("c", "Feijoada", librl.CategoryFood)})
	assert.Equal(t, 1, mirror.Len())
	_, ok := mirror.Item("a")
	assert.False(t, ok)
}

func TestMirrorItemCreated(t *testing.T) {
	mirror := librl.NewMirror()

	event := librl.Event{Type: librl.EventItemCreated, Item: item("a", "Posto 9", librl.CategoryBeach)}
	mirror.Apply(event)
	assert.Equal(t, 1, mirror.Len())

	// Duplicate delivery is idempotent.
	mirror.Apply(event)
	assert.Equal(t, 1, mirror.Len())
}

func TestMirrorItemUpdated(t *testing.T) {
	mirror := librl.NewMirror()
	mirror.Load([]*librl.Item{item("a", "Posto 9", librl.CategoryBeach)})

	updated := item("a", "Posto 9", librl.CategoryBeach)
	updated.Done = true
	mirror.Apply(librl.Event{Type: librl.EventItemUpdated, Item: updated})

	mirrored, ok := mirror.Item("a")
	require.True(t, ok)
	assert.True(t, mirrored.Done)

	// Update for a concurrently deleted item is a no-op.
	mirror.Apply(librl.Event{Type: librl.EventItemUpdated, Item: item("gone", "Ghost", librl.CategoryTour)})
	assert.Equal(t, 1, mirror.Len())
}

func TestMirrorItemDeleted(t *testing.T) {
	mirror := librl.NewMirror()
	mirror.Load([]*librl.Item{item("a", "Posto 9", librl.CategoryBeach)})

	mirror.Apply(librl.Event{Type: librl.EventItemDeleted, ItemID: "a"})
	assert.Equal(t, 0, mirror.Len())

	// Already absent id is a no-op.
	mirror.Apply(librl.Event{Type: librl.EventItemDeleted, ItemID: "a"})
	assert.Equal(t, 0, mirror.Len())
}

func TestMirrorComments(t *testing.T) {
	mirror := librl.NewMirror()
	mirror.Load([]*librl.Item{item("a", "Posto 9", librl.CategoryBeach)})

	added := librl.Event{
		Type:    librl.EventCommentAdded,
		ItemID:  "a",
		Comment: &librl.Comment{ID: "c1", Text: "sunset spot", CreatedAt: time.Now().UTC()},
	}
	mirror.Apply(added)
	mirror.Apply(added) // duplicate delivery

	mirrored, ok := mirror.Item("a")
	require.True(t, ok)
	require.Len(t, mirrored.Comments, 1)
	assert.Equal(t, "sunset spot", mirrored.Comments[0].Text)

	// Comment for a deleted item is a no-op.
	mirror.Apply(librl.Event{
		Type:    librl.EventCommentAdded,
		ItemID:  "gone",
		Comment: &librl.Comment{ID: "c2", Text: "too late"},
	})

	mirror.Apply(librl.Event{Type: librl.EventCommentDeleted, ItemID: "a", CommentID: "c1"})
	mirrored, _ = mirror.Item("a")
	assert.Empty(t, mirrored.Comments)

	// Unknown comment id is a no-op.
	mirror.Apply(librl.Event{Type: librl.EventCommentDeleted, ItemID: "a", CommentID: "c1"})
}

func TestMirrorItemsDisplayOrder(t *testing.T) {
	jan05 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	later := item("later", "Later", librl.CategoryTour)
	later.Date = &jan10
	sooner := item("sooner", "Sooner", librl.CategoryNight)
	sooner.Date = &jan05
	whenever := item("whenever", "Whenever", librl.CategoryBeach)

	mirror := librl.NewMirror()
	mirror.Load([]*librl.Item{later, whenever, sooner})

	items := mirror.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "sooner", items[0].ID)
	assert.Equal(t, "later", items[1].ID)
	assert.Equal(t, "whenever", items[2].ID)
}

func TestMirrorOnChange(t *testing.T) {
	mirror := librl.NewMirror()

	changed := make(chan struct{}, 1)
	mirror.SetOnChange(func() { changed <- struct{}{} })

	// A burst of events coalesces into a single notification.
	for i := 0; i < 5; i++ {
		mirror.Apply(librl.Event{Type: librl.EventItemCreated, Item: item("a", "Posto 9", librl.CategoryBeach)})
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	// The no-op duplicates did not queue extra notifications.
	select {
	case <-changed:
		t.Fatal("expected a single coalesced notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestMirrorIsolation(t *testing.T) {
	mirror := librl.NewMirror()
	mirror.Load([]*librl.Item{item("a", "Posto 9", librl.CategoryBeach)})

	// Mutating a returned copy must not leak into the mirror.
	mirrored, _ := mirror.Item("a")
	mirrored.Title = "hacked"
	mirrored.Comments = append(mirrored.Comments, librl.Comment{ID: "x"})

	fresh, _ := mirror.Item("a")
	assert.Equal(t, "Posto 9", fresh.Title)
	assert.Empty(t, fresh.Comments)
}
