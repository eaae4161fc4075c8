package service_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/virada/rolelist/internal/broadcast"
	"github.com/virada/rolelist/internal/database"
	"github.com/virada/rolelist/internal/model"
	"github.com/virada/rolelist/internal/rlerror"
	"github.com/virada/rolelist/internal/server/service"
)

func TestItemServiceCreateValidation(t *testing.T) {
	items, hub, cleanup := setup()
	defer cleanup()

	sub := hub.Subscribe()
	defer sub.Close()

	for _, params := range []service.CreateItemParams{
		{Title: "", Category: "beach"},
		{Title: "   ", Category: "beach"},
		{Title: "Sunset", Category: ""},
		{Title: "Sunset", Category: "museum"},
	} {
		_, err := items.Create(params)
		require.Error(t, err)
		assert.Equal(t, 400, rlerror.StatusCode(err))
	}

	// Failed mutations never create a record nor broadcast.
	all, err := items.List("")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, sub.Events())
}

func TestItemServiceCreatePublishesOnce(t *testing.T) {
	items, hub, cleanup := setup()
	defer cleanup()

	sub := hub.Subscribe()
	defer sub.Close()

	item, err := items.Create(service.CreateItemParams{Title: " Sunset at Arpoador ", Category: "beach"})
	require.NoError(t, err)
	assert.Equal(t, "Sunset at Arpoador", item.Title)
	assert.NotEmpty(t, item.ID)
	assert.NotNil(t, item.CreatedAt)

	assert.Len(t, sub.Events(), 1)
	event := <-sub.Events()
	assert.Equal(t, broadcast.EventItemCreated, event.Type)
	assert.Equal(t, item.ID, event.Item.ID)
}

func TestItemServiceToggleRoundTrip(t *testing.T) {
	items, _, cleanup := setup()
	defer cleanup()

	item, err := items.Create(service.CreateItemParams{Title: "Pão de Açúcar", Category: "tour"})
	require.NoError(t, err)

	up, err := items.SetDone(item.ID, true)
	require.NoError(t, err)
	assert.True(t, up.Done)

	down, err := items.SetDone(item.ID, false)
	require.NoError(t, err)
	assert.False(t, down.Done)
	assert.Equal(t, item.ID, down.ID)
	assert.Equal(t, item.CreatedAt.UTC(), down.CreatedAt.UTC())
}

func TestItemServiceDeleteCascade(t *testing.T) {
	items, hub, cleanup := setup()
	defer cleanup()

	item, err := items.Create(service.CreateItemParams{Title: "Escadaria Selarón", Category: "tour"})
	require.NoError(t, err)

	_, err = items.AddComment(item.ID, "bring water")
	require.NoError(t, err)
	_, err = items.AddComment(item.ID, "crowded at noon")
	require.NoError(t, err)

	sub := hub.Subscribe()
	defer sub.Close()

	require.NoError(t, err)
	require.NoError(t, items.Delete(item.ID))

	event := <-sub.Events()
	assert.Equal(t, broadcast.EventItemDeleted, event.Type)
	assert.Equal(t, item.ID, event.ItemID)

	_, err = items.Get(item.ID)
	assert.Equal(t, 404, rlerror.StatusCode(err))

	// No orphan comments remain queryable.
	all, err := items.List("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestItemServiceCommentNotFound(t *testing.T) {
	items, hub, cleanup := setup()
	defer cleanup()

	sub := hub.Subscribe()
	defer sub.Close()

	_, err := items.AddComment("42cc2842-30c6-4d3d-a321-2f63d21ef523", "hello")
	assert.Equal(t, 404, rlerror.StatusCode(err))

	item, err := items.Create(service.CreateItemParams{Title: "Posto 9", Category: "beach"})
	require.NoError(t, err)
	_, err = items.AddComment(item.ID, "sunset spot")
	require.NoError(t, err)

	_, err = items.DeleteComment(item.ID, "42cc2842-30c6-4d3d-a321-2f63d21ef523")
	assert.Equal(t, 404, rlerror.StatusCode(err))

	fetched, err := items.Get(item.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Comments, 1)
}

func TestSortForDisplay(t *testing.T) {
	jan05 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	items := []*model.Item{
		{Title: "undated night", Category: model.CategoryNight},
		{Title: "later", Category: model.CategoryTour, Date: &jan10},
		{Title: "undated beach", Category: model.CategoryBeach},
		{Title: "sooner", Category: model.CategoryNight, Date: &jan05},
		{Title: "same day food", Category: model.CategoryFood, Date: &jan10},
	}

	service.SortForDisplay(items)

	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"sooner", "same day food", "later", "undated beach", "undated night"}, titles)
}

func setup() (*service.ItemService, *broadcast.Hub, func()) {
	tmpfile, err := os.CreateTemp("", "rolelist.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	hub := broadcast.NewHub()
	return service.NewItem(db, hub), hub, func() {
		db.Close()
		os.RemoveAll(filename)
	}
}
