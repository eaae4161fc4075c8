package broadcast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/virada/rolelist/internal/broadcast"
	"github.com/virada/rolelist/internal/model"
)

func TestHubFanOut(t *testing.T) {
	hub := broadcast.NewHub()

	s1 := hub.Subscribe()
	defer s1.Close()
	s2 := hub.Subscribe()
	defer s2.Close()

	assert.Equal(t, 2, hub.Len())

	item := &model.Item{Title: "Sunset at Arpoador", Category: model.CategoryBeach}
	item.SetID("d989ccc9-15c6-475e-839b-1690bd07d073")
	hub.Publish(broadcast.ItemCreated(item))

	for _, s := range []*broadcast.Subscriber{s1, s2} {
		event := <-s.Events()
		assert.Equal(t, broadcast.EventItemCreated, event.Type)
		assert.Equal(t, item.ID, event.Item.ID)
	}
}

func TestHubPublishOrder(t *testing.T) {
	hub := broadcast.NewHub()

	s := hub.Subscribe()
	defer s.Close()

	hub.Publish(broadcast.ItemDeleted("one"))
	hub.Publish(broadcast.ItemDeleted("two"))
	hub.Publish(broadcast.ItemDeleted("three"))

	assert.Equal(t, "one", (<-s.Events()).ItemID)
	assert.Equal(t, "two", (<-s.Events()).ItemID)
	assert.Equal(t, "three", (<-s.Events()).ItemID)
}

func TestHubSlowSubscriber(t *testing.T) {
	hub := broadcast.NewHub()

	s := hub.Subscribe()
	defer s.Close()

	// Overflow the buffer; extra events are dropped, Publish never blocks.
	for i := 0; i < 100; i++ {
		hub.Publish(broadcast.ItemDeleted("flood"))
	}

	received := 0
	for {
		select {
		case <-s.Events():
			received++
			continue
		default:
		}
		break
	}
	assert.Greater(t, received, 0)
	assert.Less(t, received, 100)
}

func TestSubscriberClose(t *testing.T) {
	hub := broadcast.NewHub()

	s := hub.Subscribe()
	s.Close()
	s.Close() // idempotent

	assert.Equal(t, 0, hub.Len())

	// Publishing after Close must not panic nor deliver.
	hub.Publish(broadcast.ItemDeleted("gone"))

	_, open := <-s.Events()
	assert.False(t, open)
}
