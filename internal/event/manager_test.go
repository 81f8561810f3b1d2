package event_test

import (
	"testing"

	"github.com/gallerix/artwork-marketplace/internal/event"
	"github.com/stretchr/testify/assert"
)

func TestEmitEventReachesMatchingListeners(t *testing.T) {
	var listed []interface{}
	var sold []interface{}

	event.AddEventListener(event.ArtworkListedEvent, func(msg interface{}) {
		listed = append(listed, msg)
	})
	event.AddEventListener(event.ArtworkSoldEvent, func(msg interface{}) {
		sold = append(sold, msg)
	})

	event.EmitEvent(event.ArtworkListedEvent, "first")
	event.EmitEvent(event.ArtworkListedEvent, "second")
	event.EmitEvent(event.PriceUpdatedEvent, "ignored")

	assert.Equal(t, []interface{}{"first", "second"}, listed)
	assert.Empty(t, sold)
}

func TestEmitEventPreservesOrder(t *testing.T) {
	var order []int

	event.AddEventListener(event.BatchListedEvent, func(msg interface{}) {
		order = append(order, msg.(int))
	})

	for i := 0; i < 10; i++ {
		event.EmitEvent(event.BatchListedEvent, i)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestEmitEventWithoutListeners(t *testing.T) {
	assert.NotPanics(t, func() {
		event.EmitEvent(event.MaxPriceUpdatedEvent, "nobody listening")
	})
}
