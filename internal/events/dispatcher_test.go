package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, deleted []Event
	d.Subscribe(EventItemCreated, func(_ context.Context, e Event) error {
		created = append(created, e)
		return nil
	})
	d.Subscribe(EventItemDeleted, func(_ context.Context, e Event) error {
		deleted = append(deleted, e)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{ID: "e1", Type: EventItemCreated, ItemID: 7}))

	require.Len(t, created, 1)
	assert.Equal(t, int64(7), created[0].ItemID)
	assert.Empty(t, deleted)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventItemStatusChanged, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventItemStatusChanged, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventItemStatusChanged}))
	assert.True(t, secondCalled)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventItemAssigned}))
}
