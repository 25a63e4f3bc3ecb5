package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync-dev/tasksync/models"
)

func TestBroadcaster_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	first := b.Subscribe()
	second := b.Subscribe()

	b.Publish(models.SyncStartedEvent())

	assert.Equal(t, models.EventSyncStarted, (<-first.C()).Kind)
	assert.Equal(t, models.EventSyncStarted, (<-second.C()).Kind)
}

func TestBroadcaster_SubscriptionIDsAreUnique(t *testing.T) {
	b := NewBroadcaster()

	first := b.Subscribe()
	second := b.Subscribe()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, b.Len())
}

func TestBroadcaster_UnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()

	b.Unsubscribe(sub.ID)
	b.Publish(models.SyncStartedEvent())

	// channel is closed, not fed
	_, open := <-sub.C()
	assert.False(t, open)
	assert.Equal(t, 0, b.Len())
}

func TestBroadcaster_UnsubscribeUnknownID(t *testing.T) {
	b := NewBroadcaster()

	assert.NotPanics(t, func() { b.Unsubscribe("sub-999") })
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()

	sub.Close()
	assert.NotPanics(t, sub.Close)

	select {
	case <-sub.Done():
	default:
		t.Fatal("Done channel not closed after Close")
	}
}

func TestBroadcaster_SlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()

	// overflow the buffer without reading
	for i := 0; i < defaultEventBuffer+5; i++ {
		b.Publish(models.SyncCompletedEvent(i))
	}

	received := 0
	for {
		select {
		case <-sub.C():
			received++
			continue
		default:
		}
		break
	}

	assert.Equal(t, defaultEventBuffer, received)
}

func TestBroadcaster_EventPayloadSurvivesDelivery(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()

	records := []models.Task{{ID: "a1", Title: "milk"}}
	b.Publish(models.TasksSyncedEvent(records))

	got := <-sub.C()
	require.Equal(t, models.EventTasksSynced, got.Kind)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "a1", got.Records[0].ID)
}
