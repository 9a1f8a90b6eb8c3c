package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID string
}

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub[row]()

	ch, cancel := hub.Subscribe("tenant-a")
	defer cancel()
	require.Equal(t, 1, hub.Subscribers("tenant-a"))

	hub.Publish("tenant-a", ChangeEvent[row]{EventType: EventInsert, New: &row{ID: "r1"}})

	select {
	case ev := <-ch:
		assert.Equal(t, EventInsert, ev.EventType)
		require.NotNil(t, ev.New)
		assert.Equal(t, "r1", ev.New.ID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHubTenantIsolation(t *testing.T) {
	hub := NewHub[row]()

	chA, cancelA := hub.Subscribe("tenant-a")
	defer cancelA()
	_, cancelB := hub.Subscribe("tenant-b")
	defer cancelB()

	hub.Publish("tenant-b", ChangeEvent[row]{EventType: EventDelete, Old: &row{ID: "r1"}})

	select {
	case ev := <-chA:
		t.Fatalf("tenant-a received tenant-b's event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub[row]()

	ch, cancel := hub.Subscribe("tenant-a")
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers("tenant-a"))

	// A second cancel must not panic.
	cancel()

	// Publishing to a tenant with no subscribers is a no-op.
	hub.Publish("tenant-a", ChangeEvent[row]{EventType: EventInsert, New: &row{ID: "r1"}})
}

func TestHubSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub[row]()

	_, cancel := hub.Subscribe("tenant-a")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overfill the subscriber buffer without ever reading.
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish("tenant-a", ChangeEvent[row]{EventType: EventInsert, New: &row{ID: "r"}})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub[row]()

	ch1, cancel1 := hub.Subscribe("tenant-a")
	defer cancel1()
	ch2, cancel2 := hub.Subscribe("tenant-a")
	defer cancel2()

	hub.Publish("tenant-a", ChangeEvent[row]{EventType: EventUpdate, New: &row{ID: "r1"}})

	for _, ch := range []<-chan ChangeEvent[row]{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, EventUpdate, ev.EventType)
		case <-time.After(time.Second):
			t.Fatal("fan-out missed a subscriber")
		}
	}
}
