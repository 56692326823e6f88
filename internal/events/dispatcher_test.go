package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/testutil"
)

func testEvent(id model.PartyID) model.Event {
	return model.NewEvent(model.EventRosterChanged, id, "u1",
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		model.RosterChangedPayload{UserID: "u1", Role: model.RoleMember})
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	d := NewDispatcher(testutil.NopLogger())
	defer d.Close()

	a := d.Subscribe("a", 4)
	b := d.Subscribe("b", 4)
	require.Equal(t, 2, d.SubscriberCount())

	d.Publish(testEvent(1))

	for _, sub := range []*Subscription{a, b} {
		select {
		case ev := <-sub.Events():
			assert.Equal(t, model.PartyID(1), ev.PartyID)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive the event", sub.Name())
		}
	}
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	d := NewDispatcher(testutil.NopLogger())
	defer d.Close()

	sub := d.Subscribe("slow", 2)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.Publish(testEvent(model.PartyID(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}

	// The first two fit the buffer; the rest were dropped
	assert.Len(t, sub.Events(), 2)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	d := NewDispatcher(testutil.NopLogger())
	defer d.Close()

	sub := d.Subscribe("a", 1)
	d.Unsubscribe(sub)
	assert.Equal(t, 0, d.SubscriberCount())

	_, ok := <-sub.Events()
	assert.False(t, ok)

	// Double unsubscribe is a harmless no-op
	d.Unsubscribe(sub)
}

func TestCloseShutsDownSubscribers(t *testing.T) {
	d := NewDispatcher(testutil.NopLogger())
	sub := d.Subscribe("a", 1)

	d.Close()

	_, ok := <-sub.Events()
	require.False(t, ok)

	// Publish and Subscribe after Close are safe
	d.Publish(testEvent(1))
	late := d.Subscribe("late", 1)
	_, ok = <-late.Events()
	assert.False(t, ok)
	d.Close()
}

func TestConcurrentPublish(t *testing.T) {
	d := NewDispatcher(testutil.NopLogger())
	defer d.Close()

	sub := d.Subscribe("a", 128)
	for i := 0; i < 8; i++ {
		go func(i int) {
			for j := 0; j < 8; j++ {
				d.Publish(testEvent(model.PartyID(i)))
			}
		}(i)
	}

	for i := 0; i < 64; i++ {
		select {
		case <-sub.Events():
		case <-time.After(time.Second):
			t.Fatalf("received %d of 64 events", i)
		}
	}
}
