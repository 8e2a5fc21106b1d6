package host

import (
	"nodelete/internal/models"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DispatchInSubscriptionOrder(t *testing.T) {
	d := NewDispatcher()
	var got []string
	d.Subscribe(models.EventMessageDelete, func(models.Event) { got = append(got, "a") })
	d.Subscribe(models.EventMessageDelete, func(models.Event) { got = append(got, "b") })
	d.Subscribe(models.EventMessageUpdate, func(models.Event) { got = append(got, "other") })

	n := d.Dispatch(models.Event{Type: models.EventMessageDelete})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	id := d.Subscribe(models.EventMessageDelete, func(models.Event) { calls++ })
	d.Subscribe(models.EventMessageDelete, func(models.Event) {})

	assert.True(t, d.Unsubscribe(models.EventMessageDelete, id))
	assert.False(t, d.Unsubscribe(models.EventMessageDelete, id))
	assert.False(t, d.Unsubscribe(models.EventMessageUpdate, id))

	d.Dispatch(models.Event{Type: models.EventMessageDelete})
	assert.Zero(t, calls)
	assert.Equal(t, 1, d.SubscriberCount())
}

func TestDispatcher_HandlerMayUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var id models.SubscriptionID
	calls := 0
	id = d.Subscribe(models.EventMessageDelete, func(models.Event) {
		calls++
		d.Unsubscribe(models.EventMessageDelete, id)
	})

	d.Dispatch(models.Event{Type: models.EventMessageDelete})
	d.Dispatch(models.Event{Type: models.EventMessageDelete})

	assert.Equal(t, 1, calls)
	assert.Zero(t, d.SubscriberCount())
}

func TestDispatcher_HandlersNeverOverlap(t *testing.T) {
	d := NewDispatcher()
	var mu sync.Mutex
	running, maxRunning := 0, 0
	d.Subscribe(models.EventMessageDelete, func(models.Event) {
		mu.Lock()
		running++
		maxRunning = max(maxRunning, running)
		mu.Unlock()

		mu.Lock()
		running--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(models.Event{Type: models.EventMessageDelete})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxRunning)
}

func TestDispatcher_FollowUpEventAfterHandlerReturns(t *testing.T) {
	d := NewDispatcher()
	var got []string
	followUp := make(chan models.Event, 1)
	d.Subscribe(models.EventMessageUpdate, func(e models.Event) {
		got = append(got, e.Type)
		followUp <- models.Event{Type: models.EventMessageDelete}
	})
	d.Subscribe(models.EventMessageDelete, func(e models.Event) { got = append(got, e.Type) })

	d.Dispatch(models.Event{Type: models.EventMessageUpdate})
	d.Dispatch(<-followUp)

	assert.Equal(t, []string{models.EventMessageUpdate, models.EventMessageDelete}, got)
}
