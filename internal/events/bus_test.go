package events

import (
	"sync"
	"testing"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus(nil)

	var got []any
	sub := bus.Subscribe("progress", func(p any) { got = append(got, p) })
	defer sub.Unsubscribe()

	bus.Emit("progress", 1)
	bus.Emit("other", 2)
	bus.Emit("progress", 3)

	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("got %v, want [1 3]", got)
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	sub := bus.Subscribe("progress", func(any) { calls++ })
	bus.Emit("progress", nil)
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	bus.Emit("progress", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n := bus.Subscribers("progress"); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
}

func TestBus_SubscriptionIDsAreUnique(t *testing.T) {
	bus := NewBus(nil)
	a := bus.Subscribe("x", func(any) {})
	b := bus.Subscribe("x", func(any) {})
	a.Unsubscribe()
	c := bus.Subscribe("x", func(any) {})

	if a.ID() == b.ID() || b.ID() == c.ID() || a.ID() == c.ID() {
		t.Errorf("ids not unique: %d %d %d", a.ID(), b.ID(), c.ID())
	}
	if n := bus.Subscribers("x"); n != 2 {
		t.Errorf("Subscribers() = %d, want 2", n)
	}
}

func TestBus_NilSubscription(t *testing.T) {
	var sub *Subscription
	sub.Unsubscribe()
	if sub.ID() != 0 {
		t.Errorf("nil ID() = %d, want 0", sub.ID())
	}
}

func TestBus_ConcurrentEmit(t *testing.T) {
	bus := NewBus(nil)

	var mu sync.Mutex
	total := 0
	sub := bus.Subscribe("progress", func(p any) {
		mu.Lock()
		total += p.(int)
		mu.Unlock()
	})
	defer sub.Unsubscribe()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Emit("progress", 1)
			}
		}()
	}
	wg.Wait()

	if total != 800 {
		t.Errorf("total = %d, want 800", total)
	}
}
