package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/session"
)

func TestProgressBridge_DeliversLatest(t *testing.T) {
	b := NewProgressBridge()
	defer b.Close()

	b.Deliver(session.ProgressDelivery{SubID: 3, Load: 1, Event: domain.ProgressEvent{Count: 50}})
	b.Deliver(session.ProgressDelivery{SubID: 3, Load: 1, Event: domain.ProgressEvent{Count: 100}})

	msg, ok := b.Listen()().(ProgressMsg)
	if !ok {
		t.Fatal("expected ProgressMsg")
	}
	if msg.SubID != 3 || msg.Load != 1 || msg.Event.Count != 100 {
		t.Errorf("got %+v, want sub 3 load 1 count 100", msg)
	}
}

func TestProgressBridge_ConcurrentDeliver(t *testing.T) {
	b := NewProgressBridge()
	defer b.Close()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b.Deliver(session.ProgressDelivery{SubID: 1, Event: domain.ProgressEvent{Count: n}})
		}(i)
	}
	wg.Wait()

	done := make(chan any, 1)
	go func() { done <- b.Listen()() }()
	select {
	case msg := <-done:
		if _, ok := msg.(ProgressMsg); !ok {
			t.Errorf("got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("listen blocked with events pending")
	}
}

func TestProgressBridge_CloseEndsListen(t *testing.T) {
	b := NewProgressBridge()

	done := make(chan any, 1)
	go func() { done <- b.Listen()() }()

	b.Close()
	b.Close()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("got %T after close, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("listen did not return after close")
	}

	// delivering after close must not block or panic
	b.Deliver(session.ProgressDelivery{SubID: 1, Event: domain.ProgressEvent{Count: 1}})
}
