package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/lorastudio/internal/session"
)

// ProgressBridge moves progress events from the backend goroutine into the
// Bubble Tea loop. Deliver never blocks; when the loop falls behind, pending
// events coalesce and only the latest is read.
type ProgressBridge struct {
	mu      sync.Mutex
	latest  ProgressMsg
	pending bool

	notify    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewProgressBridge creates an open bridge
func NewProgressBridge() *ProgressBridge {
	return &ProgressBridge{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Deliver queues a delivery. Safe to call from any goroutine.
func (b *ProgressBridge) Deliver(d session.ProgressDelivery) {
	b.mu.Lock()
	b.latest = ProgressMsg(d)
	b.pending = true
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Listen returns a command that waits for the next event. The handler of
// ProgressMsg re-issues it to keep the stream flowing. After Close the command
// yields nil and the stream ends.
func (b *ProgressBridge) Listen() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-b.done:
				return nil
			case <-b.notify:
				if msg, ok := b.take(); ok {
					return msg
				}
			}
		}
	}
}

func (b *ProgressBridge) take() (ProgressMsg, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return ProgressMsg{}, false
	}
	b.pending = false
	return b.latest, true
}

// Close ends the stream. Idempotent.
func (b *ProgressBridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
