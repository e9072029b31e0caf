package session

import (
	"log/slog"
	"sync/atomic"

	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/events"
	"github.com/mmcdole/lorastudio/internal/state"
)

// LoadPhase is the load coordinator's view of the loading flag
type LoadPhase int

const (
	PhaseIdle LoadPhase = iota
	PhaseLoading
	PhaseSettled
)

// String returns the phase name
func (p LoadPhase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// loadTransition is one row of the phase table
type loadTransition struct {
	next  LoadPhase
	reset bool // reset the progress tracker on entry
}

// loadTransitions maps (phase, observed loading flag) to the next phase.
// Only a false->true edge (idle/settled observing true) resets progress.
var loadTransitions = map[LoadPhase]map[bool]loadTransition{
	PhaseIdle: {
		false: {next: PhaseIdle},
		true:  {next: PhaseLoading, reset: true},
	},
	PhaseLoading: {
		false: {next: PhaseSettled},
		true:  {next: PhaseLoading},
	},
	PhaseSettled: {
		false: {next: PhaseSettled},
		true:  {next: PhaseLoading, reset: true},
	},
}

// ProgressDelivery is a progress event stamped with the subscription and the
// load it was emitted during
type ProgressDelivery struct {
	SubID uint64
	Load  uint64
	Event domain.ProgressEvent
}

// LoadCoordinator ties the loading flag, the scan query and the progress
// stream together for the lifetime of the UI.
type LoadCoordinator struct {
	project  *state.ProjectIdentity
	progress *state.ProgressTracker
	logger   *slog.Logger

	phase  LoadPhase
	resets int
	load   atomic.Uint64 // bumped on every reset; read by the emitting goroutine

	sub *events.Subscription
}

// NewLoadCoordinator creates a coordinator in PhaseIdle
func NewLoadCoordinator(project *state.ProjectIdentity, progress *state.ProgressTracker, logger *slog.Logger) *LoadCoordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadCoordinator{
		project:  project,
		progress: progress,
		logger:   logger,
	}
}

// Phase returns the current phase
func (c *LoadCoordinator) Phase() LoadPhase { return c.phase }

// Resets returns how many times the tracker has been reset
func (c *LoadCoordinator) Resets() int { return c.resets }

// Load numbers the current load cycle, 0 before the first one. Safe to call
// from any goroutine.
func (c *LoadCoordinator) Load() uint64 { return c.load.Load() }

// Observe feeds the current loading flag through the phase table. Call it once
// per update pass; repeated observations of the same value are no-ops.
func (c *LoadCoordinator) Observe(loading bool) {
	tr := loadTransitions[c.phase][loading]
	if tr.next != c.phase {
		c.logger.Debug("load phase", "from", c.phase, "to", tr.next)
	}
	c.phase = tr.next
	if tr.reset {
		c.progress.Reset()
		c.resets++
		c.load.Add(1)
	}
}

// Settle is told about every scan query status change. Success and error
// clear the loading flag; idle and pending leave it untouched.
func (c *LoadCoordinator) Settle(status QueryStatus) {
	if !status.Settled() {
		return
	}
	c.project.SetLoading(false)
	c.Observe(false)
}

// Subscribe acquires the progress subscription. deliver runs on the emitting
// goroutine and must hand the delivery back to the UI loop, which then calls
// ApplyProgress. Each delivery is stamped with the load running when it was
// emitted. Calling Subscribe again while subscribed is a no-op.
func (c *LoadCoordinator) Subscribe(bus *events.Bus, deliver func(ProgressDelivery)) {
	if c.sub != nil {
		return
	}
	// id is 0 until Subscribe returns; such events are dropped by ApplyProgress
	var id atomic.Uint64
	c.sub = bus.Subscribe(domain.ProjectLoadProgressEvent, func(payload any) {
		ev, ok := payload.(domain.ProgressEvent)
		if !ok {
			return
		}
		deliver(ProgressDelivery{SubID: id.Load(), Load: c.load.Load(), Event: ev})
	})
	id.Store(c.sub.ID())
	c.logger.Debug("progress subscription acquired", "id", c.sub.ID())
}

// SubscriptionID returns the live subscription's id, 0 when unsubscribed
func (c *LoadCoordinator) SubscriptionID() uint64 {
	if c.sub == nil {
		return 0
	}
	return c.sub.ID()
}

// ApplyProgress overwrites the tracker with the event's count when it came
// from the live subscription during the current load. Deliveries from a
// released subscription or an earlier load are dropped.
func (c *LoadCoordinator) ApplyProgress(d ProgressDelivery) bool {
	if c.sub == nil || d.SubID != c.sub.ID() {
		return false
	}
	if d.Load != c.load.Load() {
		c.logger.Debug("dropping progress from earlier load", "load", d.Load, "current", c.load.Load())
		return false
	}
	c.progress.SetImagesFound(d.Event.Count)
	return true
}

// Close releases the progress subscription. Safe to call more than once.
func (c *LoadCoordinator) Close() {
	if c.sub == nil {
		return
	}
	c.sub.Unsubscribe()
	c.sub = nil
}
