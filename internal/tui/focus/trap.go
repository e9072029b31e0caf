package focus

// Tab keys as reported by tea.KeyMsg.String()
const (
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
)

// Trap keeps tab navigation inside a container while active.
type Trap struct {
	manager   *Manager
	container Container
	active    bool
	restore   Element
}

// NewTrap binds a trap to a container
func NewTrap(manager *Manager, container Container) *Trap {
	return &Trap{manager: manager, container: container}
}

// Active reports whether the trap is engaged
func (t *Trap) Active() bool {
	return t.active
}

// SetActive engages or releases the trap.
//
// Engaging remembers the focused element and focuses the container's first
// focusable element; a container with none is left alone. Releasing puts focus
// back on the remembered element if it is still mounted.
func (t *Trap) SetActive(active bool) {
	if active == t.active {
		return
	}
	t.active = active

	if active {
		t.restore = t.manager.Current()
		if elems := t.focusables(); len(elems) > 0 {
			t.manager.Focus(elems[0])
		}
		return
	}

	prev := t.restore
	t.restore = nil
	if t.manager.Mounted(prev) {
		t.manager.Focus(prev)
	}
}

// HandleKey wraps focus at the container's edges: shift+tab on the first
// element goes to the last, tab on the last goes to the first. It returns
// false for every other key press, which is left to default handling.
func (t *Trap) HandleKey(key string) bool {
	if !t.active || (key != KeyTab && key != KeyShiftTab) {
		return false
	}

	elems := t.focusables()
	if len(elems) == 0 {
		return false
	}
	first, last := elems[0], elems[len(elems)-1]

	switch {
	case key == KeyShiftTab && t.manager.IsFocused(first):
		t.manager.Focus(last)
		return true
	case key == KeyTab && t.manager.IsFocused(last):
		t.manager.Focus(first)
		return true
	}
	return false
}

// focusables returns the container's currently focusable elements
func (t *Trap) focusables() []Element {
	if t.container == nil {
		return nil
	}
	return Focusable(t.container.Focusables())
}
