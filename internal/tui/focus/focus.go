// Package focus tracks which on-screen element has keyboard focus and keeps
// tab navigation inside modal dialogs.
package focus

// Element is anything that can hold focus
type Element interface {
	FocusID() string
	Disabled() bool
	Visible() bool
}

// Container lists its focusable descendants in display order
type Container interface {
	Focusables() []Element
}

// Manager owns the current focus and the set of mounted elements.
// Like the rest of the UI state it is only touched from the update loop.
type Manager struct {
	current Element
	mounted map[string]Element
}

// NewManager creates a manager with nothing focused
func NewManager() *Manager {
	return &Manager{mounted: make(map[string]Element)}
}

// Mount registers e as present on screen
func (m *Manager) Mount(elems ...Element) {
	for _, e := range elems {
		m.mounted[e.FocusID()] = e
	}
}

// Unmount removes e. If it held focus, focus is cleared.
func (m *Manager) Unmount(elems ...Element) {
	for _, e := range elems {
		delete(m.mounted, e.FocusID())
		if same(m.current, e) {
			m.current = nil
		}
	}
}

// Mounted reports whether e is still on screen
func (m *Manager) Mounted(e Element) bool {
	if e == nil {
		return false
	}
	_, ok := m.mounted[e.FocusID()]
	return ok
}

// Focus moves focus to e
func (m *Manager) Focus(e Element) {
	m.current = e
}

// Blur clears focus
func (m *Manager) Blur() {
	m.current = nil
}

// Current returns the focused element, nil if none
func (m *Manager) Current() Element {
	return m.current
}

// IsFocused reports whether e holds focus
func (m *Manager) IsFocused(e Element) bool {
	return same(m.current, e)
}

// Step is the default tab traversal over elems: move to the next (or previous)
// element without wrapping. With focus outside elems it enters at the first
// (or last) one. Returns whether focus moved.
func (m *Manager) Step(elems []Element, backward bool) bool {
	if len(elems) == 0 {
		return false
	}

	idx := indexOf(elems, m.current)
	if idx < 0 {
		if backward {
			m.Focus(elems[len(elems)-1])
		} else {
			m.Focus(elems[0])
		}
		return true
	}

	next := idx + 1
	if backward {
		next = idx - 1
	}
	if next < 0 || next >= len(elems) {
		return false
	}
	m.Focus(elems[next])
	return true
}

// Focusable filters elems down to those that are enabled and visible
func Focusable(elems []Element) []Element {
	out := make([]Element, 0, len(elems))
	for _, e := range elems {
		if e != nil && !e.Disabled() && e.Visible() {
			out = append(out, e)
		}
	}
	return out
}

func same(a, b Element) bool {
	if a == nil || b == nil {
		return false
	}
	return a.FocusID() == b.FocusID()
}

func indexOf(elems []Element, e Element) int {
	for i, el := range elems {
		if same(el, e) {
			return i
		}
	}
	return -1
}
