package components

import "github.com/mmcdole/lorastudio/internal/tui/styles"

// Button is a focusable push button inside a modal
type Button struct {
	id       string
	label    string
	disabled bool
	hidden   bool
}

// NewButton creates an enabled, visible button
func NewButton(id, label string) *Button {
	return &Button{id: id, label: label}
}

func (b *Button) FocusID() string { return b.id }
func (b *Button) Disabled() bool  { return b.disabled }
func (b *Button) Visible() bool   { return !b.hidden }

// Label returns the button text
func (b *Button) Label() string { return b.label }

// SetLabel changes the button text
func (b *Button) SetLabel(label string) { b.label = label }

// SetDisabled enables or disables the button
func (b *Button) SetDisabled(disabled bool) { b.disabled = disabled }

// SetHidden hides or shows the button
func (b *Button) SetHidden(hidden bool) { b.hidden = hidden }

// View renders the button
func (b *Button) View(focused bool) string {
	switch {
	case b.hidden:
		return ""
	case b.disabled:
		return styles.DisabledButtonStyle.Render(b.label)
	case focused:
		return styles.FocusedButtonStyle.Render(b.label)
	default:
		return styles.ButtonStyle.Render(b.label)
	}
}
