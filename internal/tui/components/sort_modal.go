package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/lorastudio/internal/state"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// DefaultOrder returns the order a key starts in when first picked
func DefaultOrder(key state.SortKey) state.SortOrder {
	if key == state.SortName {
		return state.SortAsc // A-Z
	}
	return state.SortDesc // largest first
}

// SortSelection is a confirmed sort choice
type SortSelection struct {
	Key   state.SortKey
	Order state.SortOrder
}

// SortModal is a small popup for choosing the image list order
type SortModal struct {
	visible     bool
	options     []state.SortKey
	cursor      int
	activeKey   state.SortKey
	activeOrder state.SortOrder
}

func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the cursor on the active key
func (m *SortModal) Show(activeKey state.SortKey, activeOrder state.SortOrder) {
	m.visible = true
	m.options = state.SortKeys()
	m.activeKey = activeKey
	m.activeOrder = activeOrder
	m.cursor = 0
	for i, opt := range m.options {
		if opt == activeKey {
			m.cursor = i
			break
		}
	}
}

func (m *SortModal) Hide() {
	m.visible = false
}

func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// A non-nil selection means the user confirmed a choice; picking the
// active key again flips its order.
func (m *SortModal) HandleKey(key string) (handled bool, selection *SortSelection) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		order := DefaultOrder(chosen)
		if chosen == m.activeKey {
			order = state.SortAsc
			if m.activeOrder == state.SortAsc {
				order = state.SortDesc
			}
		}
		m.visible = false
		return true, &SortSelection{Key: chosen, Order: order}
	case "esc", "s":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		active := opt == m.activeKey

		text := "  " + opt.Label()
		if active {
			arrow := " ↑"
			if m.activeOrder == state.SortDesc {
				arrow = " ↓"
			}
			text = "✓ " + opt.Label() + arrow
		}

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case active:
			style = lipgloss.NewStyle().Foreground(styles.Amber)
		}
		lines = append(lines, style.Render(styles.Pad(text, 20)))
	}

	return styles.ModalStyle.Padding(0, 1).Render(
		styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
