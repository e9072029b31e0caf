package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// InputModal is a simple text input modal with optional suggestions
type InputModal struct {
	visible     bool
	title       string
	input       textinput.Model
	suggestions []string
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 50
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{
		input: ti,
	}
}

// Show displays the modal with a title, placeholder and starting value
func (m *InputModal) Show(title, placeholder, value string) {
	m.visible = true
	m.title = title
	m.suggestions = nil
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.suggestions = nil
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// SetSuggestions replaces the suggestion line
func (m *InputModal) SetSuggestions(s []string) {
	m.suggestions = s
}

// Suggestions returns the current suggestions
func (m InputModal) Suggestions() []string {
	return m.suggestions
}

// Update handles input events, returns (modal, cmd, submitted).
// Tab accepts the first suggestion.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		case "tab":
			if len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[0])
				m.input.CursorEnd()
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 56

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	inputStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	spacer := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark).
		Render("")

	rows := []string{
		titleStyle.Render(m.title),
		spacer,
		inputStyle.Render(m.input.View()),
	}
	if len(m.suggestions) > 0 {
		line := styles.DimStyle.Render("tab: ") + styles.AccentStyle.Render(strings.Join(m.suggestions, "  "))
		rows = append(rows, spacer, inputStyle.Render(line))
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
