package components

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/mmcdole/lorastudio/internal/state"
	"github.com/mmcdole/lorastudio/internal/tui/focus"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// Focus ids of the modal's buttons
const (
	DuplicatesScanID  = "duplicates-scan"
	DuplicatesCloseID = "duplicates-close"
)

// DuplicatesAction is what the host should do after a key press
type DuplicatesAction int

const (
	DuplicatesNone DuplicatesAction = iota
	DuplicatesScan
	DuplicatesClose
)

const duplicatesWidth = 64

// DuplicatesModal shows a duplicate scan of the open project. Each time it
// opens it starts a fresh scan session; closing discards it.
type DuplicatesModal struct {
	visible  bool
	scan     *session.DuplicateScan
	focus    *focus.Manager
	trap     *focus.Trap
	scanBtn  *Button
	closeBtn *Button
	viewport viewport.Model
}

// NewDuplicatesModal creates a hidden modal bound to the focus manager
func NewDuplicatesModal(fm *focus.Manager, logger *slog.Logger) *DuplicatesModal {
	m := &DuplicatesModal{
		scan:     session.NewDuplicateScan(logger),
		focus:    fm,
		scanBtn:  NewButton(DuplicatesScanID, "Scan"),
		closeBtn: NewButton(DuplicatesCloseID, "Close"),
		viewport: viewport.New(duplicatesWidth, 10),
	}
	m.trap = focus.NewTrap(fm, m)
	return m
}

// Focusables implements focus.Container
func (m *DuplicatesModal) Focusables() []focus.Element {
	return []focus.Element{m.scanBtn, m.closeBtn}
}

// IsVisible returns whether the modal is shown
func (m *DuplicatesModal) IsVisible() bool {
	return m.visible
}

// Session exposes the scan session
func (m *DuplicatesModal) Session() *session.DuplicateScan {
	return m.scan
}

// Trap exposes the focus trap
func (m *DuplicatesModal) Trap() *focus.Trap {
	return m.trap
}

// SetHeight sizes the group list to the terminal
func (m *DuplicatesModal) SetHeight(termHeight int) {
	m.viewport.Height = max(termHeight-16, 3)
}

// Open shows the modal and traps focus inside it
func (m *DuplicatesModal) Open() {
	if m.visible {
		return
	}
	m.visible = true
	m.scan.Close()
	m.refresh()
	m.focus.Mount(m.scanBtn, m.closeBtn)
	m.trap.SetActive(true)
}

// Close discards the scan session, releases focus and hides the modal
func (m *DuplicatesModal) Close() {
	if !m.visible {
		return
	}
	m.scan.Close()
	m.trap.SetActive(false)
	m.focus.Unmount(m.scanBtn, m.closeBtn)
	m.visible = false
}

// Start begins a scan of the open project. A non-nil error means the scan
// failed locally and no backend call should be made.
func (m *DuplicatesModal) Start(project *state.ProjectIdentity) error {
	err := m.scan.Run(project)
	m.refresh()
	return err
}

// Settle applies a backend answer issued by the given session. Returns false
// when that session is gone.
func (m *DuplicatesModal) Settle(session uint64, result domain.DuplicateResult, err error) bool {
	applied := m.scan.Settle(session, result, err)
	m.refresh()
	return applied
}

// HandleKey routes a key press and reports what the host should do
func (m *DuplicatesModal) HandleKey(key string) DuplicatesAction {
	switch key {
	case "esc":
		return DuplicatesClose
	case focus.KeyTab, focus.KeyShiftTab:
		if !m.trap.HandleKey(key) {
			m.focus.Step(focus.Focusable(m.Focusables()), key == focus.KeyShiftTab)
		}
	case "enter", " ":
		switch {
		case m.focus.IsFocused(m.scanBtn) && !m.scanBtn.Disabled():
			return DuplicatesScan
		case m.focus.IsFocused(m.closeBtn):
			return DuplicatesClose
		}
	case "j", "down":
		m.scroll(1)
	case "k", "up":
		m.scroll(-1)
	case "pgdown", "ctrl+d":
		m.scroll(m.viewport.Height / 2)
	case "pgup", "ctrl+u":
		m.scroll(-m.viewport.Height / 2)
	}
	return DuplicatesNone
}

func (m *DuplicatesModal) scroll(n int) {
	m.viewport.SetYOffset(m.viewport.YOffset + n)
}

// refresh syncs button state and the group list with the session
func (m *DuplicatesModal) refresh() {
	pending := m.scan.Pending()
	m.scanBtn.SetDisabled(pending)
	if m.scan.Status() == session.ScanIdle {
		m.scanBtn.SetLabel("Scan")
	} else {
		m.scanBtn.SetLabel("Scan again")
	}
	// a disabled button cannot keep focus
	if pending && m.focus.IsFocused(m.scanBtn) {
		m.focus.Focus(m.closeBtn)
	}

	m.viewport.SetContent(renderGroups(m.scan.Groups()))
	m.viewport.GotoTop()
}

func renderGroups(groups [][]string) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Group %d", i+1)))
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" (%d files)", len(g))))
		for _, p := range g {
			b.WriteString("\n  ")
			b.WriteString(styles.Truncate(p, duplicatesWidth-2))
		}
	}
	return b.String()
}

// Summary is the one-line result text
func (m *DuplicatesModal) Summary() string {
	switch m.scan.Status() {
	case session.ScanPending:
		return "Scanning for duplicates..."
	case session.ScanFailed:
		return m.scan.Error()
	case session.ScanSucceeded:
		groups := m.scan.Groups()
		if len(groups) == 0 {
			return "No duplicates found"
		}
		return fmt.Sprintf("%d %s, %d redundant %s",
			session.GroupCount(groups), plural(session.GroupCount(groups), "group", "groups"),
			session.RedundantCount(groups), plural(session.RedundantCount(groups), "file", "files"))
	default:
		return "Find images with identical content in this project."
	}
}

// View renders the modal. spinner is the current spinner frame.
func (m *DuplicatesModal) View(spinner string) string {
	if !m.visible {
		return ""
	}

	title := styles.ModalTitleStyle.Render("Duplicate images")
	if root := m.scan.Root(); root != "" {
		title += "\n" + styles.DimStyle.Render(styles.Truncate(root, duplicatesWidth))
	}

	var summary string
	switch m.scan.Status() {
	case session.ScanPending:
		summary = spinner + " " + styles.SubtitleStyle.Render(m.Summary())
	case session.ScanFailed:
		summary = styles.ErrorStyle.Render(m.Summary())
	case session.ScanSucceeded:
		summary = styles.SuccessStyle.Render(m.Summary())
	default:
		summary = styles.DimStyle.Render(m.Summary())
	}

	rows := []string{title, "", summary}
	if len(m.scan.Groups()) > 0 {
		rows = append(rows, "", m.viewport.View())
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.scanBtn.View(m.focus.IsFocused(m.scanBtn)),
		"  ",
		m.closeBtn.View(m.focus.IsFocused(m.closeBtn)),
	)
	rows = append(rows, "", buttons,
		styles.HelpDescStyle.Render("tab: next  enter: press  esc: close"))

	return styles.ModalStyle.Width(duplicatesWidth + 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
