package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/mmcdole/lorastudio/internal/state"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// View renders the screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var content string
	if m.App.Project.HasProject() {
		content = m.renderImages()
	} else {
		content = m.renderWelcome()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	// At most one overlay; loading wins
	var overlay string
	switch {
	case m.App.Project.IsLoading():
		overlay = m.renderLoading()
	case m.Duplicates.IsVisible():
		overlay = m.Duplicates.View(m.Spinner.View())
	case m.InputModal.IsVisible():
		overlay = m.InputModal.View()
	case m.SortModal.IsVisible():
		overlay = m.SortModal.View()
	case m.ShowHelp:
		overlay = m.renderHelp()
	}
	if overlay != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			overlay)
	}

	return view
}

// renderImages draws the list, with the inspector beside it when it fits
func (m Model) renderImages() string {
	list := m.List.View(m.Focus.IsFocused(m.List))
	if m.calculateLayout(m.Width).inspectorWidth == 0 {
		return list
	}
	insp := m.Inspector
	if img, ok := m.List.Selected(); ok {
		insp.SetItem(&img)
	} else {
		insp.SetItem(nil)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, insp.View())
}

func (m Model) renderHeader() string {
	title := styles.AccentStyle.Bold(true).Render("LoRA Studio")
	root, ok := m.App.Project.RootPath()
	if ok {
		title += "  " + styles.TitleStyle.Render(styles.Truncate(root, max(m.Width-16, 10)))
	}

	return title + "\n" + m.renderFilterSummary()
}

func (m Model) renderFilterSummary() string {
	f := m.App.Filters
	arrow := "↑"
	if f.SortOrder == state.SortDesc {
		arrow = "↓"
	}

	parts := []string{fmt.Sprintf("sort: %s %s", f.SortBy.Label(), arrow)}
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", f.Query))
	}
	if f.ShowCaptioned != nil {
		if *f.ShowCaptioned {
			parts = append(parts, "captioned")
		} else {
			parts = append(parts, "uncaptioned")
		}
	}
	if f.TagFilter != nil {
		parts = append(parts, "tag: "+*f.TagFilter)
	}
	if f.RatingFilter != nil {
		parts = append(parts, "rating: "+f.RatingFilter.Label())
	}

	line := strings.Join(parts, "  ·  ")
	if !f.IsDefault() {
		line += "  " + styles.AccentStyle.Render("x") + " reset"
	}
	return styles.DimStyle.Render(line)
}

func (m Model) renderWelcome() string {
	height := max(m.Height-HeaderHeight-ChromeHeight, 1)

	lines := []string{
		styles.TitleStyle.Render(session.NoProjectMessage),
		"",
		styles.DimStyle.Render("Press ") + styles.AccentStyle.Render("o") + styles.DimStyle.Render(" to open a dataset folder."),
	}
	if len(m.Recent) > 0 {
		lines = append(lines, "", styles.SubtitleStyle.Render("Recent projects"))
		for i, p := range m.Recent {
			if i >= 9 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %s %s %s",
				styles.AccentStyle.Render(fmt.Sprintf("%d", i+1)),
				styles.Truncate(p.Root, max(m.Width-30, 10)),
				styles.DimStyle.Render(fmt.Sprintf("%s images, %s", humanize.Comma(int64(p.ImageCount)), humanize.Time(p.OpenedAt))),
			))
		}
	}

	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderLoading() string {
	found := m.App.Progress.ImagesFound()
	noun := "images"
	if found == 1 {
		noun = "image"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Loading project"),
		m.Spinner.View()+" "+styles.SubtitleStyle.Render(fmt.Sprintf("%s %s found", humanize.Comma(int64(found)), noun)),
	)
	return styles.ModalStyle.Render(body)
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else {
		left = m.Help.ShortHelpView(Keys.ShortHelp())
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderHelp() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		m.Help.FullHelpView(Keys.FullHelp()),
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)
	return styles.ModalStyle.Render(body)
}
