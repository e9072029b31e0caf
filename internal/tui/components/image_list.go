package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// ImageListID is the focus id of the main image list
const ImageListID = "image-list"

// BorderWidth is the horizontal space taken by the list border
const BorderWidth = 2

// ImageList is the scrollable list of visible images
type ImageList struct {
	images     []domain.ImageEntry
	cursor     int
	offset     int
	width      int
	height     int
	maxVisible int
	title      string
}

// NewImageList creates an empty list
func NewImageList() *ImageList {
	return &ImageList{title: "Images"}
}

func (l *ImageList) FocusID() string { return ImageListID }
func (l *ImageList) Disabled() bool  { return false }
func (l *ImageList) Visible() bool   { return true }

// SetSize sets the outer dimensions including the border
func (l *ImageList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetTitle sets the title line
func (l *ImageList) SetTitle(title string) {
	l.title = title
}

// SetItems replaces the images, keeping the cursor on the same image when it
// is still present
func (l *ImageList) SetItems(images []domain.ImageEntry) {
	var selectedID string
	if sel, ok := l.Selected(); ok {
		selectedID = sel.ID
	}

	l.images = images
	l.cursor = 0
	for i, img := range images {
		if img.ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// Items returns the listed images
func (l *ImageList) Items() []domain.ImageEntry {
	return l.images
}

// Len returns the number of listed images
func (l *ImageList) Len() int {
	return len(l.images)
}

// Selected returns the image under the cursor
func (l *ImageList) Selected() (domain.ImageEntry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.images) {
		return domain.ImageEntry{}, false
	}
	return l.images[l.cursor], true
}

// SelectedIndex returns the cursor position
func (l *ImageList) SelectedIndex() int {
	return l.cursor
}

// HandleKey moves the cursor. Returns false for keys it does not use.
func (l *ImageList) HandleKey(key string) bool {
	count := len(l.images)
	switch key {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
		l.offset = 0
	case "G", "end":
		l.cursor = count - 1
	case "ctrl+d", "pgdown":
		l.cursor += max(l.maxVisible/2, 1)
		if l.cursor >= count {
			l.cursor = count - 1
		}
	case "ctrl+u", "pgup":
		l.cursor -= max(l.maxVisible/2, 1)
	default:
		return false
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
	return true
}

func (l *ImageList) recalcMaxVisible() {
	// title, top and bottom "more" markers, border
	l.maxVisible = l.height - 3 - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ImageList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list with a border, highlighted when focused
func (l *ImageList) View(focused bool) string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(styles.DimGray)
	if focused {
		style = style.BorderForeground(styles.Amber)
	}
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(l.width-frameW, 1)).
		Height(max(l.height-frameH, 1)).
		Render(l.renderContent())
}

func (l *ImageList) renderContent() string {
	itemWidth := l.width - BorderWidth
	if itemWidth < 20 {
		itemWidth = 20
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	count := len(l.images)
	if count == 0 {
		return titleLine + "\n \n" + styles.DimStyle.Render("No images") + "\n "
	}

	end := min(l.offset+l.maxVisible, count)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.images[i], i == l.cursor, itemWidth))
	}

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (l *ImageList) renderRow(img domain.ImageEntry, selected bool, width int) string {
	indicator, indicatorFg := styles.RatingIndicator(img.Rating)

	details := fmt.Sprintf("%dx%d  %s", img.Width, img.Height, humanize.Bytes(uint64(img.FileSize)))
	if img.HasCaption {
		details += fmt.Sprintf("  %d tags", len(img.Tags))
	} else {
		details += "  uncaptioned"
	}
	dim := styles.DimGray

	// indicator(1) + space(1) + gap(2) + margins(2)
	nameWidth := width - 6 - lipgloss.Width(details)
	if nameWidth < 8 {
		nameWidth = 8
	}
	name := styles.Pad(styles.Truncate(img.RelativePath, nameWidth), nameWidth)

	parts := []styles.RowPart{
		{Text: indicator, Foreground: &indicatorFg},
		{Text: " " + name + "  "},
		{Text: details, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, width)
}
