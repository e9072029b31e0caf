package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // clipped middle
	footer string // fixed bottom
}

// Inspector shows the details of the selected image. It is never focused.
type Inspector struct {
	item   *domain.ImageEntry
	width  int
	height int
}

func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the image to display; nil shows a placeholder
func (i *Inspector) SetItem(item *domain.ImageEntry) {
	i.item = item
}

func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// HasItem returns true if there is an image to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

func (i Inspector) View() string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(styles.DimGray)

	contentWidth := max(i.width-BorderWidth-1, 10)
	content := i.render(contentWidth)

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	// title + blank line + border
	maxVisible := max(i.height-BorderWidth-2, 1)
	available := max(maxVisible-len(headerLines)-len(footerLines)-1, 1)

	more := " "
	if len(bodyLines) > available {
		bodyLines = bodyLines[:available]
		more = styles.DimStyle.Render("↓ more")
	}

	parts := []string{styles.AccentStyle.Render("Info"), ""}
	parts = append(parts, headerLines...)
	parts = append(parts, bodyLines...)
	for j := len(bodyLines); j < available; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, more)
	parts = append(parts, footerLines...)

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 1)).
		Height(max(i.height-frameH, 1)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) render(width int) inspectorContent {
	if i.item == nil {
		return inspectorContent{body: styles.DimStyle.Render("No image selected")}
	}
	img := *i.item

	indicator, fg := styles.RatingIndicator(img.Rating)
	header := styles.TitleStyle.Render(styles.Truncate(img.Filename, width)) + "\n" +
		lipgloss.NewStyle().Foreground(fg).Render(indicator+" "+img.Rating.Label())

	var body strings.Builder
	body.WriteString("\n")
	body.WriteString(styles.DimStyle.Render("Path") + "\n")
	body.WriteString(styles.SubtitleStyle.Render(wordWrap(img.RelativePath, width)) + "\n\n")
	switch {
	case !img.HasCaption:
		body.WriteString(styles.ErrorStyle.Render("No caption file"))
	case len(img.Tags) == 0:
		body.WriteString(styles.DimStyle.Render("Caption is empty"))
	default:
		body.WriteString(styles.DimStyle.Render(fmt.Sprintf("Tags (%d)", len(img.Tags))) + "\n")
		body.WriteString(styles.SubtitleStyle.Render(wordWrap(strings.Join(img.Tags, ", "), width)))
	}

	dims := "unknown size"
	if img.Width > 0 && img.Height > 0 {
		dims = fmt.Sprintf("%d × %d", img.Width, img.Height)
	}
	footer := styles.DimStyle.Render(dims + "  " + humanize.Bytes(uint64(img.FileSize)))

	return inspectorContent{header: header, body: body.String(), footer: footer}
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}
		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}
	return result.String()
}
