package tui

// Layout constants
const (
	MinInspectorWidth = 80 // narrower windows hide the inspector
	ListColumnPercent = 60
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateLayout splits the width between the list and the inspector
func (m Model) calculateLayout(availableWidth int) columnLayout {
	if !m.ShowInspector || availableWidth < MinInspectorWidth {
		return columnLayout{listWidth: availableWidth}
	}
	listWidth := availableWidth * ListColumnPercent / 100
	return columnLayout{
		listWidth:      listWidth,
		inspectorWidth: availableWidth - listWidth,
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	contentHeight := m.Height - HeaderHeight - ChromeHeight
	layout := m.calculateLayout(m.Width)

	m.List.SetSize(layout.listWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
	m.Duplicates.SetHeight(m.Height)
	m.Help.Width = m.Width
}
