package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Project
	Open       key.Binding
	Recent     key.Binding
	Duplicates key.Binding
	Rate       key.Binding
	Inspector  key.Binding

	// Captions
	AddTag      key.Binding
	RemoveTag   key.Binding
	EditCaption key.Binding

	// Filters
	Filter       key.Binding
	Sort         key.Binding
	SortOrder    key.Binding
	Captioned    key.Binding
	RatingFilter key.Binding
	TagFilter    key.Binding
	ResetFilters key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),

		// Project
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Recent: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "recent"),
		),
		Duplicates: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "duplicates"),
		),
		Rate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rate"),
		),

		// Captions
		AddTag: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add tag"),
		),
		RemoveTag: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove tag"),
		),
		EditCaption: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit caption"),
		),

		// Filters
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "order"),
		),
		Captioned: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "captioned"),
		),
		RatingFilter: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "by rating"),
		),
		TagFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "by tag"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Inspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Duplicates, k.Filter, k.Sort, k.Rate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Open, k.Recent, k.Duplicates, k.Rate, k.Inspector},
		{k.AddTag, k.RemoveTag, k.EditCaption},
		{k.Filter, k.Sort, k.SortOrder, k.Captioned, k.RatingFilter, k.TagFilter, k.ResetFilters},
		{k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
