package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/events"
	"github.com/mmcdole/lorastudio/internal/session"
	"github.com/mmcdole/lorastudio/internal/state"
	"github.com/mmcdole/lorastudio/internal/store"
	"github.com/mmcdole/lorastudio/internal/tui/components"
	"github.com/mmcdole/lorastudio/internal/tui/focus"
	"github.com/mmcdole/lorastudio/internal/tui/styles"
)

// Layout
const (
	HeaderHeight = 2
	ChromeHeight = 1

	tagSuggestionLimit = 5
	defaultScanTimeout = 10 * time.Minute
	defaultRecentLimit = 9
)

// inputPurpose says what the input modal is collecting
type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputOpenProject
	inputQuery
	inputTag
	inputAddTag
	inputRemoveTag
	inputCaption
)

// Options wires the model to its collaborators
type Options struct {
	Backend     domain.Backend
	Bus         *events.Bus
	Store       *store.Store // optional
	Logger      *slog.Logger
	InitialRoot string
	ScanTimeout time.Duration
	RecentLimit int
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Application state and services
	App     *session.App
	Backend domain.Backend
	Store   *store.Store
	Bridge  *ProgressBridge

	// UI Components
	Focus      *focus.Manager
	List       *components.ImageList
	Duplicates *components.DuplicatesModal
	InputModal components.InputModal
	SortModal  components.SortModal
	Inspector  components.Inspector
	Spinner    spinner.Model
	Help       help.Model

	// Data
	Recent []store.RecentProject

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	ShowHelp      bool
	ShowInspector bool

	input       inputPurpose
	editTarget  domain.ImageEntry // image a caption input applies to
	initialRoot string
	scanTimeout time.Duration
	recentLimit int
	logger      *slog.Logger
}

// NewModel creates the application model and acquires the progress
// subscription. Call Close when the program exits.
func NewModel(app *session.App, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ScanTimeout <= 0 {
		opts.ScanTimeout = defaultScanTimeout
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}

	bridge := NewProgressBridge()
	if opts.Bus != nil {
		app.SubscribeProgress(opts.Bus, bridge.Deliver)
	}

	fm := focus.NewManager()
	list := components.NewImageList()
	fm.Mount(list)
	fm.Focus(list)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		App:         app,
		Backend:     opts.Backend,
		Store:       opts.Store,
		Bridge:      bridge,
		Focus:       fm,
		List:        list,
		Duplicates:  components.NewDuplicatesModal(fm, logger),
		InputModal:  components.NewInputModal(),
		SortModal:   components.NewSortModal(),
		Inspector:   components.NewInspector(),
		Spinner:     sp,
		Help:        help.New(),
		initialRoot: opts.InitialRoot,
		scanTimeout: opts.ScanTimeout,
		recentLimit: opts.RecentLimit,
		logger:      logger,
	}
}

// Close releases the progress subscription and ends the progress stream
func (m Model) Close() {
	m.App.Close()
	m.Bridge.Close()
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.Bridge.Listen(),
		m.Spinner.Tick,
		LoadRecentProjectsCmd(m.Store, m.recentLimit),
	}
	if m.initialRoot != "" {
		root := m.initialRoot
		cmds = append(cmds, func() tea.Msg { return OpenProjectMsg{Root: root} })
	}
	return tea.Batch(cmds...)
}

// Update handles all messages. Every pass ends with the load coordinator
// observing the loading flag.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.App.Sync()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case OpenProjectMsg:
		return m.openProject(msg.Root)

	case ProgressMsg:
		m.App.ApplyProgress(session.ProgressDelivery(msg))
		return m, m.Bridge.Listen()

	case ProjectScannedMsg:
		m.App.ResolveScan(msg.Root, msg.Images, msg.Err)
		m.refreshList()
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Could not open project: %v", msg.Err), true)
		}
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("Loaded %d images", len(msg.Images)), false),
			RecordProjectCmd(m.Store, msg.Root, len(msg.Images), m.recentLimit),
		)

	case DuplicatesFoundMsg:
		m.Duplicates.Settle(msg.Session, msg.Result, msg.Err)
		return m, nil

	case RatingSavedMsg:
		if m.App.Scan.Root() == msg.Root && m.App.Scan.UpdateImage(msg.Image) {
			m.refreshList()
		}
		return m, m.setStatus(fmt.Sprintf("Rated %s: %s", msg.Image.Filename, msg.Image.Rating.Label()), false)

	case CaptionSavedMsg:
		if m.App.Scan.Root() == msg.Root && m.App.Scan.UpdateImage(msg.Image) {
			m.refreshList()
		}
		return m, m.setStatus(fmt.Sprintf("Saved caption for %s (%d tags)", msg.Image.Filename, len(msg.Image.Tags)), false)

	case RecentProjectsMsg:
		m.Recent = msg.Projects
		return m, nil

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other textinput messages
	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	if isErr {
		return ClearStatusCmd(5 * time.Second)
	}
	return ClearStatusCmd(3 * time.Second)
}

// openProject starts loading root. The loading flag is raised before the scan
// command exists, so no progress of the new scan can arrive first.
func (m Model) openProject(path string) (Model, tea.Cmd) {
	root, err := m.App.OpenProject(path)
	if errors.Is(err, domain.ErrLoadInProgress) {
		return m, m.setStatus("A project is still loading", true)
	}
	if err != nil {
		return m, nil
	}
	m.refreshList()
	return m, ScanProjectCmd(m.Backend, root, m.scanTimeout)
}

func (m *Model) refreshList() {
	m.List.SetItems(m.App.Visible())
	m.List.SetTitle(m.listTitle())
}

func (m Model) listTitle() string {
	total := len(m.App.Scan.Images())
	shown := m.List.Len()
	if shown == total {
		return fmt.Sprintf("Images (%d)", total)
	}
	return fmt.Sprintf("Images (%d of %d)", shown, total)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.InputModal.IsVisible() {
		return m.handleInputKey(msg)
	}

	if m.Duplicates.IsVisible() {
		switch m.Duplicates.HandleKey(msg.String()) {
		case components.DuplicatesScan:
			return m.startDuplicateScan()
		case components.DuplicatesClose:
			m.Duplicates.Close()
		}
		return m, nil
	}

	if m.SortModal.IsVisible() {
		if _, sel := m.SortModal.HandleKey(msg.String()); sel != nil {
			m.App.Filters.SetSort(sel.Key, sel.Order)
			m.refreshList()
			return m, SavePreferencesCmd(m.Store, *m.App.Filters)
		}
		return m, nil
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	filters := m.App.Filters

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Open):
		if m.App.Project.IsLoading() {
			return m, m.setStatus("A project is still loading", true)
		}
		root, _ := m.App.Project.RootPath()
		m.showInput(inputOpenProject, "Open project folder", "~/datasets/my-lora", root)
		return m, nil

	case key.Matches(msg, Keys.Recent):
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(m.Recent) {
			return m, nil
		}
		return m.openProject(m.Recent[idx].Root)

	case key.Matches(msg, Keys.Duplicates):
		m.Duplicates.Open()
		return m, nil

	case key.Matches(msg, Keys.Rate):
		return m.rateSelected()

	case key.Matches(msg, Keys.AddTag):
		if m.beginCaptionEdit() {
			m.showInput(inputAddTag, "Add tag to "+m.editTarget.Filename, "tag", "")
			m.InputModal.SetSuggestions(state.TagSuggestions("", m.App.Scan.Images(), tagSuggestionLimit))
		}
		return m, nil

	case key.Matches(msg, Keys.RemoveTag):
		if m.beginCaptionEdit() && len(m.editTarget.Tags) > 0 {
			m.showInput(inputRemoveTag, "Remove tag from "+m.editTarget.Filename, "tag", "")
			m.InputModal.SetSuggestions(m.removableTags(""))
		}
		return m, nil

	case key.Matches(msg, Keys.EditCaption):
		if m.beginCaptionEdit() {
			m.showInput(inputCaption, "Caption for "+m.editTarget.Filename, "tag, tag, ...", strings.Join(m.editTarget.Tags, ", "))
		}
		return m, nil

	case key.Matches(msg, Keys.Inspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.showInput(inputQuery, "Filter by path", "fuzzy match", filters.Query)
		return m, nil

	case key.Matches(msg, Keys.TagFilter):
		current := ""
		if filters.TagFilter != nil {
			current = *filters.TagFilter
		}
		m.showInput(inputTag, "Filter by tag", "tag (blank for any)", current)
		m.InputModal.SetSuggestions(state.TagSuggestions(current, m.App.Scan.Images(), tagSuggestionLimit))
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(filters.SortBy, filters.SortOrder)
		return m, nil

	case key.Matches(msg, Keys.SortOrder):
		filters.ToggleOrder()
		m.refreshList()
		return m, SavePreferencesCmd(m.Store, *filters)

	case key.Matches(msg, Keys.Captioned):
		filters.CycleCaptioned()
		m.refreshList()
		return m, nil

	case key.Matches(msg, Keys.RatingFilter):
		filters.CycleRatingFilter()
		m.refreshList()
		return m, nil

	case key.Matches(msg, Keys.ResetFilters):
		filters.Reset()
		m.refreshList()
		return m, SavePreferencesCmd(m.Store, *filters)

	case key.Matches(msg, Keys.Escape):
		if filters.Query != "" {
			filters.SetQuery("")
			m.refreshList()
		}
		return m, nil
	}

	m.List.HandleKey(msg.String())
	return m, nil
}

func (m *Model) showInput(purpose inputPurpose, title, placeholder, value string) {
	m.input = purpose
	m.InputModal.Show(title, placeholder, value)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.InputModal, cmd, submitted = m.InputModal.Update(msg)

	if !m.InputModal.IsVisible() {
		m.input = inputNone
		return m, cmd
	}
	if !submitted {
		switch m.input {
		case inputTag, inputAddTag:
			m.InputModal.SetSuggestions(state.TagSuggestions(m.InputModal.Value(), m.App.Scan.Images(), tagSuggestionLimit))
		case inputRemoveTag:
			m.InputModal.SetSuggestions(m.removableTags(m.InputModal.Value()))
		}
		return m, cmd
	}

	value := m.InputModal.Value()
	purpose := m.input
	m.InputModal.Hide()
	m.input = inputNone

	switch purpose {
	case inputOpenProject:
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m.openProject(value)
	case inputQuery:
		m.App.Filters.SetQuery(value)
		m.refreshList()
	case inputTag:
		m.App.Filters.SetTagFilter(value)
		m.refreshList()
	case inputAddTag, inputRemoveTag, inputCaption:
		return m, m.submitCaptionEdit(purpose, value)
	}
	return m, nil
}

// beginCaptionEdit captures the selected image as the target of a caption
// input. It reports false when nothing is selected.
func (m *Model) beginCaptionEdit() bool {
	img, ok := m.List.Selected()
	if !ok {
		return false
	}
	if _, ok := m.App.Project.RootPath(); !ok {
		return false
	}
	m.editTarget = img
	return true
}

// removableTags ranks the target image's own tags against input
func (m Model) removableTags(input string) []string {
	return state.TagSuggestions(input, []domain.ImageEntry{m.editTarget}, tagSuggestionLimit)
}

func (m Model) submitCaptionEdit(purpose inputPurpose, value string) tea.Cmd {
	root, ok := m.App.Project.RootPath()
	if !ok {
		return nil
	}
	img := m.editTarget
	switch purpose {
	case inputAddTag:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return AddTagCmd(m.Backend, root, img, value)
	case inputRemoveTag:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return RemoveTagCmd(m.Backend, root, img, value)
	case inputCaption:
		return WriteCaptionCmd(m.Backend, root, img, strings.Split(value, ","))
	}
	return nil
}

func (m Model) startDuplicateScan() (Model, tea.Cmd) {
	if err := m.Duplicates.Start(m.App.Project); err != nil {
		// shown inline, nothing to send
		return m, nil
	}
	scan := m.Duplicates.Session()
	return m, FindDuplicatesCmd(m.Backend, scan.Session(), scan.Root(), m.scanTimeout)
}

func (m Model) rateSelected() (Model, tea.Cmd) {
	img, ok := m.List.Selected()
	if !ok {
		return m, nil
	}
	root, ok := m.App.Project.RootPath()
	if !ok {
		return m, nil
	}
	return m, SetRatingCmd(m.Backend, root, img, img.Rating.Next())
}
