package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/search"
	"github.com/mmcdole/darkroom/internal/tui/components"
	"github.com/mmcdole/darkroom/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// StatusDuration is how long transient status messages stay in the footer
const StatusDuration = 3 * time.Second

// QueryHistory supplies past queries to the search bar
type QueryHistory interface {
	Suggest(input string, limit int) []string
	Clear() error
}

// Options configures a Model
type Options struct {
	InitialQuery string        // Loaded on startup without counting as a search
	GridColumns  int           // 0 fits columns to the terminal width
	Timeout      time.Duration // Per-fetch deadline; 0 uses DefaultSearchTimeout
	History      QueryHistory  // nil disables suggestions
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	SearchSvc Searcher
	Viewer    Opener
	History   QueryHistory

	// Search session state; mutated only from Update
	Ctrl *search.Controller

	// UI Components
	SearchBar  components.SearchBar
	Categories components.CategoryBar
	Grid       components.Grid
	Detail     components.Detail
	Spinner    spinner.Model
	Help       help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool

	initialQuery string
	timeout      time.Duration
	logger       *slog.Logger
}

// NewModel creates a new application model
func NewModel(searchSvc Searcher, viewer Opener, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var suggest components.SuggestFunc
	if opts.History != nil {
		suggest = opts.History.Suggest
	}

	grid := components.NewGrid(opts.GridColumns)
	grid.SetFocused(true)

	bar := components.NewSearchBar(suggest)
	bar.SetValue(opts.InitialQuery)
	categories := components.NewCategoryBar(domain.Categories)
	categories.SetActive(opts.InitialQuery)

	return Model{
		State:        StateBrowsing,
		SearchSvc:    searchSvc,
		Viewer:       viewer,
		History:      opts.History,
		Ctrl:         search.NewController(),
		SearchBar:    bar,
		Categories:   categories,
		Grid:         grid,
		Detail:       components.NewDetail(),
		Spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		Help:         help.New(),
		initialQuery: opts.InitialQuery,
		timeout:      opts.Timeout,
		logger:       logger,
	}
}

// Init starts the spinner and the startup load
func (m Model) Init() tea.Cmd {
	req := m.Ctrl.Initial(m.initialQuery)
	m.logger.Debug("initial load", "query", req.Query, "seq", req.Seq)

	return tea.Batch(
		m.Spinner.Tick,
		SearchCmd(m.SearchSvc, req, false, m.timeout),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case SearchResultMsg:
		m.logger.Debug("search result applied",
			"seq", msg.Req.Seq, "query", msg.Req.Query, "page", msg.Req.Page,
			"results", len(msg.Page.Photos), "total_pages", msg.Page.TotalPages)
		m.Ctrl.ApplySuccess(msg.Req, msg.Page)
		m.syncFromController()
		return m, nil

	case SearchFailedMsg:
		m.logger.Warn("search failed",
			"seq", msg.Req.Seq, "query", msg.Req.Query, "page", msg.Req.Page, "error", msg.Err)
		m.Ctrl.ApplyFailure(msg.Req, msg.Err)
		return m, nil

	case ViewerOpenedMsg:
		return m, m.setStatus("Opened "+msg.Photo.DisplayDescription()+" in viewer", false)

	case HistoryClearedMsg:
		return m, m.setStatus("Search history cleared", false)

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input internals
	if m.SearchBar.Focused() {
		var cmd tea.Cmd
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit starts an explicit search for query
func (m *Model) submit(query string) tea.Cmd {
	req := m.Ctrl.Submit(query)
	m.SearchBar.SetValue(query)
	m.Categories.SetActive(query)
	m.logger.Debug("search submitted", "query", req.Query, "seq", req.Seq)
	return SearchCmd(m.SearchSvc, req, true, m.timeout)
}

// selectCategory searches for the category bound to shortcut n
func (m *Model) selectCategory(n int) tea.Cmd {
	cat, ok := m.Categories.At(n)
	if !ok {
		return nil
	}
	req := m.Ctrl.SelectCategory(cat)
	m.SearchBar.SetValue(req.Query)
	m.Categories.SetActive(req.Query)
	m.logger.Debug("category selected", "category", cat.String(), "seq", req.Seq)
	return SearchCmd(m.SearchSvc, req, true, m.timeout)
}

// changePage moves one page back or forward; disabled directions are ignored
func (m *Model) changePage(delta int) tea.Cmd {
	req, ok := m.Ctrl.ChangePage(delta)
	if !ok {
		return nil
	}
	m.logger.Debug("page change", "query", req.Query, "page", req.Page, "seq", req.Seq)
	return SearchCmd(m.SearchSvc, req, false, m.timeout)
}

// openDetail shows the modal for the photo under the cursor
func (m *Model) openDetail() {
	photo, ok := m.Grid.SelectedPhoto()
	if !ok {
		return
	}
	if m.Ctrl.OpenDetail(photo) {
		m.Detail.Show(photo)
	}
}

// closeDetail hides the modal and keeps the selection
func (m *Model) closeDetail() {
	m.Ctrl.CloseDetail()
	m.Detail.Hide()
}

// openViewer opens the photo in the modal, or the one under the cursor
func (m *Model) openViewer() tea.Cmd {
	if m.Viewer == nil {
		return nil
	}
	if m.Detail.IsVisible() {
		return OpenViewerCmd(m.Viewer, m.Detail.Photo())
	}
	photo, ok := m.Grid.SelectedPhoto()
	if !ok {
		return nil
	}
	return OpenViewerCmd(m.Viewer, photo)
}

// syncFromController pushes controller state into the components
func (m *Model) syncFromController() {
	st := m.Ctrl.State()
	m.Grid.SetPhotos(st.Results)
	if !st.ModalVisible {
		m.Detail.Hide()
	}
}

// setStatus shows a transient footer message
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(StatusDuration)
}
