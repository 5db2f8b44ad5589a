package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the card grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the card border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Lines of text inside a card: description, author, host
	CardLines = 3

	// CardHeight is the rendered height of one card
	CardHeight = CardLines + BorderHeight

	// MinCardWidth is the narrowest card used when fitting columns to the width
	MinCardWidth = 28

	// Scroll indicator line at the bottom of the grid
	ScrollIndicatorLines = 1
)

// Grid shows one page of photos as a grid of cards
type Grid struct {
	photos []domain.Photo

	// Selection
	cursor    int // index into the visible (filtered) list
	rowOffset int // first visible row

	// Dimensions
	width       int
	height      int
	columns     int // configured column count, 0 fits to width
	cols        int // effective column count
	visibleRows int
	focused     bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int         // indices into photos
	matches      map[int][]int // photo index -> matched byte offsets in the description
}

// NewGrid creates a grid; columns 0 fits the column count to the width
func NewGrid(columns int) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "filter: "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	g := Grid{
		columns:     columns,
		filterInput: ti,
	}
	g.recalc()
	return g
}

// SetPhotos replaces the grid contents and resets selection and filter
func (g *Grid) SetPhotos(photos []domain.Photo) {
	g.photos = photos
	g.cursor = 0
	g.rowOffset = 0
	g.clearFilter()
}

// Photos returns the unfiltered grid contents
func (g Grid) Photos() []domain.Photo {
	return g.photos
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalc()
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// Columns returns the effective number of card columns
func (g Grid) Columns() int {
	return g.cols
}

// recalc derives the column count, card width and visible rows
func (g *Grid) recalc() {
	g.cols = g.columns
	if g.cols <= 0 {
		g.cols = g.width / MinCardWidth
	}
	if g.cols < 1 {
		g.cols = 1
	}

	interior := g.height - ScrollIndicatorLines
	if g.filterActive {
		interior--
	}
	g.visibleRows = interior / CardHeight
	if g.visibleRows < 1 {
		g.visibleRows = 1
	}
}

func (g Grid) cardWidth() int {
	w := g.width / g.cols
	if w < BorderWidth+HorizontalPadding+4 {
		w = BorderWidth + HorizontalPadding + 4
	}
	return w
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position, clamped to the visible items
func (g *Grid) SetCursor(pos int) {
	max := g.itemCount() - 1
	if max < 0 {
		g.cursor = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > max {
		pos = max
	}
	g.cursor = pos
	g.ensureVisible()
}

// SelectedPhoto returns the photo under the cursor
func (g Grid) SelectedPhoto() (domain.Photo, bool) {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return domain.Photo{}, false
	}
	return g.photos[g.mapIndex(g.cursor)], true
}

// IsEmpty returns true if there are no visible items
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// itemCount returns the number of items (accounting for filter)
func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.photos)
}

// mapIndex maps a cursor position to the actual index in photos
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *Grid) ensureVisible() {
	row := g.cursor / g.cols
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+g.visibleRows {
		g.rowOffset = row - g.visibleRows + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalc()
	g.ensureVisible()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.matches = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalc()
}

// filterSource is the searchable text of a photo: description then author
func filterSource(p domain.Photo) string {
	return p.DisplayDescription() + " " + p.DisplayAuthor()
}

// applyFilter filters photos based on the current query
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		g.matches = nil
		return
	}

	sources := make([]string, len(g.photos))
	for i, p := range g.photos {
		sources[i] = filterSource(p)
	}

	found := fuzzy.Find(query, sources)

	g.filteredIdx = make([]int, len(found))
	g.matches = make(map[int][]int, len(found))
	for i, match := range found {
		g.filteredIdx[i] = match.Index
		g.matches[match.Index] = match.MatchedIndexes
	}

	// Reset cursor to first match
	g.cursor = 0
	g.rowOffset = 0
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if g.filterActive && g.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, GridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(keyMsg, GridKeys.Enter):
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case key.Matches(keyMsg, GridKeys.Delete):
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, GridKeys.Left):
		if g.cursor%g.cols > 0 {
			g.cursor--
		}
	case key.Matches(keyMsg, GridKeys.Right):
		if g.cursor%g.cols < g.cols-1 && g.cursor < count-1 {
			g.cursor++
		}
	case key.Matches(keyMsg, GridKeys.Up):
		if g.cursor-g.cols >= 0 {
			g.cursor -= g.cols
		}
	case key.Matches(keyMsg, GridKeys.Down):
		switch {
		case g.cursor+g.cols < count:
			g.cursor += g.cols
		case g.cursor/g.cols < (count-1)/g.cols:
			// Partial last row: land on its last card
			g.cursor = count - 1
		}
	case key.Matches(keyMsg, GridKeys.Home):
		g.cursor = 0
	case key.Matches(keyMsg, GridKeys.End):
		g.cursor = count - 1
	}
	g.ensureVisible()

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	content := g.renderCards()
	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}
	return lipgloss.NewStyle().
		Width(g.width).
		MaxHeight(g.height).
		Render(content)
}

func (g Grid) renderCards() string {
	count := g.itemCount()
	if count == 0 {
		msg := "No photos"
		if g.filterActive && g.filterQuery != "" {
			msg = "No matches"
		}
		return styles.DimStyle.Render(msg)
	}

	totalRows := (count + g.cols - 1) / g.cols
	endRow := g.rowOffset + g.visibleRows
	if endRow > totalRows {
		endRow = totalRows
	}

	width := g.cardWidth()
	var rows []string
	for r := g.rowOffset; r < endRow; r++ {
		var cards []string
		for c := 0; c < g.cols; c++ {
			i := r*g.cols + c
			if i >= count {
				break
			}
			cards = append(cards, g.renderCard(i, width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	indicator := " "
	switch {
	case g.rowOffset > 0 && endRow < totalRows:
		indicator = styles.DimStyle.Render("↑↓ more")
	case g.rowOffset > 0:
		indicator = styles.DimStyle.Render("↑ more")
	case endRow < totalRows:
		indicator = styles.DimStyle.Render("↓ more")
	}

	return strings.Join(rows, "\n") + "\n" + indicator
}

// renderCard renders the card at visible position i
func (g Grid) renderCard(i, width int) string {
	idx := g.mapIndex(i)
	photo := g.photos[idx]

	inner := width - BorderWidth - HorizontalPadding

	desc := photo.DisplayDescription()
	var descLine string
	if m := g.matches[idx]; len(m) > 0 && lipgloss.Width(desc) <= inner {
		descLine = highlightMatches(desc, m)
	} else {
		descLine = styles.TitleStyle.Render(styles.Truncate(desc, inner))
	}

	author := styles.SubtitleStyle.Render(styles.Truncate(photo.DisplayAuthor(), inner))

	host := photo.Host()
	if host == "" {
		host = "no image"
	}
	hostLine := styles.DimStyle.Render(styles.Truncate(host, inner-3))
	if sw := styles.Swatch(photo.Color); sw != "" {
		hostLine = sw + " " + hostLine
	}

	style := styles.CardStyle
	if i == g.cursor && g.focused {
		style = styles.CardSelectedStyle
	}

	return style.
		Width(width - BorderWidth).
		Render(descLine + "\n" + author + "\n" + hostLine)
}

// highlightMatches renders text with the matched byte offsets emphasized.
// Offsets past the text (matches in the author) are ignored.
func highlightMatches(text string, matched []int) string {
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range text {
		if set[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	bar := g.filterInput.View()
	if g.filterQuery != "" {
		bar += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.photos)))
	}
	return bar
}
