package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/darkroom/internal/tui/styles"
)

// MaxSuggestions is how many history suggestions the search bar shows
const MaxSuggestions = 5

// SuggestFunc returns up to limit past queries matching input
type SuggestFunc func(input string, limit int) []string

// SearchBar is the query input with history suggestions
type SearchBar struct {
	input   textinput.Model
	suggest SuggestFunc

	typed       string   // text the suggestions were computed from
	suggestions []string // current suggestions, best first
	choice      int      // -1 when no suggestion is chosen
}

// NewSearchBar creates a search bar; suggest may be nil
func NewSearchBar(suggest SuggestFunc) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search photos..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{
		input:   ti,
		suggest: suggest,
		choice:  -1,
	}
}

// Focus starts editing and shows suggestions for the current text
func (s *SearchBar) Focus() tea.Cmd {
	s.refreshSuggestions()
	s.input.CursorEnd()
	return s.input.Focus()
}

// Blur stops editing
func (s *SearchBar) Blur() {
	s.input.Blur()
	s.suggestions = nil
	s.choice = -1
}

// Focused reports whether the bar is being edited
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the trimmed query text
func (s SearchBar) Value() string {
	return strings.TrimSpace(s.input.Value())
}

// SetValue replaces the query text, e.g. when a category is picked
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// SetWidth sets the input width
func (s *SearchBar) SetWidth(w int) {
	s.input.Width = w - lipgloss.Width(s.input.Prompt) - 1
	if s.input.Width < 10 {
		s.input.Width = 10
	}
}

// Suggestions returns the suggestions currently offered
func (s SearchBar) Suggestions() []string {
	return s.suggestions
}

func (s *SearchBar) refreshSuggestions() {
	s.typed = s.input.Value()
	s.choice = -1
	if s.suggest == nil {
		s.suggestions = nil
		return
	}
	s.suggestions = s.suggest(strings.TrimSpace(s.typed), MaxSuggestions)
}

// cycle moves through the suggestions; stepping past either end restores
// the typed text
func (s *SearchBar) cycle(delta int) {
	if len(s.suggestions) == 0 {
		return
	}
	s.choice += delta
	switch {
	case s.choice >= len(s.suggestions):
		s.choice = -1
	case s.choice < -1:
		s.choice = len(s.suggestions) - 1
	}
	if s.choice == -1 {
		s.input.SetValue(s.typed)
	} else {
		s.input.SetValue(s.suggestions[s.choice])
	}
	s.input.CursorEnd()
}

// Update handles input events, returns (bar, cmd, submitted)
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, SearchBarKeys.Submit):
			s.Blur()
			return s, nil, true
		case key.Matches(keyMsg, SearchBarKeys.Cancel):
			s.Blur()
			return s, nil, false
		case key.Matches(keyMsg, SearchBarKeys.Prev):
			s.cycle(-1)
			return s, nil, false
		case key.Matches(keyMsg, SearchBarKeys.Next):
			s.cycle(1)
			return s, nil, false
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refreshSuggestions()
	}
	return s, cmd, false
}

// View renders the input line
func (s SearchBar) View() string {
	return s.input.View()
}

// SuggestionsView renders the suggestion list shown under the input, or ""
func (s SearchBar) SuggestionsView(width int) string {
	if !s.input.Focused() || len(s.suggestions) == 0 {
		return ""
	}

	var lines []string
	for i, q := range s.suggestions {
		line := styles.Truncate(q, width-4)
		if i == s.choice {
			lines = append(lines, styles.AccentStyle.Render("› "+line))
		} else {
			lines = append(lines, styles.DimStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}
