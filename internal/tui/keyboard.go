package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes a key press to the layer that owns input right now:
// help overlay, detail modal, search bar, grid filter, then global bindings.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.Detail.IsVisible() {
		return m.handleDetailKeys(msg)
	}

	if m.SearchBar.Focused() {
		var cmd tea.Cmd
		var submitted bool
		m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
		if submitted {
			m.Grid.SetFocused(true)
			return m, m.submit(m.SearchBar.Value())
		}
		if !m.SearchBar.Focused() {
			m.Grid.SetFocused(true)
		}
		return m, cmd
	}

	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Grid.SetFocused(false)
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.Category):
		return m, m.selectCategory(int(msg.Runes[0] - '0'))

	case key.Matches(msg, Keys.PrevPage):
		return m, m.changePage(-1)

	case key.Matches(msg, Keys.NextPage):
		return m, m.changePage(1)

	case key.Matches(msg, Keys.Filter):
		if !m.Grid.IsEmpty() {
			m.Grid.ToggleFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Open):
		m.openDetail()
		return m, nil

	case key.Matches(msg, Keys.OpenViewer):
		return m, m.openViewer()

	case key.Matches(msg, Keys.ClearHistory):
		if m.History == nil {
			return m, nil
		}
		return m, ClearHistoryCmd(m.History.Clear)

	case msg.String() == "esc":
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
		}
		return m, nil
	}

	// Everything else is grid navigation
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

// handleDetailKeys handles keys while the detail modal is open
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Close):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, Keys.OpenViewer):
		return m, m.openViewer()
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil
	}
	return m, nil
}
