package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/darkroom/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.Detail.IsVisible() {
		return m.Detail.View()
	}

	// Suggestions push the grid down while the search bar is open
	suggestions := m.SearchBar.SuggestionsView(m.Width - TitleWidth)
	extra := 0
	if suggestions != "" {
		extra = lipgloss.Height(suggestions)
	}

	grid := m.Grid
	grid.SetSize(m.Width, m.gridHeight(extra))

	parts := []string{m.renderHeader()}
	if suggestions != "" {
		parts = append(parts, lipgloss.NewStyle().PaddingLeft(TitleWidth).Render(suggestions))
	}
	parts = append(parts,
		m.Categories.View(),
		lipgloss.NewStyle().Height(m.gridHeight(extra)).Render(grid.View()),
		m.renderPager(),
		m.renderFooter(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title and search input
func (m Model) renderHeader() string {
	title := styles.AccentStyle.Bold(true).Width(TitleWidth).Render("darkroom")
	return title + m.SearchBar.View()
}

// renderPager renders "Page P of T" with the enabled directions
func (m Model) renderPager() string {
	st := m.Ctrl.State()
	if st.TotalPages == 0 {
		if st.Attempted && !m.Ctrl.Loading() && st.Err == nil {
			return styles.DimStyle.Render(" No photos found")
		}
		return " "
	}

	var b strings.Builder
	b.WriteString(" ")
	if m.Ctrl.CanPrev() {
		b.WriteString(styles.AccentStyle.Render("‹ Previous"))
		b.WriteString("  ")
	}
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", st.Page, st.TotalPages)))
	if m.Ctrl.CanNext() {
		b.WriteString("  ")
		b.WriteString(styles.AccentStyle.Render("Next ›"))
	}
	if st.Total > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  · %d photos", st.Total)))
	}
	return b.String()
}

// renderFooter renders loading, error or status on the left and key hints on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Ctrl.Loading():
		q := m.Ctrl.State().Query
		left = m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Searching %q...", q))
	case m.Ctrl.ErrorVisible():
		left = styles.ErrorStyle.Render(m.Ctrl.ErrorMessage())
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := m.Help.ShortHelpView([]key.Binding{Keys.Search, Keys.PrevPage, Keys.NextPage, Keys.Help})

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return " " + left
	}
	return " " + left + strings.Repeat(" ", gap) + right + " "
}

// renderHelp renders the full key reference as a centered modal
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true
	content := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(Keys) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
