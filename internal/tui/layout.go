package tui

// Vertical chrome around the grid: header, category bar, pager, footer
const (
	HeaderHeight   = 1
	CategoryHeight = 1
	PagerHeight    = 1
	FooterHeight   = 1

	ChromeHeight = HeaderHeight + CategoryHeight + PagerHeight + FooterHeight

	// Width of the app title in the header
	TitleWidth = 10
)

// gridHeight returns the rows left for cards after chrome and extra lines
func (m Model) gridHeight(extra int) int {
	return max(m.Height-ChromeHeight-extra, 1)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetWidth(m.Width - TitleWidth)
	m.Grid.SetSize(m.Width, m.gridHeight(0))
	m.Detail.SetSize(m.Width, m.Height)
	m.Help.Width = m.Width
}
