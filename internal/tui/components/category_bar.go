package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/tui/styles"
)

// CategoryBar renders the numbered category shortcuts
type CategoryBar struct {
	categories []domain.Category
	active     string // current query, matched case-insensitively
}

// NewCategoryBar creates a bar for the given categories
func NewCategoryBar(categories []domain.Category) CategoryBar {
	return CategoryBar{categories: categories}
}

// SetActive marks the category whose label equals query
func (c *CategoryBar) SetActive(query string) {
	c.active = query
}

// At returns the category bound to 1-based shortcut n
func (c CategoryBar) At(n int) (domain.Category, bool) {
	if n < 1 || n > len(c.categories) {
		return "", false
	}
	return c.categories[n-1], true
}

// View renders the bar
func (c CategoryBar) View() string {
	parts := make([]string, 0, len(c.categories))
	for i, cat := range c.categories {
		label := fmt.Sprintf("%d %s", i+1, cat.Title())
		if strings.EqualFold(strings.TrimSpace(c.active), cat.String()) {
			parts = append(parts, styles.CategoryActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.CategoryStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
