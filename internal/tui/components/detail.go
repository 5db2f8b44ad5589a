package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/tui/styles"
)

// Detail shows the full metadata of one photo as a centered modal
type Detail struct {
	visible bool
	photo   domain.Photo
	width   int
	height  int
}

// NewDetail creates a hidden detail modal
func NewDetail() Detail {
	return Detail{}
}

// Show displays the modal for photo
func (d *Detail) Show(photo domain.Photo) {
	d.photo = photo
	d.visible = true
}

// Hide dismisses the modal
func (d *Detail) Hide() {
	d.visible = false
}

// IsVisible returns whether the modal is shown
func (d Detail) IsVisible() bool {
	return d.visible
}

// Photo returns the photo being shown
func (d Detail) Photo() domain.Photo {
	return d.photo
}

// SetSize sets the area the modal is centered in
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d Detail) modalWidth() int {
	w := d.width * 2 / 3
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}

// View renders the modal, or "" when hidden
func (d Detail) View() string {
	if !d.visible {
		return ""
	}

	inner := d.modalWidth() - 6 // border + padding
	p := d.photo

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(p.DisplayDescription(), inner)))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.LabelStyle.Render(label))
		b.WriteString(styles.Truncate(value, inner-12))
		b.WriteString("\n")
	}

	row("Author", p.DisplayAuthor())
	if dims := p.Dimensions(); dims != "" {
		if o := p.Orientation(); o != "" {
			dims += " · " + o
		}
		row("Size", dims)
	}
	row("Likes", fmt.Sprintf("%d", p.Likes))
	if p.Color != "" {
		b.WriteString(styles.LabelStyle.Render("Color"))
		b.WriteString(styles.Swatch(p.Color) + " " + p.Color)
		b.WriteString("\n")
	}

	if p.HasTags() {
		b.WriteString("\n")
		var tags []string
		for _, t := range p.Tags {
			tags = append(tags, styles.DimBadgeStyle.Render(t))
		}
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	row("Image", p.RegularURL)
	row("Full", p.FullURL)
	row("Page", p.HTMLURL)

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("o open in viewer · esc close"))

	modal := styles.ModalStyle.
		Width(d.modalWidth() - 2).
		Render(b.String())

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, modal)
}
