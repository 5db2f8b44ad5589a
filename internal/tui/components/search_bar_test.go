package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/darkroom/internal/domain"
)

func staticSuggest(entries ...string) SuggestFunc {
	return func(input string, limit int) []string {
		var out []string
		for _, e := range entries {
			if strings.HasPrefix(e, input) {
				out = append(out, e)
			}
		}
		if len(out) > limit {
			out = out[:limit]
		}
		return out
	}
}

func TestSearchBar_SubmitAndCancel(t *testing.T) {
	s := NewSearchBar(nil)
	s.Focus()
	for _, r := range "  birds " {
		s, _, _ = s.Update(keyRune(r))
	}

	var submitted bool
	s, _, submitted = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !submitted {
		t.Fatalf("enter did not submit")
	}
	if s.Value() != "birds" {
		t.Fatalf("value = %q, want trimmed birds", s.Value())
	}
	if s.Focused() {
		t.Fatalf("bar still focused after submit")
	}

	s.Focus()
	s, _, submitted = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if submitted || s.Focused() {
		t.Fatalf("esc should blur without submitting")
	}
}

func TestSearchBar_CyclesSuggestions(t *testing.T) {
	s := NewSearchBar(staticSuggest("cats", "cars", "dogs"))
	s.Focus()
	for _, r := range "ca" {
		s, _, _ = s.Update(keyRune(r))
	}

	if got := s.Suggestions(); len(got) != 2 {
		t.Fatalf("suggestions = %v, want 2", got)
	}

	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.Value() != "cats" {
		t.Fatalf("first suggestion = %q", s.Value())
	}
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.Value() != "cars" {
		t.Fatalf("second suggestion = %q", s.Value())
	}
	// Past the end restores what was typed
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.Value() != "ca" {
		t.Fatalf("after cycling = %q, want typed text", s.Value())
	}
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	if s.Value() != "cars" {
		t.Fatalf("up from typed = %q, want last suggestion", s.Value())
	}

	if !strings.Contains(s.SuggestionsView(40), "cats") {
		t.Fatalf("suggestions view missing entries")
	}
}

func TestSearchBar_IgnoresInputWhenBlurred(t *testing.T) {
	s := NewSearchBar(nil)
	s, _, submitted := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if submitted {
		t.Fatalf("blurred bar submitted")
	}
	if s.SuggestionsView(40) != "" {
		t.Fatalf("blurred bar shows suggestions")
	}
}

func TestCategoryBar(t *testing.T) {
	bar := NewCategoryBar(domain.Categories)

	cat, ok := bar.At(3)
	if !ok || cat != domain.CategoryCats {
		t.Fatalf("At(3) = %q, %v", cat, ok)
	}
	if _, ok := bar.At(0); ok {
		t.Fatalf("At(0) should be out of range")
	}
	if _, ok := bar.At(5); ok {
		t.Fatalf("At(5) should be out of range")
	}

	view := bar.View()
	for _, want := range []string{"1 Nature", "2 Birds", "3 Cats", "4 Shoes"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestDetail_ShowsMetadata(t *testing.T) {
	d := NewDetail()
	d.SetSize(120, 40)
	if d.View() != "" {
		t.Fatalf("hidden detail rendered content")
	}

	d.Show(domain.Photo{
		ID:          "abc",
		Description: "Misty forest",
		Author:      "Jane Doe",
		Username:    "jane",
		Width:       4000,
		Height:      3000,
		Likes:       7,
		Tags:        []string{"forest", "fog"},
		RegularURL:  "https://images.example.com/abc",
	})

	view := d.View()
	for _, want := range []string{"Misty forest", "Jane Doe (@jane)", "4000×3000", "forest", "fog"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q", want)
		}
	}

	d.Hide()
	if d.IsVisible() {
		t.Fatalf("detail visible after Hide")
	}
	if d.Photo().ID != "abc" {
		t.Fatalf("Hide dropped the photo")
	}
}
