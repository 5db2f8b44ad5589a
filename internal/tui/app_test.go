package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/search"
)

type searchCall struct {
	query string
	page  int
}

type fakeSearcher struct {
	mu         sync.Mutex
	calls      []searchCall
	remembered []string
	deadline   time.Time
	result     domain.SearchPage
	err        error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchCall{query: query, page: page})
	f.deadline, _ = ctx.Deadline()
	if f.err != nil {
		return domain.SearchPage{}, f.err
	}
	return f.result, nil
}

func (f *fakeSearcher) Remember(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remembered = append(f.remembered, query)
}

func (f *fakeSearcher) lastCall() searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return searchCall{}
	}
	return f.calls[len(f.calls)-1]
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(rawURL string) error {
	f.opened = append(f.opened, rawURL)
	return f.err
}

type fakeHistory struct {
	entries []string
	cleared bool
}

func (f *fakeHistory) Suggest(input string, limit int) []string {
	var out []string
	for _, e := range f.entries {
		if strings.HasPrefix(e, input) {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeHistory) Clear() error {
	f.cleared = true
	f.entries = nil
	return nil
}

func testPhotos(n int) []domain.Photo {
	photos := make([]domain.Photo, n)
	for i := range photos {
		photos[i] = domain.Photo{
			ID:          fmt.Sprintf("p%d", i),
			Description: fmt.Sprintf("photo %d", i),
			Author:      "Jane Doe",
			SmallURL:    fmt.Sprintf("https://images.example.com/p%d?w=400", i),
			RegularURL:  fmt.Sprintf("https://images.example.com/p%d?w=1080", i),
		}
	}
	return photos
}

func newTestModel(t *testing.T, svc *fakeSearcher, opener *fakeOpener) Model {
	t.Helper()
	m := NewModel(svc, opener, Options{
		History: &fakeHistory{entries: []string{"cats", "cars"}},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := updateCmd(t, m, msg)
	return next
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press sends a key and feeds any resulting search message back into the model
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, cmd := updateCmd(t, m, msg)
	if cmd == nil {
		return m
	}
	switch res := cmd().(type) {
	case SearchResultMsg, SearchFailedMsg, ViewerOpenedMsg, ErrMsg, HistoryClearedMsg:
		return update(t, m, res)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, keyRune(r))
	}
	return m
}

func TestModel_CatsScenario(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(2), TotalPages: 3, Total: 41}}
	m := newTestModel(t, svc, &fakeOpener{})

	m, _ = updateCmd(t, m, keyRune('/'))
	if !m.SearchBar.Focused() {
		t.Fatalf("search bar not focused after /")
	}
	m = typeText(t, m, "cats")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := svc.lastCall(); got != (searchCall{query: "cats", page: 1}) {
		t.Fatalf("search call = %+v, want cats page 1", got)
	}
	if len(m.Grid.Photos()) != 2 {
		t.Fatalf("grid shows %d photos, want 2", len(m.Grid.Photos()))
	}
	if len(svc.remembered) != 1 || svc.remembered[0] != "cats" {
		t.Fatalf("remembered = %v, want [cats]", svc.remembered)
	}

	pager := m.renderPager()
	if !strings.Contains(pager, "Page 1 of 3") {
		t.Fatalf("pager = %q, want Page 1 of 3", pager)
	}
	if strings.Contains(pager, "Previous") {
		t.Fatalf("pager shows Previous on page 1: %q", pager)
	}
	if !strings.Contains(pager, "Next") {
		t.Fatalf("pager hides Next on page 1 of 3: %q", pager)
	}

	m = press(t, m, keyRune(']'))
	if got := svc.lastCall(); got != (searchCall{query: "cats", page: 2}) {
		t.Fatalf("search call = %+v, want cats page 2", got)
	}
	if len(svc.remembered) != 1 {
		t.Fatalf("page change recorded history: %v", svc.remembered)
	}

	pager = m.renderPager()
	if !strings.Contains(pager, "Previous") || !strings.Contains(pager, "Page 2 of 3") {
		t.Fatalf("pager on page 2 = %q", pager)
	}
}

func TestModel_PageKeysIgnoredWhenDisabled(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(3), TotalPages: 1}}
	m := newTestModel(t, svc, &fakeOpener{})

	m = press(t, m, keyRune('1'))
	calls := len(svc.calls)

	for _, k := range []rune{'[', ']', 'p', 'n'} {
		var cmd tea.Cmd
		m, cmd = updateCmd(t, m, keyRune(k))
		if cmd != nil {
			t.Fatalf("key %q returned a command on a single-page result", k)
		}
	}
	if len(svc.calls) != calls {
		t.Fatalf("disabled page keys issued %d searches", len(svc.calls)-calls)
	}
	if m.Ctrl.State().Page != 1 {
		t.Fatalf("page = %d, want 1", m.Ctrl.State().Page)
	}
}

func TestModel_InitialLoadErrorHidden(t *testing.T) {
	svc := &fakeSearcher{err: domain.ErrFetchFailed}
	m := newTestModel(t, svc, &fakeOpener{})

	m.Init()
	m = update(t, m, SearchFailedMsg{Req: search.Request{Seq: 1, Page: 1}, Err: domain.ErrFetchFailed})

	if strings.Contains(m.View(), domain.FetchErrorMessage) {
		t.Fatalf("error shown after the initial load")
	}

	// First explicit search fails: message shows, grid stays empty
	m = press(t, m, keyRune('3'))
	if got := svc.lastCall(); got.query != "cats" {
		t.Fatalf("category search query = %q, want cats", got.query)
	}
	if !strings.Contains(m.View(), domain.FetchErrorMessage) {
		t.Fatalf("error not shown after explicit search failed")
	}
	if !m.Grid.IsEmpty() {
		t.Fatalf("grid not empty after first failed search")
	}
}

func TestModel_FailureKeepsResults(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(4), TotalPages: 2}}
	m := newTestModel(t, svc, &fakeOpener{})

	m = press(t, m, keyRune('2'))
	if len(m.Grid.Photos()) != 4 {
		t.Fatalf("grid = %d photos, want 4", len(m.Grid.Photos()))
	}

	svc.err = errors.New("boom")
	m = press(t, m, keyRune('n'))

	if len(m.Grid.Photos()) != 4 {
		t.Fatalf("failed fetch changed grid to %d photos", len(m.Grid.Photos()))
	}
	if got := m.Ctrl.State().Results; len(got) != 4 {
		t.Fatalf("failed fetch changed results to %d", len(got))
	}
	if !strings.Contains(m.renderFooter(), domain.FetchErrorMessage) {
		t.Fatalf("footer = %q, want error message", m.renderFooter())
	}
}

func TestModel_DetailOpenClose(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(3), TotalPages: 1}}
	m := newTestModel(t, svc, &fakeOpener{})
	m = press(t, m, keyRune('1'))

	m = update(t, m, keyRune('l'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	st := m.Ctrl.State()
	if !st.ModalVisible || !m.Detail.IsVisible() {
		t.Fatalf("detail not visible after enter")
	}
	if st.Selected == nil || st.Selected.ID != "p1" {
		t.Fatalf("selected = %+v, want p1", st.Selected)
	}
	if !strings.Contains(m.View(), "photo 1") {
		t.Fatalf("detail view does not show the photo description")
	}

	// q closes the modal instead of quitting
	m, cmd := updateCmd(t, m, keyRune('q'))
	if cmd != nil {
		t.Fatalf("q in detail returned a command")
	}

	st = m.Ctrl.State()
	if st.ModalVisible || m.Detail.IsVisible() {
		t.Fatalf("detail still visible after close")
	}
	if st.Selected == nil || st.Selected.ID != "p1" {
		t.Fatalf("close changed selection to %+v", st.Selected)
	}
}

func TestModel_OpenViewer(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(2), TotalPages: 1}}
	opener := &fakeOpener{}
	m := newTestModel(t, svc, opener)
	m = press(t, m, keyRune('1'))

	m = press(t, m, keyRune('o'))
	if len(opener.opened) != 1 || opener.opened[0] != "https://images.example.com/p0?w=1080" {
		t.Fatalf("opened = %v", opener.opened)
	}
	if !strings.Contains(m.StatusMsg, "photo 0") {
		t.Fatalf("status = %q", m.StatusMsg)
	}

	opener.err = errors.New("no viewer")
	m = press(t, m, keyRune('o'))
	if !m.StatusIsErr {
		t.Fatalf("viewer failure not reported as error status")
	}
}

func TestModel_FilterKeepsKeysFromGlobalBindings(t *testing.T) {
	photos := testPhotos(3)
	photos[2].Description = "tabby on a sofa"
	svc := &fakeSearcher{result: domain.SearchPage{Photos: photos, TotalPages: 2}}
	m := newTestModel(t, svc, &fakeOpener{})
	m = press(t, m, keyRune('1'))
	calls := len(svc.calls)

	m = update(t, m, keyRune('f'))
	if !m.Grid.IsFilterTyping() {
		t.Fatalf("filter not active after f")
	}

	// 'n' is typed into the filter rather than paging
	m = typeText(t, m, "tabny")
	if len(svc.calls) != calls {
		t.Fatalf("typing in the filter issued a search")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Grid.IsFiltering() {
		t.Fatalf("filter still active after esc")
	}
}

func TestModel_SearchBarHistorySuggestions(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(1), TotalPages: 1}}
	m := newTestModel(t, svc, &fakeOpener{})

	m = update(t, m, keyRune('/'))
	m = typeText(t, m, "ca")
	if got := m.SearchBar.Suggestions(); len(got) != 2 {
		t.Fatalf("suggestions = %v, want 2", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := svc.lastCall(); got.query != "cats" {
		t.Fatalf("submitted %q, want the first suggestion", got.query)
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{}, &fakeOpener{})

	m = update(t, m, keyRune('?'))
	if m.State != StateHelp {
		t.Fatalf("state = %v, want help", m.State)
	}
	if !strings.Contains(m.View(), "Press any key") {
		t.Fatalf("help view missing return hint")
	}
	m = update(t, m, keyRune('x'))
	if m.State != StateBrowsing {
		t.Fatalf("help not dismissed")
	}

	_, cmd := updateCmd(t, m, keyRune('q'))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestModel_ClearHistory(t *testing.T) {
	hist := &fakeHistory{entries: []string{"cats"}}
	m := NewModel(&fakeSearcher{}, &fakeOpener{}, Options{
		History: hist,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !hist.cleared {
		t.Fatalf("history not cleared")
	}
	if m.StatusMsg == "" {
		t.Fatalf("no status after clearing history")
	}
}

func TestSearchCmd_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "default when unset", timeout: 0, want: DefaultSearchTimeout},
		{name: "configured above default", timeout: 90 * time.Second, want: 90 * time.Second},
		{name: "configured below default", timeout: 5 * time.Second, want: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSearcher{}
			start := time.Now()
			SearchCmd(svc, search.Request{Query: "cats", Page: 1}, false, tt.timeout)()

			got := svc.deadline.Sub(start)
			if got < tt.want-5*time.Second || got > tt.want+time.Second {
				t.Fatalf("deadline in %v, want about %v", got, tt.want)
			}
		})
	}
}

func TestModel_SearchUsesConfiguredTimeout(t *testing.T) {
	svc := &fakeSearcher{result: domain.SearchPage{Photos: testPhotos(1), TotalPages: 1}}
	m := NewModel(svc, &fakeOpener{}, Options{
		Timeout: 2 * time.Minute,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = updateCmd(t, m, keyRune('/'))
	m = typeText(t, m, "cats")
	start := time.Now()
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := svc.deadline.Sub(start); got <= DefaultSearchTimeout {
		t.Fatalf("deadline in %v, want the configured 2m", got)
	}
}
