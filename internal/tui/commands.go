package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/search"
)

// Command factories for async operations

// DefaultSearchTimeout bounds a fetch when no timeout is configured
const DefaultSearchTimeout = 30 * time.Second

// Searcher fetches one page of results
type Searcher interface {
	Search(ctx context.Context, query string, page int) (domain.SearchPage, error)
	Remember(query string)
}

// Opener shows a photo URL outside the terminal
type Opener interface {
	Open(rawURL string) error
}

// SearchCmd performs req within timeout. When remember is set, a successful
// fetch records the query in history.
func SearchCmd(svc Searcher, req search.Request, remember bool, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := svc.Search(ctx, req.Query, req.Page)
		if err != nil {
			return SearchFailedMsg{Req: req, Err: err}
		}
		if remember {
			svc.Remember(req.Query)
		}
		return SearchResultMsg{Req: req, Page: page}
	}
}

// OpenViewerCmd opens the photo's detail-sized rendition in the viewer
func OpenViewerCmd(viewer Opener, photo domain.Photo) tea.Cmd {
	return func() tea.Msg {
		target := photo.RegularURL
		if target == "" {
			target = photo.FullURL
		}
		if err := viewer.Open(target); err != nil {
			return ErrMsg{Err: err, Context: "opening viewer"}
		}
		return ViewerOpenedMsg{Photo: photo}
	}
}

// ClearHistoryCmd wipes the query history
func ClearHistoryCmd(clear func() error) tea.Cmd {
	return func() tea.Msg {
		if err := clear(); err != nil {
			return ErrMsg{Err: err, Context: "clearing history"}
		}
		return HistoryClearedMsg{}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
