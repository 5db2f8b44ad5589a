package tui

import (
	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/mmcdole/darkroom/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error outside the search flow
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultMsg carries a fetched page for the request that asked for it
type SearchResultMsg struct {
	Req  search.Request
	Page domain.SearchPage
}

// SearchFailedMsg reports a failed fetch
type SearchFailedMsg struct {
	Req search.Request
	Err error
}

// ViewerOpenedMsg signals that the external viewer was launched
type ViewerOpenedMsg struct {
	Photo domain.Photo
}

// HistoryClearedMsg signals that the query history was wiped
type HistoryClearedMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
