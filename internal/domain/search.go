package domain

import "context"

// PhotoRepository searches the remote photo API
type PhotoRepository interface {
	// SearchPhotos returns one page of results for query.
	// page is 1-based; perPage is normally PageSize.
	SearchPhotos(ctx context.Context, query string, page, perPage int) (SearchPage, error)
}

// HistoryStore persists recently submitted queries, newest first
type HistoryStore interface {
	GetQueries() ([]string, bool)
	SaveQueries(queries []string) error
	Clear() error
	Close() error
}
