package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/darkroom/internal/domain"
	"github.com/rs/xid"
)

// SearchService runs photo searches against the remote API
type SearchService struct {
	repo    domain.PhotoRepository
	history *HistoryService
	logger  *slog.Logger
}

// NewSearchService creates a new search service. history may be nil.
func NewSearchService(repo domain.PhotoRepository, history *HistoryService, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		repo:    repo,
		history: history,
		logger:  logger,
	}
}

// Search fetches one page of results. Every failure wraps domain.ErrFetchFailed.
func (s *SearchService) Search(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	reqID := xid.New().String()
	logger := s.logger.With("request", reqID, "query", query, "page", page)

	if page < 1 {
		logger.Warn("search rejected", "error", domain.ErrInvalidPage)
		return domain.SearchPage{}, fmt.Errorf("%w: %w", domain.ErrFetchFailed, domain.ErrInvalidPage)
	}

	logger.Debug("searching")
	start := time.Now()

	result, err := s.repo.SearchPhotos(ctx, query, page, domain.PageSize)
	if err != nil {
		logger.Warn("search failed", "error", err, "elapsed", time.Since(start))
		if !errors.Is(err, domain.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		return domain.SearchPage{}, err
	}

	logger.Info("search complete",
		"results", len(result.Photos),
		"totalPages", result.TotalPages,
		"elapsed", time.Since(start),
	)
	return result, nil
}

// Remember records an explicitly submitted query in history
func (s *SearchService) Remember(query string) {
	if s.history == nil || strings.TrimSpace(query) == "" {
		return
	}
	if err := s.history.Record(query); err != nil {
		s.logger.Warn("failed to record history", "query", query, "error", err)
	}
}

