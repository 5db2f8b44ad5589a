package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/darkroom/internal/domain"
)

const defaultMaxHistory = 50

// HistoryService keeps recently submitted queries, newest first
type HistoryService struct {
	store      domain.HistoryStore
	maxEntries int
	logger     *slog.Logger

	mu sync.Mutex
}

// NewHistoryService creates a history service backed by store
func NewHistoryService(store domain.HistoryStore, maxEntries int, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxHistory
	}
	return &HistoryService{
		store:      store,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Record moves query to the front of history, dropping case-insensitive
// duplicates and anything beyond the size cap
func (h *HistoryService) Record(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	existing, _ := h.store.GetQueries()
	updated := make([]string, 0, len(existing)+1)
	updated = append(updated, query)
	for _, q := range existing {
		if strings.EqualFold(q, query) {
			continue
		}
		updated = append(updated, q)
	}
	if len(updated) > h.maxEntries {
		updated = updated[:h.maxEntries]
	}

	h.logger.Debug("recording query", "query", query, "entries", len(updated))
	return h.store.SaveQueries(updated)
}

// Recent returns up to limit queries, newest first (limit <= 0 returns all)
func (h *HistoryService) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	queries, _ := h.store.GetQueries()
	if limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}
	return append([]string(nil), queries...)
}

// Suggest returns history entries fuzzily matching input, best match first.
// Ties keep recency order. Empty input returns the most recent entries.
func (h *HistoryService) Suggest(input string, limit int) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return h.Recent(limit)
	}

	all := h.Recent(0)
	ranks := fuzzy.RankFindNormalizedFold(input, all)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Clear forgets all history
func (h *HistoryService) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Clear()
}
