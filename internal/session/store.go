package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/callvault/callvault/internal/model"
)

var (
	// ErrNotFound reports a token naming neither a harvest nor a filtered view.
	ErrNotFound = errors.New("session not found")
	// ErrNoFilter reports a filter request with every predicate empty.
	ErrNoFilter = errors.New("no filter applied")
)

// filteredView is a filtered result set together with the predicates that
// produced it.
type filteredView struct {
	records []model.Record
	filters Filters
}

// Store maps opaque tokens to harvested result sets and to filtered views.
// Entries live until Clear or process end; there is no eviction and no TTL.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	harvests map[string][]model.Record
	filtered map[string]filteredView
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		harvests: make(map[string][]model.Record),
		filtered: make(map[string]filteredView),
	}
}

// Get returns the harvested result set for token, reporting whether the
// token is known.
func (s *Store) Get(token string) ([]model.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.harvests[token]
	return records, ok
}

// Put stores a harvested result set under a fresh token and returns the token.
func (s *Store) Put(records []model.Record) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.harvests[token] = records
	s.mu.Unlock()
	return token
}

// Clear drops every harvest and filtered view, reporting whether anything
// was present.
func (s *Store) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	present := len(s.harvests) > 0 || len(s.filtered) > 0
	s.harvests = make(map[string][]model.Record)
	s.filtered = make(map[string]filteredView)
	return present
}

// Filter derives a filtered view from the session named by token and
// registers it under a new token.
//
// A token naming a filtered view whose stored predicates equal f reuses that
// view's contents; with different predicates the view's records are filtered
// again (chained refinement). A token naming a harvest requires at least one
// active predicate. Any other token is ErrNotFound.
func (s *Store) Filter(token string, f Filters) ([]model.Record, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Record
	if view, ok := s.filtered[token]; ok {
		if view.filters == f {
			result = view.records
		} else {
			result = apply(view.records, f)
		}
	} else if records, ok := s.harvests[token]; ok {
		if f.Empty() {
			return nil, "", ErrNoFilter
		}
		result = apply(records, f)
	} else {
		return nil, "", ErrNotFound
	}

	newToken := uuid.NewString()
	s.filtered[newToken] = filteredView{records: result, filters: f}
	return result, newToken, nil
}

func apply(records []model.Record, f Filters) []model.Record {
	filtered := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
