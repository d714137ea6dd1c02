package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"learntube/internal/core/domain"
	"learntube/internal/core/ports"
)

// SearchMaxResults is the page size the search screen asks for.
const SearchMaxResults = 20

// SearchSession drives the search screen: the query, the sort picker and
// the result state.
type SearchSession struct {
	catalog ports.VideoCatalog
	logger  zerolog.Logger
	op      *Operation[[]domain.VideoRecord]

	mu       sync.Mutex
	query    string
	active   domain.SortPreference
	pending  domain.SortPreference
	sortOpen bool
}

// NewSearchSession creates an idle session sorted by latest upload.
func NewSearchSession(catalog ports.VideoCatalog, logger zerolog.Logger) *SearchSession {
	return &SearchSession{
		catalog: catalog,
		logger:  logger.With().Str("component", "search").Logger(),
		op:      NewOperation[[]domain.VideoRecord](),
		active:  domain.SortDateLatest,
		pending: domain.SortDateLatest,
	}
}

// State returns the current snapshot.
func (s *SearchSession) State() State[[]domain.VideoRecord] {
	return s.op.State()
}

// OnChange registers a listener for state transitions.
func (s *SearchSession) OnChange(fn func(State[[]domain.VideoRecord])) {
	s.op.OnChange(fn)
}

// Query returns the text currently in the search box.
func (s *SearchSession) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Sort returns the active sort preference.
func (s *SearchSession) Sort() domain.SortPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// PendingSort returns the picker selection and whether the picker is open.
func (s *SearchSession) PendingSort() (domain.SortPreference, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.sortOpen
}

// Navigate handles a query handed over by another screen.
func (s *SearchSession) Navigate(ctx context.Context, query string) State[[]domain.VideoRecord] {
	return s.Submit(ctx, query)
}

// Submit stores query and searches for it.
func (s *SearchSession) Submit(ctx context.Context, query string) State[[]domain.VideoRecord] {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
	return s.perform(ctx, query)
}

// ChangeText tracks typing. Clearing the box drops results and errors
// without searching.
func (s *SearchSession) ChangeText(text string) {
	s.mu.Lock()
	s.query = text
	s.mu.Unlock()
	if strings.TrimSpace(text) == "" {
		s.op.Reset()
	}
}

// Retry repeats the search for the current query.
func (s *SearchSession) Retry(ctx context.Context) State[[]domain.VideoRecord] {
	return s.perform(ctx, s.Query())
}

// OpenSort opens the picker with the active preference preselected.
func (s *SearchSession) OpenSort() {
	s.mu.Lock()
	s.pending = s.active
	s.sortOpen = true
	s.mu.Unlock()
}

// SelectSort changes the picker selection only.
func (s *SearchSession) SelectSort(pref domain.SortPreference) error {
	if _, ok := domain.ParseSortPreference(string(pref)); !ok {
		return fmt.Errorf("unknown sort preference %q", pref)
	}
	s.mu.Lock()
	s.pending = pref
	s.mu.Unlock()
	return nil
}

// CancelSort closes the picker and keeps the active preference.
func (s *SearchSession) CancelSort() {
	s.mu.Lock()
	s.pending = s.active
	s.sortOpen = false
	s.mu.Unlock()
}

// ConfirmSort makes the picker selection active and searches again when a
// query is present.
func (s *SearchSession) ConfirmSort(ctx context.Context) State[[]domain.VideoRecord] {
	s.mu.Lock()
	s.active = s.pending
	s.sortOpen = false
	query := s.query
	s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return s.op.State()
	}
	return s.perform(ctx, query)
}

func (s *SearchSession) perform(ctx context.Context, raw string) State[[]domain.VideoRecord] {
	query := strings.TrimSpace(raw)
	if query == "" {
		s.op.Reset()
		return s.op.State()
	}

	pref := s.Sort()
	req := domain.SearchRequest{
		Query:      query,
		MaxResults: SearchMaxResults,
		Order:      pref.Order(),
	}

	log := s.logger.With().
		Str("request_id", uuid.NewString()).
		Str("query", query).
		Str("sort", string(pref)).
		Logger()
	log.Debug().Msg("searching")

	state, applied := s.op.Run(ctx, func(ctx context.Context) ([]domain.VideoRecord, error) {
		records, err := s.catalog.SearchVideos(ctx, req)
		if err != nil {
			return nil, err
		}
		if pref.ReverseLocally() {
			records = slices.Clone(records)
			slices.Reverse(records)
		}
		return records, nil
	}, describeSearchError)

	switch {
	case !applied:
		log.Debug().Msg("discarded stale search response")
	case state.Phase == PhaseFailed:
		log.Warn().Err(state.Err).Msg("search failed")
	default:
		log.Info().Int("results", len(state.Data)).Msg("search completed")
	}
	return state
}
