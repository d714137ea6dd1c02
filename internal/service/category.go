package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"learntube/internal/core/domain"
	"learntube/internal/core/ports"
)

// CategoryPreviewSize is how many records a category row keeps.
const CategoryPreviewSize = 4

// HomeLoadLimit caps concurrent catalog calls made by Home.LoadAll.
const HomeLoadLimit = 4

// CategoryFeed drives one category row of the home screen.
type CategoryFeed struct {
	catalog ports.VideoCatalog
	logger  zerolog.Logger
	op      *Operation[[]domain.VideoRecord]

	mu       sync.Mutex
	category domain.Category
}

// NewCategoryFeed creates an idle feed for category.
func NewCategoryFeed(catalog ports.VideoCatalog, category domain.Category, logger zerolog.Logger) *CategoryFeed {
	return &CategoryFeed{
		catalog:  catalog,
		logger:   logger.With().Str("component", "category_feed").Logger(),
		op:       NewOperation[[]domain.VideoRecord](),
		category: category,
	}
}

// Category returns the category the feed currently shows.
func (f *CategoryFeed) Category() domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.category
}

// ShowMoreQuery is the query the search screen opens with from this row.
func (f *CategoryFeed) ShowMoreQuery() string {
	return string(f.Category())
}

// State returns the current snapshot.
func (f *CategoryFeed) State() State[[]domain.VideoRecord] {
	return f.op.State()
}

// OnChange registers a listener for state transitions.
func (f *CategoryFeed) OnChange(fn func(State[[]domain.VideoRecord])) {
	f.op.OnChange(fn)
}

// Load switches the feed to category and fetches its preview.
func (f *CategoryFeed) Load(ctx context.Context, category domain.Category) State[[]domain.VideoRecord] {
	f.mu.Lock()
	f.category = category
	f.mu.Unlock()

	log := f.logger.With().
		Str("request_id", uuid.NewString()).
		Str("category", string(category)).
		Logger()
	log.Debug().Msg("loading category")

	state, applied := f.op.Run(ctx, func(ctx context.Context) ([]domain.VideoRecord, error) {
		records, err := f.catalog.SearchByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		if len(records) > CategoryPreviewSize {
			records = records[:CategoryPreviewSize]
		}
		return records, nil
	}, categoryFailureMessage(category))

	switch {
	case !applied:
		log.Debug().Msg("discarded stale category response")
	case state.Phase == PhaseFailed:
		log.Warn().Err(state.Err).Msg("category load failed")
	default:
		log.Info().Int("results", len(state.Data)).Msg("category loaded")
	}
	return state
}

// Retry reloads the current category.
func (f *CategoryFeed) Retry(ctx context.Context) State[[]domain.VideoRecord] {
	return f.Load(ctx, f.Category())
}

// Home owns one feed per curated category.
type Home struct {
	feeds  []*CategoryFeed
	logger zerolog.Logger
}

// NewHome creates idle feeds for every category in display order.
func NewHome(catalog ports.VideoCatalog, logger zerolog.Logger) *Home {
	feeds := make([]*CategoryFeed, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		feeds = append(feeds, NewCategoryFeed(catalog, category, logger))
	}
	return &Home{feeds: feeds, logger: logger.With().Str("component", "home").Logger()}
}

// Feeds returns the feeds in display order.
func (h *Home) Feeds() []*CategoryFeed {
	return h.feeds
}

// LoadAll loads every feed concurrently, at most HomeLoadLimit at a time.
// Catalog failures stay in each feed's state; the returned error is only
// the context's, and feeds not started before cancellation stay untouched.
func (h *Home) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(HomeLoadLimit)
	for _, feed := range h.feeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			feed.Retry(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Warn().Err(err).Msg("home load interrupted")
		return err
	}

	failed := 0
	for _, feed := range h.feeds {
		if feed.State().Phase == PhaseFailed {
			failed++
		}
	}
	h.logger.Info().Int("feeds", len(h.feeds)).Int("failed", failed).Msg("home loaded")
	return nil
}
