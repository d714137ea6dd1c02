package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"learntube/internal/core/domain"
	"learntube/internal/core/ports"
)

// DetailsLoader drives the details screen for a single video.
type DetailsLoader struct {
	catalog ports.VideoCatalog
	logger  zerolog.Logger
	op      *Operation[domain.VideoDetail]

	mu      sync.Mutex
	videoID string
}

// NewDetailsLoader creates an idle loader.
func NewDetailsLoader(catalog ports.VideoCatalog, logger zerolog.Logger) *DetailsLoader {
	return &DetailsLoader{
		catalog: catalog,
		logger:  logger.With().Str("component", "details").Logger(),
		op:      NewOperation[domain.VideoDetail](),
	}
}

// State returns the current snapshot.
func (d *DetailsLoader) State() State[domain.VideoDetail] {
	return d.op.State()
}

// Load fetches details for videoID. An empty ID fails without a call.
func (d *DetailsLoader) Load(ctx context.Context, videoID string) State[domain.VideoDetail] {
	videoID = strings.TrimSpace(videoID)
	d.mu.Lock()
	d.videoID = videoID
	d.mu.Unlock()

	log := d.logger.With().
		Str("request_id", uuid.NewString()).
		Str("video_id", videoID).
		Logger()

	state, applied := d.op.Run(ctx, func(ctx context.Context) (domain.VideoDetail, error) {
		if videoID == "" {
			return domain.VideoDetail{}, domain.NewError("details.Load", domain.ErrInvalidRequest, errors.New("empty video id"))
		}
		return d.catalog.GetVideoDetails(ctx, videoID)
	}, describeDetailsError)

	switch {
	case !applied:
		log.Debug().Msg("discarded stale details response")
	case state.Phase == PhaseFailed:
		log.Warn().Err(state.Err).Msg("details load failed")
	default:
		log.Info().Msg("details loaded")
	}
	return state
}

// Retry reloads the last requested video.
func (d *DetailsLoader) Retry(ctx context.Context) State[domain.VideoDetail] {
	d.mu.Lock()
	videoID := d.videoID
	d.mu.Unlock()
	return d.Load(ctx, videoID)
}
