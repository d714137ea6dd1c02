package ports

import (
	"context"
	"time"

	"learntube/internal/core/domain"
)

// VideoCatalog defines the contract for finding and describing videos.
type VideoCatalog interface {
	// SearchByCategory returns the curated results for one category.
	SearchByCategory(ctx context.Context, category domain.Category) ([]domain.VideoRecord, error)

	// SearchVideos runs a free-text search.
	SearchVideos(ctx context.Context, req domain.SearchRequest) ([]domain.VideoRecord, error)

	// GetVideoDetails fetches metadata, statistics and duration for one video.
	GetVideoDetails(ctx context.Context, videoID string) (domain.VideoDetail, error)
}

// StreamResolver turns a video ID into a URL the media player can load.
type StreamResolver interface {
	ResolveStream(ctx context.Context, videoID string) (string, error)
}

// MediaPlayer defines the transport commands sent to the platform player.
type MediaPlayer interface {
	// Load prepares the player for the given source and resets transport state.
	Load(ctx context.Context, sourceURL string) error

	// Status reports the current transport state.
	Status(ctx context.Context) (domain.PlaybackStatus, error)

	SetPosition(ctx context.Context, position time.Duration) error
	SetMuted(ctx context.Context, muted bool) error
	SetPaused(ctx context.Context, paused bool) error
	PresentFullscreen(ctx context.Context) error
}
