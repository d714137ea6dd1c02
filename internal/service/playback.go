package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"learntube/internal/core/domain"
	"learntube/internal/core/ports"
)

// PlaybackController sends transport commands to the media player.
type PlaybackController struct {
	resolver ports.StreamResolver
	player   ports.MediaPlayer
	logger   zerolog.Logger
}

// NewPlaybackController creates a new PlaybackController.
func NewPlaybackController(resolver ports.StreamResolver, player ports.MediaPlayer, logger zerolog.Logger) *PlaybackController {
	return &PlaybackController{
		resolver: resolver,
		player:   player,
		logger:   logger.With().Str("component", "playback").Logger(),
	}
}

// Open resolves the stream for videoID and loads it into the player.
func (p *PlaybackController) Open(ctx context.Context, videoID string) (domain.PlaybackStatus, error) {
	source, err := p.resolver.ResolveStream(ctx, videoID)
	if err != nil {
		return domain.PlaybackStatus{}, fmt.Errorf("resolve stream for %s: %w", videoID, err)
	}
	if err := p.player.Load(ctx, source); err != nil {
		return domain.PlaybackStatus{}, fmt.Errorf("load %s: %w", source, err)
	}
	p.logger.Info().Str("video_id", videoID).Str("source", source).Msg("stream loaded")
	return p.player.Status(ctx)
}

// Status reports the player's transport state.
func (p *PlaybackController) Status(ctx context.Context) (domain.PlaybackStatus, error) {
	return p.player.Status(ctx)
}

// Seek moves the position by offset. It does nothing until the player has
// loaded, and clamps to [0, duration]; with an unknown duration the current
// position is the upper bound.
func (p *PlaybackController) Seek(ctx context.Context, offset time.Duration) error {
	status, err := p.player.Status(ctx)
	if err != nil {
		return fmt.Errorf("player status: %w", err)
	}
	if !status.Loaded {
		return nil
	}

	upper := status.Duration
	if upper <= 0 {
		upper = status.Position
	}
	target := min(max(status.Position+offset, 0), upper)

	if err := p.player.SetPosition(ctx, target); err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	p.logger.Debug().Dur("offset", offset).Dur("position", target).Msg("seek")
	return nil
}

// ToggleMute flips the mute flag.
func (p *PlaybackController) ToggleMute(ctx context.Context) error {
	status, err := p.player.Status(ctx)
	if err != nil {
		return fmt.Errorf("player status: %w", err)
	}
	return p.player.SetMuted(ctx, !status.Muted)
}

// TogglePause flips between playing and paused.
func (p *PlaybackController) TogglePause(ctx context.Context) error {
	status, err := p.player.Status(ctx)
	if err != nil {
		return fmt.Errorf("player status: %w", err)
	}
	return p.player.SetPaused(ctx, !status.Paused)
}

// Fullscreen asks the player to present itself full screen.
func (p *PlaybackController) Fullscreen(ctx context.Context) error {
	return p.player.PresentFullscreen(ctx)
}
