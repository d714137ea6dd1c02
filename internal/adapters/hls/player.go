package hls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/grafov/m3u8"

	"learntube/internal/core/domain"
)

var errNotLoaded = errors.New("player has no source loaded")

// Player implements ports.MediaPlayer without rendering anything. Loading
// a source fetches its HLS playlist to learn the duration; transport state
// is kept in memory.
type Player struct {
	client *http.Client

	mu     sync.Mutex
	status domain.PlaybackStatus
}

// NewPlayer creates a new Player. A nil client selects a 30 second timeout.
func NewPlayer(client *http.Client) *Player {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Player{client: client}
}

// Load fetches the playlist at sourceURL. A master playlist is followed to
// its first variant. Live playlists load with an unknown duration.
func (p *Player) Load(ctx context.Context, sourceURL string) error {
	duration, err := p.probe(ctx, sourceURL, true)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.status = domain.PlaybackStatus{
		Source:   sourceURL,
		Loaded:   true,
		Duration: duration,
	}
	p.mu.Unlock()
	return nil
}

// Status returns the transport state.
func (p *Player) Status(context.Context) (domain.PlaybackStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, nil
}

// SetPosition moves playback to position, bounded by the known duration.
func (p *Player) SetPosition(_ context.Context, position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.status.Loaded {
		return errNotLoaded
	}
	position = max(position, 0)
	if p.status.Duration > 0 {
		position = min(position, p.status.Duration)
	}
	p.status.Position = position
	return nil
}

func (p *Player) SetMuted(_ context.Context, muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.status.Loaded {
		return errNotLoaded
	}
	p.status.Muted = muted
	return nil
}

func (p *Player) SetPaused(_ context.Context, paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.status.Loaded {
		return errNotLoaded
	}
	p.status.Paused = paused
	return nil
}

func (p *Player) PresentFullscreen(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.status.Loaded {
		return errNotLoaded
	}
	p.status.Fullscreen = true
	return nil
}

func (p *Player) probe(ctx context.Context, playlistURL string, followVariant bool) (time.Duration, error) {
	body, err := p.fetch(ctx, playlistURL)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	playlist, listType, err := m3u8.DecodeFrom(body, false)
	if err != nil {
		return 0, fmt.Errorf("failed to parse playlist %s: %w", playlistURL, err)
	}

	switch listType {
	case m3u8.MEDIA:
		media := playlist.(*m3u8.MediaPlaylist)
		if !media.Closed {
			return 0, nil
		}
		var total float64
		for _, seg := range media.Segments {
			if seg != nil {
				total += seg.Duration
			}
		}
		return time.Duration(total * float64(time.Second)), nil

	case m3u8.MASTER:
		master := playlist.(*m3u8.MasterPlaylist)
		if !followVariant || len(master.Variants) == 0 {
			return 0, fmt.Errorf("master playlist %s has no playable variant", playlistURL)
		}
		next, err := resolveURI(playlistURL, master.Variants[0].URI)
		if err != nil {
			return 0, err
		}
		return p.probe(ctx, next, false)
	}
	return 0, fmt.Errorf("unsupported playlist type at %s", playlistURL)
}

func (p *Player) fetch(ctx context.Context, playlistURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, playlistURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

func resolveURI(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid playlist url %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid variant uri %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
