package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"learntube/internal/core/domain"
)

// MockCatalog is a mock implementation of ports.VideoCatalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) SearchByCategory(ctx context.Context, category domain.Category) ([]domain.VideoRecord, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VideoRecord), args.Error(1)
}

func (m *MockCatalog) SearchVideos(ctx context.Context, req domain.SearchRequest) ([]domain.VideoRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VideoRecord), args.Error(1)
}

func (m *MockCatalog) GetVideoDetails(ctx context.Context, videoID string) (domain.VideoDetail, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(domain.VideoDetail), args.Error(1)
}

// fakePlayer records transport commands in memory.
type fakePlayer struct {
	status  domain.PlaybackStatus
	loadErr error
}

func (p *fakePlayer) Load(_ context.Context, sourceURL string) error {
	if p.loadErr != nil {
		return p.loadErr
	}
	p.status = domain.PlaybackStatus{Source: sourceURL, Loaded: true, Duration: p.status.Duration}
	return nil
}

func (p *fakePlayer) Status(context.Context) (domain.PlaybackStatus, error) {
	return p.status, nil
}

func (p *fakePlayer) SetPosition(_ context.Context, position time.Duration) error {
	p.status.Position = position
	return nil
}

func (p *fakePlayer) SetMuted(_ context.Context, muted bool) error {
	p.status.Muted = muted
	return nil
}

func (p *fakePlayer) SetPaused(_ context.Context, paused bool) error {
	p.status.Paused = paused
	return nil
}

func (p *fakePlayer) PresentFullscreen(context.Context) error {
	p.status.Fullscreen = true
	return nil
}

type resolverFunc func(ctx context.Context, videoID string) (string, error)

func (f resolverFunc) ResolveStream(ctx context.Context, videoID string) (string, error) {
	return f(ctx, videoID)
}

// records builds n synthetic search records, newest first.
func records(prefix string, n int) []domain.VideoRecord {
	out := make([]domain.VideoRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.VideoRecord{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			VideoID:     fmt.Sprintf("%s-vid-%d", prefix, i),
			Title:       fmt.Sprintf("Video %d", i),
			PublishedAt: fmt.Sprintf("2024-%02d-01T00:00:00Z", 12-i),
			Category:    domain.DefaultSearchCategory,
		})
	}
	return out
}
