package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"learntube/internal/core/domain"
	"learntube/internal/service"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "-12,345", FormatCount(-12345))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "2:08", FormatClock(128*time.Second))
	assert.Equal(t, "11:57", FormatClock(717*time.Second))
	assert.Equal(t, "1:00:05", FormatClock(time.Hour+5*time.Second))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-15", FormatDate("2024-03-15T08:30:00Z"))
	assert.Equal(t, "yesterday", FormatDate("yesterday"))
}

func TestTruncateLines(t *testing.T) {
	assert.Equal(t, "a\nb", TruncateLines("a\nb\nc", 2))
	assert.Equal(t, "a", TruncateLines("a", 2))
}

func TestRenderSearchStates(t *testing.T) {
	idle := RenderSearch("", domain.SortDateLatest, service.State[[]domain.VideoRecord]{})
	assert.Contains(t, idle, "Search for something to see results")
	assert.NotContains(t, idle, "Sort by")

	empty := RenderSearch("rust", domain.SortPopular, service.State[[]domain.VideoRecord]{Phase: service.PhaseReady})
	assert.Contains(t, empty, "No results for: rust")
	assert.Contains(t, empty, "Most popular")

	failed := RenderSearch("rust", domain.SortDateLatest, service.State[[]domain.VideoRecord]{
		Phase: service.PhaseFailed, Message: "Search failed. Please try again.",
	})
	assert.Contains(t, failed, "Search failed. Please try again.")

	ready := RenderSearch("react", domain.SortDateOldest, service.State[[]domain.VideoRecord]{
		Phase: service.PhaseReady,
		Data:  []domain.VideoRecord{{VideoID: "abc123", Title: "Hooks", ChannelTitle: "Chan"}},
	})
	assert.Contains(t, ready, "1 results found for:")
	assert.Contains(t, ready, "Upload date: oldest")
	assert.Contains(t, ready, "Hooks")
	assert.Contains(t, ready, "abc123")
}

func TestRenderCategoryAndDetails(t *testing.T) {
	row := RenderCategory(domain.CategoryReact, service.State[[]domain.VideoRecord]{
		Phase: service.PhaseFailed, Message: "Failed to load React",
	})
	assert.Contains(t, row, "React")
	assert.Contains(t, row, "Failed to load React")

	details := RenderDetails(service.State[domain.VideoDetail]{
		Phase: service.PhaseReady,
		Data:  domain.VideoDetail{Title: "Intro", ChannelTitle: "Chan", ViewCount: 1500, LikeCount: 0},
	}, "https://watch", "https://embed")
	assert.Contains(t, details, "Intro")
	assert.Contains(t, details, "1,500")
	assert.Contains(t, details, "https://embed")
}

func TestRenderPlayback(t *testing.T) {
	assert.Contains(t, RenderPlayback(domain.PlaybackStatus{}), "not loaded")

	out := RenderPlayback(domain.PlaybackStatus{
		Loaded: true, Paused: true, Position: 128 * time.Second, Duration: 717 * time.Second, Source: "https://s",
	})
	assert.Contains(t, out, "paused")
	assert.Contains(t, out, "2:08 / 11:57")
}
