package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"learntube/internal/core/domain"
	"learntube/internal/service"
)

var (
	primary   = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	secondary = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#B0B0B0"}
	errColor  = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(secondary)
	errorStyle   = lipgloss.NewStyle().Foreground(errColor)
	cardStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

var categoryColors = map[domain.Category]lipgloss.Color{
	domain.CategoryReactNative: "#61DAFB",
	domain.CategoryReact:       "#61DAFB",
	domain.CategoryTypeScript:  "#3178C6",
	domain.CategoryJavaScript:  "#F7DF1E",
}

// CategoryColor returns the accent color of a category.
func CategoryColor(category domain.Category) lipgloss.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return "#2563EB"
}

// RenderCategory renders one home screen row.
func RenderCategory(category domain.Category, state service.State[[]domain.VideoRecord]) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(CategoryColor(category)).Render(string(category))

	var body string
	switch state.Phase {
	case service.PhaseLoading:
		body = mutedStyle.Render("Loading...")
	case service.PhaseFailed:
		body = errorStyle.Render(state.Message)
	case service.PhaseReady:
		if len(state.Data) == 0 {
			body = mutedStyle.Render("No videos")
			break
		}
		body = renderCards(state.Data)
	default:
		body = mutedStyle.Render("Not loaded")
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, body)
}

// RenderSearch renders the search screen.
func RenderSearch(query string, sort domain.SortPreference, state service.State[[]domain.VideoRecord]) string {
	query = strings.TrimSpace(query)

	var parts []string
	if query != "" {
		if state.Phase == service.PhaseReady && len(state.Data) > 0 {
			parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d results found for: ", len(state.Data)))+
				titleStyle.Render(strconv.Quote(query)))
		}
		parts = append(parts, mutedStyle.Render("Sort by: ")+titleStyle.Render(sort.Label()))
	}

	switch {
	case state.Phase == service.PhaseLoading:
		parts = append(parts, mutedStyle.Render("Searching videos..."))
	case state.Phase == service.PhaseFailed:
		parts = append(parts, errorStyle.Render(state.Message))
	case len(state.Data) == 0 && query != "":
		parts = append(parts, mutedStyle.Render("No results for: "+query))
	case len(state.Data) == 0:
		parts = append(parts, mutedStyle.Render("Search for something to see results"))
	default:
		parts = append(parts, renderCards(state.Data))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderDetails renders the details screen body.
func RenderDetails(state service.State[domain.VideoDetail], watchURL, embedURL string) string {
	switch state.Phase {
	case service.PhaseLoading:
		return mutedStyle.Render("Loading...")
	case service.PhaseFailed:
		return errorStyle.Render(state.Message)
	case service.PhaseIdle:
		return mutedStyle.Render("No video data.")
	}

	v := state.Data
	lines := []string{
		titleStyle.Render(v.Title),
		mutedStyle.Render("Channel name"),
		v.ChannelTitle,
		"",
		headingStyle.Render("Description"),
		v.Description,
		"",
		headingStyle.Render("Statistics"),
		fmt.Sprintf("Views  %s", FormatCount(v.ViewCount)),
		fmt.Sprintf("Likes  %s", FormatCount(v.LikeCount)),
	}
	if v.Duration != "" {
		lines = append(lines, fmt.Sprintf("Length %s", v.Duration))
	}
	lines = append(lines, "", mutedStyle.Render("Watch: ")+watchURL, mutedStyle.Render("Embed: ")+embedURL)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderPlayback renders the player's transport state.
func RenderPlayback(status domain.PlaybackStatus) string {
	if !status.Loaded {
		return mutedStyle.Render("Player not loaded")
	}
	state := "playing"
	if status.Paused {
		state = "paused"
	}
	total := "--:--"
	if status.Duration > 0 {
		total = FormatClock(status.Duration)
	}
	lines := []string{
		titleStyle.Render(state) + mutedStyle.Render("  "+FormatClock(status.Position)+" / "+total),
		mutedStyle.Render("Source: ") + status.Source,
		fmt.Sprintf("Muted: %t  Fullscreen: %t", status.Muted, status.Fullscreen),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCards(records []domain.VideoRecord) string {
	cards := make([]string, 0, len(records))
	for _, rec := range records {
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(TruncateLines(rec.Title, 2)),
			mutedStyle.Render(rec.ChannelTitle+"  "+FormatDate(rec.PublishedAt)),
			mutedStyle.Render("id: "+rec.VideoID),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// FormatDate shortens an ISO-8601 timestamp to its date. Unparseable input
// is returned unchanged.
func FormatDate(publishedAt string) string {
	t, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return publishedAt
	}
	return t.Format("2006-01-02")
}

// FormatCount groups digits in thousands: 1234567 -> "1,234,567".
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatClock renders d as m:ss, or h:mm:ss past an hour.
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// TruncateLines keeps the first n lines of text.
func TruncateLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
