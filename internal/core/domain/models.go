package domain

import "time"

// Category is one of the curated topics shown on the home screen.
type Category string

const (
	CategoryReactNative Category = "React Native"
	CategoryReact       Category = "React"
	CategoryTypeScript  Category = "TypeScript"
	CategoryJavaScript  Category = "JavaScript"
)

// Categories lists the curated topics in display order.
var Categories = []Category{
	CategoryReactNative,
	CategoryReact,
	CategoryTypeScript,
	CategoryJavaScript,
}

// DefaultSearchCategory is assigned to generic search results. Free-text
// search carries no topic, so the value is a placeholder only.
const DefaultSearchCategory = CategoryReactNative

// Order is the ordering requested from the remote search endpoint.
type Order string

const (
	OrderRelevance Order = "relevance"
	OrderDate      Order = "date"
	OrderViewCount Order = "viewCount"
)

// Valid reports whether o is an ordering the remote service understands.
func (o Order) Valid() bool {
	switch o {
	case OrderRelevance, OrderDate, OrderViewCount:
		return true
	}
	return false
}

// SortPreference is the sort option picked on the search screen.
type SortPreference string

const (
	SortDateLatest SortPreference = "date_latest"
	SortDateOldest SortPreference = "date_oldest"
	SortPopular    SortPreference = "popular"
)

// SortPreferences lists the options in the order the picker shows them.
var SortPreferences = []SortPreference{SortDateLatest, SortDateOldest, SortPopular}

// Order maps the preference onto a remote ordering. The service has no
// oldest-first ordering, so date_oldest requests date and reverses locally.
func (p SortPreference) Order() Order {
	if p == SortPopular {
		return OrderViewCount
	}
	return OrderDate
}

// ReverseLocally reports whether results must be reversed after the fetch.
func (p SortPreference) ReverseLocally() bool {
	return p == SortDateOldest
}

// Label is the human readable name of the preference.
func (p SortPreference) Label() string {
	switch p {
	case SortDateOldest:
		return "Upload date: oldest"
	case SortPopular:
		return "Most popular"
	default:
		return "Upload date: latest"
	}
}

// ParseSortPreference converts a flag or config value into a preference.
func ParseSortPreference(s string) (SortPreference, bool) {
	for _, p := range SortPreferences {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// VideoRecord is a normalized search result.
type VideoRecord struct {
	ID           string   `json:"id"` // unique within one response only
	VideoID      string   `json:"videoId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ChannelTitle string   `json:"channelTitle"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	PublishedAt  string   `json:"publishedAt"`
	Category     Category `json:"category"`
}

// VideoDetail is the metadata shown on the details screen.
type VideoDetail struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	ThumbnailURL string `json:"thumbnailUrl"`
	PublishedAt  string `json:"publishedAt"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	Duration     string `json:"duration"`
}

// SearchRequest describes one free-text search call.
type SearchRequest struct {
	Query      string
	MaxResults int   // 0 selects the client default
	Order      Order // empty selects relevance
	PageToken  string
}

// PlaybackStatus is a snapshot of the media player's transport state.
type PlaybackStatus struct {
	Source     string        `json:"source"`
	Loaded     bool          `json:"loaded"`
	Position   time.Duration `json:"position"`
	Duration   time.Duration `json:"duration"` // zero when unknown
	Muted      bool          `json:"muted"`
	Paused     bool          `json:"paused"`
	Fullscreen bool          `json:"fullscreen"`
}
