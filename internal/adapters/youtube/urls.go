package youtube

import "net/url"

const (
	watchURLBase = "https://www.youtube.com/watch?v="
	embedURLBase = "https://www.youtube.com/embed/"
)

// VideoURL returns the youtube.com watch page for videoID.
// Callers must not pass an empty ID.
func VideoURL(videoID string) string {
	return watchURLBase + url.QueryEscape(videoID)
}

// EmbedURL returns the embeddable player URL for videoID.
func EmbedURL(videoID string) string {
	return embedURLBase + url.PathEscape(videoID)
}
