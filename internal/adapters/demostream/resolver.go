package demostream

import "context"

// DefaultURL is the public HLS demo stream played for every video.
const DefaultURL = "https://bitmovin-a.akamaihd.net/content/sintel/hls/playlist.m3u8"

// Resolver implements ports.StreamResolver by returning one fixed stream
// regardless of the requested video.
type Resolver struct {
	url string
}

// NewResolver creates a Resolver. An empty url selects DefaultURL.
func NewResolver(url string) *Resolver {
	if url == "" {
		url = DefaultURL
	}
	return &Resolver{url: url}
}

// ResolveStream returns the demo stream URL.
func (r *Resolver) ResolveStream(context.Context, string) (string, error) {
	return r.url, nil
}
