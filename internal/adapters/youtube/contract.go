package youtube

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Wire types for the YouTube Data API v3. Only the fields we map are
// declared; everything else in the payload is ignored.

type searchResponse struct {
	// Items stays nil when the key is absent, which is a malformed response.
	// An empty array decodes to an empty, non-nil slice.
	Items         []searchItem `json:"items"`
	NextPageToken string       `json:"nextPageToken"`
}

type searchItem struct {
	ID      searchItemID `json:"id"`
	Snippet snippet      `json:"snippet"`
}

type searchItemID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type snippet struct {
	PublishedAt  string     `json:"publishedAt"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// best prefers the high resolution thumbnail and falls back to smaller ones.
func (t thumbnails) best() string {
	for _, th := range []*thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string         `json:"id"`
	Snippet        snippet        `json:"snippet"`
	Statistics     statistics     `json:"statistics"`
	ContentDetails contentDetails `json:"contentDetails"`
}

type statistics struct {
	ViewCount count `json:"viewCount"`
	LikeCount count `json:"likeCount"`
}

type contentDetails struct {
	Duration string `json:"duration"`
}

// count is a statistics counter. The API sends decimal strings, but a bare
// number, null or garbage must not fail the whole decode.
type count string

func (c *count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = count(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	*c = count(data)
	return nil
}

// Int64 parses the counter; missing or non-numeric values yield 0.
func (c count) Int64() int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(string(c)), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
