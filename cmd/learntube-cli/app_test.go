package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, apiURL string) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"LEARNTUBE_CONFIG", "EXPO_PUBLIC_YT_API_KEY", "YOUTUBE_REGION_CODE",
		"YOUTUBE_RELEVANCE_LANGUAGE", "YOUTUBE_CATEGORY_MAX_RESULTS", "YOUTUBE_SEARCH_MAX_RESULTS",
		"HTTP_TIMEOUT", "YTDLP_PATH", "DEMO_STREAM_URL"} {
		t.Setenv(k, "")
	}
	t.Setenv("YOUTUBE_API_KEY", "k")
	t.Setenv("YOUTUBE_API_BASE_URL", apiURL)
	t.Setenv("STREAM_RESOLVER", "demo")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
}

func youtubeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		items := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			items = append(items, fmt.Sprintf(`{"id":{"videoId":"vid%d"},"snippet":{"title":"Video %d","channelTitle":"Chan"}}`, i, i))
		}
		fmt.Fprintf(w, `{"items":[%s]}`, strings.Join(items, ","))
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "abc" {
			fmt.Fprint(w, `{"items":[]}`)
			return
		}
		fmt.Fprint(w, `{"items":[{"id":"abc","snippet":{"title":"Intro"},"statistics":{"viewCount":"1234","likeCount":"5"},"contentDetails":{"duration":"PT4M"}}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_SearchOldestReversesResults(t *testing.T) {
	setupEnv(t, youtubeAPI(t).URL)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-json", "search", "-q", " react ", "-sort", "date_oldest"}, &out))

	var view searchView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, "ready", view.Phase)
	assert.Equal(t, "date_oldest", string(view.Sort))
	require.Len(t, view.Videos, 3)
	assert.Equal(t, "vid2", view.Videos[0].VideoID)
	assert.Equal(t, "vid0", view.Videos[2].VideoID)
}

func TestRun_SearchFailureIsReported(t *testing.T) {
	setupEnv(t, youtubeAPI(t).URL)

	var out bytes.Buffer
	err := run(context.Background(), []string{"search", "-q", "boom"}, &out)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out.String(), "Search failed. Please try again.")
}

func TestRun_Details(t *testing.T) {
	setupEnv(t, youtubeAPI(t).URL)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-json", "details", "-id", "abc"}, &out))

	var view detailsView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	require.NotNil(t, view.Video)
	assert.Equal(t, int64(1234), view.Video.ViewCount)
	assert.Equal(t, "https://www.youtube.com/embed/abc", view.EmbedURL)

	out.Reset()
	err := run(context.Background(), []string{"details", "-id", "missing"}, &out)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out.String(), "Video not found.")
}

func TestRun_Home(t *testing.T) {
	setupEnv(t, youtubeAPI(t).URL)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-json", "home"}, &out))

	var views []feedView
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 4)
	assert.Equal(t, "React Native", string(views[0].Category))
	for _, v := range views {
		assert.Equal(t, "ready", v.Phase)
		assert.Len(t, v.Videos, 3)
	}
}

func TestRun_PlayAppliesCommands(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "#EXTM3U\n#EXT-X-TARGETDURATION:10\n#EXTINF:10.0,\na.ts\n#EXTINF:10.0,\nb.ts\n#EXT-X-ENDLIST\n")
	}))
	t.Cleanup(origin.Close)
	setupEnv(t, youtubeAPI(t).URL)
	t.Setenv("DEMO_STREAM_URL", origin.URL+"/index.m3u8")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(),
		[]string{"-json", "play", "-id", "abc", "-seek", "30s", "-mute", "-pause", "-fullscreen"}, &out))

	var status struct {
		Loaded          bool    `json:"loaded"`
		Muted           bool    `json:"muted"`
		Paused          bool    `json:"paused"`
		Fullscreen      bool    `json:"fullscreen"`
		PositionSeconds float64 `json:"positionSeconds"`
		DurationSeconds float64 `json:"durationSeconds"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &status))
	assert.True(t, status.Loaded)
	assert.True(t, status.Muted)
	assert.True(t, status.Paused)
	assert.True(t, status.Fullscreen)
	assert.Equal(t, 20.0, status.DurationSeconds)
	assert.Equal(t, 20.0, status.PositionSeconds)
}

func TestRun_UsageErrors(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	assert.Error(t, run(context.Background(), nil, &bytes.Buffer{}))
	assert.Error(t, run(context.Background(), []string{"dance"}, &bytes.Buffer{}))
	assert.Error(t, run(context.Background(), []string{"search", "-q", "x", "-sort", "newest"}, &bytes.Buffer{}))
}

func TestRun_MissingVideoID(t *testing.T) {
	api := youtubeAPI(t)
	setupEnv(t, api.URL)

	for _, args := range [][]string{
		{"-json", "details"},
		{"details", "-id", "  "},
		{"-json", "play"},
		{"play", "-id", "", "-mute"},
	} {
		var out bytes.Buffer
		err := run(context.Background(), args, &out)
		assert.ErrorIs(t, err, errMissingID, args)
		assert.Empty(t, out.String(), args)
	}
}
