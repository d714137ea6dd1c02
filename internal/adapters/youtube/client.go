package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"learntube/internal/core/domain"
)

const (
	DefaultBaseURL            = "https://www.googleapis.com/youtube/v3"
	DefaultRegionCode         = "US"
	DefaultRelevanceLanguage  = "en"
	DefaultCategoryMaxResults = 12
	DefaultSearchMaxResults   = 20
	DefaultTimeout            = 15 * time.Second

	maxErrorBody = 4 << 10
)

// categoryQueries is the static table behind SearchByCategory.
var categoryQueries = map[domain.Category]string{
	domain.CategoryReactNative: "React Native tutorial",
	domain.CategoryReact:       "React tutorial",
	domain.CategoryTypeScript:  "TypeScript tutorial",
	domain.CategoryJavaScript:  "JavaScript tutorial",
}

// CategoryQuery returns the search phrase used for a curated category.
func CategoryQuery(category domain.Category) (string, bool) {
	q, ok := categoryQueries[category]
	return q, ok
}

// Config holds everything the client needs. Zero values select defaults,
// except APIKey which is sent as-is.
type Config struct {
	APIKey             string
	BaseURL            string
	RegionCode         string
	RelevanceLanguage  string
	CategoryMaxResults int
	SearchMaxResults   int
	Timeout            time.Duration
	HTTPClient         *http.Client // overrides Timeout when set
}

// Client implements ports.VideoCatalog against the YouTube Data API v3.
type Client struct {
	apiKey      string
	baseURL     string
	region      string
	language    string
	categoryMax int
	searchMax   int
	client      *http.Client
	logger      zerolog.Logger
}

// NewClient creates a new Client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	c := &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		region:      cfg.RegionCode,
		language:    cfg.RelevanceLanguage,
		categoryMax: cfg.CategoryMaxResults,
		searchMax:   cfg.SearchMaxResults,
		client:      cfg.HTTPClient,
		logger:      logger.With().Str("component", "youtube").Logger(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.region == "" {
		c.region = DefaultRegionCode
	}
	if c.language == "" {
		c.language = DefaultRelevanceLanguage
	}
	if c.categoryMax <= 0 {
		c.categoryMax = DefaultCategoryMaxResults
	}
	if c.searchMax <= 0 {
		c.searchMax = DefaultSearchMaxResults
	}
	if c.client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.client = &http.Client{Timeout: timeout}
	}
	return c
}

// SearchByCategory fetches the curated results for category.
func (c *Client) SearchByCategory(ctx context.Context, category domain.Category) ([]domain.VideoRecord, error) {
	const op = "youtube.SearchByCategory"

	query, ok := categoryQueries[category]
	if !ok {
		return nil, domain.NewError(op, domain.ErrUnknownCategory, errors.Errorf("category %q", category))
	}

	params := c.searchParams(query, c.categoryMax, domain.OrderRelevance, "")
	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, domain.NewError(op, domain.ErrSearchFailed, err)
	}
	if resp.Items == nil {
		return nil, domain.NewError(op, domain.ErrSearchFailed, errors.New("response has no items"))
	}

	items := resp.Items
	if len(items) > c.categoryMax {
		items = items[:c.categoryMax]
	}
	records, err := mapSearchItems(items, string(category), category)
	if err != nil {
		return nil, domain.NewError(op, domain.ErrSearchFailed, err)
	}
	c.logger.Debug().Str("category", string(category)).Int("results", len(records)).Msg("category search completed")
	return records, nil
}

// SearchVideos runs a free-text search. Every record gets the placeholder
// category; it carries no topical meaning for generic results.
func (c *Client) SearchVideos(ctx context.Context, req domain.SearchRequest) ([]domain.VideoRecord, error) {
	const op = "youtube.SearchVideos"

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.NewError(op, domain.ErrInvalidRequest, errors.New("empty query"))
	}
	maxResults := req.MaxResults
	switch {
	case maxResults < 0:
		return nil, domain.NewError(op, domain.ErrInvalidRequest, errors.Errorf("maxResults %d", maxResults))
	case maxResults == 0:
		maxResults = c.searchMax
	}
	order := req.Order
	if order == "" {
		order = domain.OrderRelevance
	}
	if !order.Valid() {
		return nil, domain.NewError(op, domain.ErrInvalidRequest, errors.Errorf("order %q", order))
	}

	params := c.searchParams(query, maxResults, order, req.PageToken)
	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, domain.NewError(op, domain.ErrSearchFailed, err)
	}
	if resp.Items == nil {
		return nil, domain.NewError(op, domain.ErrSearchFailed, errors.New("response has no items"))
	}

	records, err := mapSearchItems(resp.Items, "search", domain.DefaultSearchCategory)
	if err != nil {
		return nil, domain.NewError(op, domain.ErrSearchFailed, err)
	}
	c.logger.Debug().Str("order", string(order)).Int("results", len(records)).Msg("search completed")
	return records, nil
}

// GetVideoDetails fetches snippet, statistics and content details for one video.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (domain.VideoDetail, error) {
	const op = "youtube.GetVideoDetails"

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return domain.VideoDetail{}, domain.NewError(op, domain.ErrInvalidRequest, errors.New("empty video id"))
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", videoID)

	var resp videosResponse
	if err := c.get(ctx, "/videos", params, &resp); err != nil {
		return domain.VideoDetail{}, domain.NewError(op, domain.ErrSearchFailed, err)
	}
	if resp.Items == nil {
		return domain.VideoDetail{}, domain.NewError(op, domain.ErrSearchFailed, errors.New("response has no items"))
	}
	if len(resp.Items) == 0 {
		return domain.VideoDetail{}, domain.NewError(op, domain.ErrNotFound, errors.Errorf("id %q", videoID))
	}
	return mapVideoDetail(videoID, resp.Items[0]), nil
}

func (c *Client) searchParams(query string, maxResults int, order domain.Order, pageToken string) url.Values {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", string(order))
	params.Set("regionCode", c.region)
	params.Set("relevanceLanguage", c.language)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	return params
}

// get issues a GET against the API and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("youtube api call")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var envelope apiErrorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			return errors.Errorf("GET %s: status %d: %s", path, resp.StatusCode, envelope.Error.Message)
		}
		return errors.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}
