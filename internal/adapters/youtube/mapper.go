package youtube

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"learntube/internal/core/domain"
)

// mapSearchItems converts search items positionally. The synthetic ID is
// "<prefix>-<index>" and is only unique within this batch.
func mapSearchItems(items []searchItem, prefix string, category domain.Category) ([]domain.VideoRecord, error) {
	records := make([]domain.VideoRecord, 0, len(items))
	for i, item := range items {
		videoID := strings.TrimSpace(item.ID.VideoID)
		if videoID == "" {
			return nil, errors.Errorf("item %d has no videoId", i)
		}
		records = append(records, domain.VideoRecord{
			ID:           fmt.Sprintf("%s-%d", prefix, i),
			VideoID:      videoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.best(),
			PublishedAt:  item.Snippet.PublishedAt,
			Category:     category,
		})
	}
	return records, nil
}

func mapVideoDetail(videoID string, item videoItem) domain.VideoDetail {
	return domain.VideoDetail{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
		ThumbnailURL: item.Snippet.Thumbnails.best(),
		PublishedAt:  item.Snippet.PublishedAt,
		ViewCount:    item.Statistics.ViewCount.Int64(),
		LikeCount:    item.Statistics.LikeCount.Int64(),
		Duration:     item.ContentDetails.Duration,
	}
}
