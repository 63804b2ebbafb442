package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// APISearcher implements VideoSearcher using YouTube Data API v3.
// The underlying service is stateless and safe to share across calls.
type APISearcher struct {
	service *youtubeapi.Service
}

// NewAPISearcher creates a Data API v3-backed video searcher.
// The API key must be non-empty; without credentials no crawl can proceed.
func NewAPISearcher(ctx context.Context, apiKey string) (*APISearcher, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APISearcher{service: service}, nil
}

// SearchVideos executes a search.list call filtered to videos.
// Errors are returned unclassified; callers use Classify to decide on retry.
func (s *APISearcher) SearchVideos(ctx context.Context, query string, maxResults int64) ([]Video, error) {
	call := s.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		if ctx.Err() != nil {
			return nil, &SearchError{Query: query, Err: ErrNetworkTimeout}
		}
		return nil, &SearchError{Query: query, Err: err}
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		video := Video{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			video.Title = item.Snippet.Title
			video.ChannelTitle = item.Snippet.ChannelTitle
			video.Description = item.Snippet.Description
		}

		videos = append(videos, video)
	}

	return videos, nil
}
