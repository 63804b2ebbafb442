// Package youtube provides keyword search over the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
)

// Sentinel errors for search operations.
var (
	ErrAPIKeyRequired = errors.New("youtube: api key required")
	ErrNetworkTimeout = errors.New("youtube: network timeout")
)

// Video contains the metadata of a single search result item.
type Video struct {
	// VideoID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	VideoID string `json:"video_id"`

	// Title is the video title.
	Title string `json:"title"`

	// ChannelTitle is the display name of the channel that uploaded the video.
	ChannelTitle string `json:"channel_title"`

	// Description is the video description. May be empty.
	Description string `json:"description,omitempty"`
}

// URL returns the full YouTube watch URL for this video.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// VideoSearcher defines the interface for keyword-based video search.
// The production implementation uses YouTube Data API v3; tests substitute
// a deterministic fake.
type VideoSearcher interface {
	// SearchVideos returns up to maxResults videos matching the query,
	// in the order the backend returned them.
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]Video, error)
}

// SearchError wraps search errors with context about what failed.
// Use errors.As() to extract it:
//
//	var searchErr *youtube.SearchError
//	if errors.As(err, &searchErr) {
//		fmt.Printf("search %q failed: %v\n", searchErr.Query, searchErr.Err)
//	}
type SearchError struct {
	// Query is the keyword that was being searched.
	Query string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the search error.
func (e *SearchError) Error() string {
	return "youtube: search " + e.Query + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *SearchError) Unwrap() error { return e.Err }
