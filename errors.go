package vidcrawl

import (
	"vidcrawl/storage"
	"vidcrawl/youtube"
)

// Error handling types exported for library users.
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, vidcrawl.ErrAPIKeyRequired) {
//		fmt.Println("configure an API key first")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var searchErr *vidcrawl.SearchError
//	if errors.As(err, &searchErr) {
//		fmt.Printf("search %q failed: %v\n", searchErr.Query, searchErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// SearchError wraps errors from the search API collaborator.
	SearchError = youtube.SearchError
	// StorageError wraps errors during result persistence.
	StorageError = storage.StorageError
	// ErrorKind classifies a search failure (quota, transient, non-retryable).
	ErrorKind = youtube.ErrorKind
)

// Sentinel errors and classification kinds exported from sub-packages.
var (
	// ErrAPIKeyRequired indicates a crawl was attempted without credentials.
	ErrAPIKeyRequired = youtube.ErrAPIKeyRequired
	// ErrNetworkTimeout indicates a network timeout occurred.
	ErrNetworkTimeout = youtube.ErrNetworkTimeout
)

// Classification kinds for search failures.
const (
	// KindNonRetryable means retrying cannot help.
	KindNonRetryable = youtube.KindNonRetryable
	// KindTransient means the caller should back off and retry.
	KindTransient = youtube.KindTransient
	// KindQuotaExhausted means the daily API quota is spent.
	KindQuotaExhausted = youtube.KindQuotaExhausted
)

// Classify reports the retry class of a search error.
func Classify(err error) ErrorKind {
	return youtube.Classify(err)
}
