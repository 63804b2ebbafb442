package youtube

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a search failure for the caller's retry decision.
// Classification happens here, at the API boundary, so callers never inspect
// status codes or error payloads themselves.
type ErrorKind int

const (
	// KindNonRetryable means retrying cannot help (bad request, auth failure,
	// or any error this package cannot classify).
	KindNonRetryable ErrorKind = iota

	// KindTransient means the error is a rate or server-side condition that
	// may clear; the caller should back off and retry.
	KindTransient

	// KindQuotaExhausted means the daily API quota is spent. Retrying within
	// the same run is pointless.
	KindQuotaExhausted
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindQuotaExhausted:
		return "quota exhausted"
	default:
		return "non-retryable"
	}
}

// quotaReasons are the googleapi error reasons that indicate the daily quota
// is spent, as opposed to per-second rate limiting.
var quotaReasons = map[string]bool{
	"quotaExceeded":      true,
	"dailyLimitExceeded": true,
}

// Classify reports the retry class of a search error.
//
// A 403 carrying a quota reason is distinct from a generic 403: the former is
// a hard stop for the run, the latter is retryable rate limiting.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNonRetryable
	}

	if errors.Is(err, ErrNetworkTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return KindNonRetryable
	}

	if apiErr.Code == http.StatusForbidden {
		for _, item := range apiErr.Errors {
			if quotaReasons[item.Reason] {
				return KindQuotaExhausted
			}
		}
		return KindTransient
	}

	switch apiErr.Code {
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return KindTransient
	}

	return KindNonRetryable
}
