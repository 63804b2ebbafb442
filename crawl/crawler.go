// Package crawl implements the recursive keyword search over YouTube.
//
// A crawl starts from a seed keyword, searches for matching videos, then
// mines each result's title and description for follow-up keywords and
// repeats the search one level deeper, up to a configured depth. Results are
// not deduplicated across branches.
package crawl

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"vidcrawl/keywords"
	"vidcrawl/youtube"
)

// Result is a single discovered video, tagged with the recursion depth at
// which it was found (0 = direct result of a seed keyword).
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	Depth       int    `json:"depth"`
}

// Request describes one search invocation. It is constructed once per
// recursive call and never mutated.
type Request struct {
	// Keyword is the search query.
	Keyword string
	// MaxResults caps the number of items per API call.
	MaxResults int64
	// Depth is the current recursion depth (0 for seed keywords).
	Depth int
	// MaxDepth is the depth at which recursion stops.
	MaxDepth int
	// MaxRetries is the number of attempts per API call.
	MaxRetries int
	// BaseBackoff is the base delay for exponential backoff between attempts.
	BaseBackoff time.Duration
}

// child returns the request for a follow-up keyword one level deeper.
func (r Request) child(keyword string) Request {
	r.Keyword = keyword
	r.Depth++
	return r
}

// Crawler drives depth-first recursive searches through a VideoSearcher.
// It is single-threaded: each branch completes before the next sibling
// keyword starts.
type Crawler struct {
	searcher youtube.VideoSearcher
	log      zerolog.Logger

	// sleep and jitter are swapped out in tests.
	sleep  func(context.Context, time.Duration) error
	jitter func() time.Duration
}

// NewCrawler returns a Crawler that searches through the given searcher and
// logs through the given logger.
func NewCrawler(searcher youtube.VideoSearcher, log zerolog.Logger) *Crawler {
	return &Crawler{
		searcher: searcher,
		log:      log,
		sleep:    sleepContext,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(time.Second)))
		},
	}
}

// Search runs one keyword search and, while depth budget remains, recurses
// once per keyword extracted from each result's metadata. The returned
// sequence is the current query's items interleaved with each item's
// sub-results, in discovery order.
//
// Search never fails: quota exhaustion, exhausted retries and non-retryable
// errors all degrade to returning whatever was accumulated so far, so a
// failure deep in the tree cannot abort sibling branches.
func (c *Crawler) Search(ctx context.Context, req Request) []Result {
	if req.MaxRetries < 1 {
		req.MaxRetries = 1
	}

	log := c.log.With().Str("keyword", req.Keyword).Int("depth", req.Depth).Logger()
	log.Info().Msg("searching for videos")

	for attempt := 0; attempt < req.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			log.Debug().Msg("crawl cancelled")
			return nil
		}

		videos, err := c.searcher.SearchVideos(ctx, req.Keyword, req.MaxResults)
		if err == nil {
			results := c.expand(ctx, req, videos)
			log.Info().Int("count", len(results)).Msg("found videos for keyword and related topics")
			return results
		}

		switch kind := youtube.Classify(err); kind {
		case youtube.KindQuotaExhausted:
			log.Warn().Err(err).Msg("api quota exceeded, skipping keyword")
			return nil
		case youtube.KindTransient:
			if attempt == req.MaxRetries-1 {
				break
			}
			delay := (req.BaseBackoff << attempt) + c.jitter()
			log.Warn().Err(err).
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Msg("transient api error, waiting before retry")
			if err := c.sleep(ctx, delay); err != nil {
				return nil
			}
		default:
			log.Error().Err(err).Msg("non-retryable error, skipping keyword")
			return nil
		}
	}

	log.Warn().Msg("no videos found for keyword")
	return nil
}

// expand converts one query's items into Results and, below MaxDepth,
// appends each item's recursive sub-results directly after the item itself.
func (c *Crawler) expand(ctx context.Context, req Request, videos []youtube.Video) []Result {
	results := make([]Result, 0, len(videos))

	for _, video := range videos {
		results = append(results, Result{
			Title:       video.Title,
			URL:         video.URL(),
			Channel:     video.ChannelTitle,
			Description: video.Description,
			Depth:       req.Depth,
		})

		if req.Depth >= req.MaxDepth {
			continue
		}

		related := keywords.Extract(video.Title, video.Description)
		if len(related) == 0 {
			continue
		}

		c.log.Debug().
			Str("title", video.Title).
			Strs("keywords", related).
			Msg("searching for related videos")
		for _, keyword := range related {
			results = append(results, c.Search(ctx, req.child(keyword))...)
		}
	}

	return results
}

// sleepContext sleeps for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
