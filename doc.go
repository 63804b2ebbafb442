// Package vidcrawl provides a bounded recursive video crawler for YouTube.
//
// It turns a set of seed keywords into a depth-limited traversal over the
// YouTube Data API: each search result's title and description are mined for
// follow-up keywords, and each follow-up keyword triggers another search one
// level deeper, until the configured depth is reached.
//
// Overview
//
// The core components, usable as a library:
//
//   - crawl.Crawler: the recursive search controller with retry and backoff
//   - keywords.Extract: keyword mining from video metadata
//   - youtube.APISearcher: the Data API v3 search client
//   - storage.SaveResults: the JSON Lines results sink
//
// Quick Start
//
// Crawl one keyword two levels deep:
//
//	ctx := context.Background()
//	searcher, err := youtube.NewAPISearcher(ctx, apiKey)
//	if err != nil {
//		log.Fatal().Err(err).Msg("no credentials")
//	}
//	crawler := crawl.NewCrawler(searcher, log.Logger)
//	results := crawler.Search(ctx, crawl.Request{
//		Keyword:     "cats",
//		MaxResults:  10,
//		MaxDepth:    2,
//		MaxRetries:  5,
//		BaseBackoff: time.Second,
//	})
//	for _, r := range results {
//		fmt.Println(r.Depth, r.Title, r.URL)
//	}
//
// Failure semantics
//
// Crawler.Search never fails. Quota exhaustion ends the current keyword
// branch, transient API errors (rate limiting, server errors) are retried
// with exponential backoff and jitter, and anything else ends the branch
// immediately; in every case the call returns whatever it accumulated so the
// rest of the crawl continues. Only configuration and credential errors are
// fatal, and both surface before the first query.
//
// Configuration
//
// The CLI loads config.json (or the --config path) and applies VIDCRAWL_*
// environment overrides; see the config package for the fields and their
// validation rules.
package vidcrawl
