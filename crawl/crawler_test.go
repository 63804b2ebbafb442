package crawl

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"

	"vidcrawl/youtube"
)

// fakeSearcher returns canned videos per keyword and can script a sequence
// of errors before the first success.
type fakeSearcher struct {
	videos map[string][]youtube.Video
	errs   map[string][]error
	calls  []string
}

func (f *fakeSearcher) SearchVideos(ctx context.Context, query string, maxResults int64) ([]youtube.Video, error) {
	f.calls = append(f.calls, query)
	if pending := f.errs[query]; len(pending) > 0 {
		err := pending[0]
		f.errs[query] = pending[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.videos[query], nil
}

// newTestCrawler returns a crawler with no jitter and a sleep that only
// records requested durations.
func newTestCrawler(searcher youtube.VideoSearcher) (*Crawler, *[]time.Duration) {
	var slept []time.Duration
	c := NewCrawler(searcher, zerolog.Nop())
	c.jitter = func() time.Duration { return 0 }
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func quotaErr() error {
	return &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}}}
}

func transientErr() error {
	return &googleapi.Error{Code: 503}
}

func baseRequest(keyword string) Request {
	return Request{
		Keyword:     keyword,
		MaxResults:  10,
		MaxDepth:    2,
		MaxRetries:  5,
		BaseBackoff: time.Second,
	}
}

func TestSearchDepthZero(t *testing.T) {
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"cats": {
				{VideoID: "v1", Title: "Cat Compilation", ChannelTitle: "Cats Inc", Description: "funny cats"},
				{VideoID: "v2", Title: "More Cats", ChannelTitle: "Cats Inc", Description: "even more cats"},
			},
		},
	}
	c, _ := newTestCrawler(searcher)

	req := baseRequest("cats")
	req.MaxDepth = 0

	results := c.Search(context.Background(), req)

	// Descriptions are non-empty, but at MaxDepth no recursion happens.
	if len(searcher.calls) != 1 {
		t.Fatalf("made %d API calls, want 1 (no recursive expansion at max depth)", len(searcher.calls))
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Depth != 0 {
			t.Errorf("results[%d].Depth = %d, want 0", i, r.Depth)
		}
	}
	if results[0].URL != "https://www.youtube.com/watch?v=v1" {
		t.Errorf("results[0].URL = %q, want watch URL for v1", results[0].URL)
	}
}

func TestSearchRecursionOrder(t *testing.T) {
	// "seed" returns two videos. The first expands into the sorted keywords
	// "alpha" and "beta"; its sub-results must land between it and the second
	// seed video. Leaf videos have empty descriptions, which prunes them.
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"seed": {
				{VideoID: "s1", Title: "beta", Description: "alpha"},
				{VideoID: "s2", Title: "no expansion", Description: ""},
			},
			"alpha": {{VideoID: "a1", Title: "leaf a", Description: ""}},
			"beta":  {{VideoID: "b1", Title: "leaf b", Description: ""}},
		},
	}
	c, _ := newTestCrawler(searcher)

	req := baseRequest("seed")
	req.MaxDepth = 1
	results := c.Search(context.Background(), req)

	var order []string
	for _, r := range results {
		order = append(order, r.Title)
	}
	wantOrder := []string{"beta", "leaf a", "leaf b", "no expansion"}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Errorf("result order = %v, want %v", order, wantOrder)
	}

	wantCalls := []string{"seed", "alpha", "beta"}
	if !reflect.DeepEqual(searcher.calls, wantCalls) {
		t.Errorf("call order = %v, want %v (sorted extracted keywords)", searcher.calls, wantCalls)
	}

	wantDepths := []int{0, 1, 1, 0}
	for i, r := range results {
		if r.Depth != wantDepths[i] {
			t.Errorf("results[%d].Depth = %d, want %d", i, r.Depth, wantDepths[i])
		}
	}
}

func TestSearchEmptyDescriptionPrunes(t *testing.T) {
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"seed": {{VideoID: "s1", Title: "Python Programming Tutorial", Description: ""}},
		},
	}
	c, _ := newTestCrawler(searcher)

	results := c.Search(context.Background(), baseRequest("seed"))

	if len(searcher.calls) != 1 {
		t.Errorf("made %d API calls, want 1 (empty description must not expand)", len(searcher.calls))
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestSearchQuotaExhaustedFirstAttempt(t *testing.T) {
	searcher := &fakeSearcher{
		errs: map[string][]error{"cats": {quotaErr()}},
	}
	c, slept := newTestCrawler(searcher)

	results := c.Search(context.Background(), baseRequest("cats"))

	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(searcher.calls) != 1 {
		t.Errorf("made %d attempts, want 1 (quota exhaustion is a hard stop)", len(searcher.calls))
	}
	if len(*slept) != 0 {
		t.Errorf("slept %d times, want 0", len(*slept))
	}
}

func TestSearchTransientRetryBackoff(t *testing.T) {
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"cats": {{VideoID: "v1", Title: "Cats", Description: ""}},
		},
		errs: map[string][]error{"cats": {transientErr(), transientErr(), nil}},
	}
	c, _ := newTestCrawler(searcher)

	// Real jitter this time: each sleep must lie in [b*2^n, b*2^n + 1s).
	var slept []time.Duration
	c.jitter = func() time.Duration { return 500 * time.Millisecond }
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	req := baseRequest("cats")
	req.BaseBackoff = 2 * time.Second

	results := c.Search(context.Background(), req)

	if len(results) != 1 {
		t.Fatalf("got %d results after retries, want 1", len(results))
	}
	if len(searcher.calls) != 3 {
		t.Fatalf("made %d attempts, want 3", len(searcher.calls))
	}

	if len(slept) != 2 {
		t.Fatalf("slept %d times, want 2", len(slept))
	}
	for n, d := range slept {
		lo := req.BaseBackoff << n
		hi := lo + time.Second
		if d < lo || d >= hi {
			t.Errorf("sleep %d = %v, want in [%v, %v)", n, d, lo, hi)
		}
	}
}

func TestSearchRetriesExhausted(t *testing.T) {
	searcher := &fakeSearcher{
		errs: map[string][]error{"cats": {transientErr(), transientErr(), transientErr()}},
	}
	c, slept := newTestCrawler(searcher)

	req := baseRequest("cats")
	req.MaxRetries = 3

	results := c.Search(context.Background(), req)

	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(searcher.calls) != 3 {
		t.Errorf("made %d attempts, want 3", len(searcher.calls))
	}
	// No sleep after the final attempt.
	if len(*slept) != 2 {
		t.Errorf("slept %d times, want 2", len(*slept))
	}
}

func TestSearchNonRetryable(t *testing.T) {
	searcher := &fakeSearcher{
		errs: map[string][]error{"cats": {errors.New("unexpected payload")}},
	}
	c, slept := newTestCrawler(searcher)

	results := c.Search(context.Background(), baseRequest("cats"))

	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(searcher.calls) != 1 {
		t.Errorf("made %d attempts, want 1", len(searcher.calls))
	}
	if len(*slept) != 0 {
		t.Errorf("slept %d times, want 0", len(*slept))
	}
}

func TestSearchFailedBranchDoesNotAbortSiblings(t *testing.T) {
	// The "alpha" branch hits quota exhaustion; "beta" must still run and the
	// top-level crawl must keep every other result.
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"seed": {{VideoID: "s1", Title: "beta", Description: "alpha"}},
			"beta": {{VideoID: "b1", Title: "leaf b", Description: ""}},
		},
		errs: map[string][]error{"alpha": {quotaErr()}},
	}
	c, _ := newTestCrawler(searcher)

	req := baseRequest("seed")
	req.MaxDepth = 1
	results := c.Search(context.Background(), req)

	var order []string
	for _, r := range results {
		order = append(order, r.Title)
	}
	want := []string{"beta", "leaf b"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("result order = %v, want %v", order, want)
	}
}

func TestSearchIdempotent(t *testing.T) {
	build := func() *fakeSearcher {
		return &fakeSearcher{
			videos: map[string][]youtube.Video{
				"seed":  {{VideoID: "s1", Title: "alpha beta", Description: "gamma"}},
				"alpha": {{VideoID: "a1", Title: "leaf", Description: ""}},
				"beta":  {{VideoID: "b1", Title: "leaf", Description: ""}},
				"gamma": {{VideoID: "g1", Title: "leaf", Description: ""}},
			},
		}
	}

	req := baseRequest("seed")
	req.MaxDepth = 1
	req.MaxRetries = 1

	first := func() []Result {
		c, _ := newTestCrawler(build())
		return c.Search(context.Background(), req)
	}()
	second := func() []Result {
		c, _ := newTestCrawler(build())
		return c.Search(context.Background(), req)
	}()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two identical runs differ:\n first = %v\nsecond = %v", first, second)
	}
}

func TestSearchDepthBound(t *testing.T) {
	// Every keyword returns a video that would expand forever; MaxDepth must
	// cut the recursion off.
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{},
	}
	for _, kw := range []string{"loop", "again"} {
		searcher.videos[kw] = []youtube.Video{
			{VideoID: kw, Title: "loop", Description: "again"},
		}
	}
	c, _ := newTestCrawler(searcher)

	req := baseRequest("loop")
	req.MaxDepth = 2
	results := c.Search(context.Background(), req)

	if len(results) == 0 {
		t.Fatal("got no results")
	}
	for i, r := range results {
		if r.Depth > req.MaxDepth {
			t.Errorf("results[%d].Depth = %d, exceeds MaxDepth %d", i, r.Depth, req.MaxDepth)
		}
	}
}

func TestSearchCancelled(t *testing.T) {
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"cats": {{VideoID: "v1", Title: "Cats", Description: ""}},
		},
	}
	c, _ := newTestCrawler(searcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := c.Search(ctx, baseRequest("cats"))

	if len(results) != 0 {
		t.Errorf("got %d results on cancelled context, want 0", len(results))
	}
	if len(searcher.calls) != 0 {
		t.Errorf("made %d API calls on cancelled context, want 0", len(searcher.calls))
	}
}

func TestSearchNormalizesRetries(t *testing.T) {
	searcher := &fakeSearcher{
		videos: map[string][]youtube.Video{
			"cats": {{VideoID: "v1", Title: "Cats", Description: ""}},
		},
	}
	c, _ := newTestCrawler(searcher)

	req := baseRequest("cats")
	req.MaxRetries = 0

	if results := c.Search(context.Background(), req); len(results) != 1 {
		t.Errorf("got %d results with MaxRetries=0, want 1 (normalized to a single attempt)", len(results))
	}
}
