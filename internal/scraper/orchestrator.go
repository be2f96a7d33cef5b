// internal/scraper/orchestrator.go - top-level profile acquisition
package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/datalens/linkedscout/internal/monitoring"
	"github.com/datalens/linkedscout/internal/utils"
)

// ProfileReadySelector signals that a public profile page finished its
// initial render.
const ProfileReadySelector = "h1.top-card-layout__title, section.profile h1"

// runState tracks one acquisition run through its lifecycle.
type runState int

const (
	stateStart runState = iota
	stateProfileFetched
	stateLinksExtracted
	statePostsDispatched
	statePostsCollected
	stateAssembled
	stateAborted
)

func (s runState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateProfileFetched:
		return "profile_fetched"
	case stateLinksExtracted:
		return "links_extracted"
	case statePostsDispatched:
		return "posts_dispatched"
	case statePostsCollected:
		return "posts_collected"
	case stateAssembled:
		return "assembled"
	case stateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Options bound one acquisition run. The worker pool size also bounds the
// number of concurrent browser sessions, which are the expensive resource.
type Options struct {
	MaxPosts   int
	MaxWorkers int
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{MaxPosts: 15, MaxWorkers: 5}
}

// Orchestrator coordinates a full profile acquisition: one sequential
// profile-page fetch, then a bounded fan-out of the post extraction
// pipeline. Only total profile-page failure is fatal to a run; every
// per-post failure is absorbed.
type Orchestrator struct {
	fetcher  Fetcher
	pipeline *Pipeline
	opts     Options
	logger   utils.Logger
	metrics  *monitoring.Metrics
}

// NewOrchestrator creates an orchestrator. metrics may be nil.
func NewOrchestrator(fetcher Fetcher, opts Options, metrics *monitoring.Metrics) *Orchestrator {
	if opts.MaxPosts <= 0 {
		opts.MaxPosts = DefaultOptions().MaxPosts
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = DefaultOptions().MaxWorkers
	}
	return &Orchestrator{
		fetcher:  fetcher,
		pipeline: NewPipeline(fetcher, metrics),
		opts:     opts,
		logger:   utils.NewComponentLogger("orchestrator"),
		metrics:  metrics,
	}
}

// postOutcome is one worker's captured result, reported independently of
// its siblings.
type postOutcome struct {
	url    string
	result *PostResult
	err    error
}

// Acquire runs one acquisition for profileURL. It never fails because of
// per-post errors: a run that partially succeeds still returns the profile
// summary and whatever posts were extracted. When the profile page itself
// is unreachable, a minimal record with ScrapeFailed set is returned. The
// error is non-nil only when ctx was cancelled mid-run.
func (o *Orchestrator) Acquire(ctx context.Context, profileURL string) (*ProfileRecord, []PostRecord, error) {
	o.transition(profileURL, stateStart)

	start := time.Now()
	html, err := o.fetcher.Fetch(ctx, profileURL, ProfileReadySelector)
	if err != nil {
		o.metrics.PageFetched("profile", "error", 0)
		return o.abort(profileURL, err), nil, ctx.Err()
	}
	o.metrics.PageFetched("profile", "ok", time.Since(start))
	o.transition(profileURL, stateProfileFetched)

	profile, postURLs, err := ParseProfilePage(html, profileURL)
	if err != nil {
		return o.abort(profileURL, err), nil, ctx.Err()
	}
	o.transition(profileURL, stateLinksExtracted)

	if len(postURLs) > o.opts.MaxPosts {
		postURLs = postURLs[:o.opts.MaxPosts]
	}

	posts := o.collectPosts(ctx, profile, postURLs)
	o.transition(profileURL, statePostsCollected)

	profile.PostsScraped = len(posts)
	profile.AvgEngagement = averageEngagement(posts)
	o.transition(profileURL, stateAssembled)

	status := "ok"
	if len(posts) < len(postURLs) {
		status = "partial"
	}
	o.metrics.AcquisitionFinished(status)
	o.logger.Infof("acquisition finished profile=%s posts=%d/%d avg_engagement=%.1f",
		profile.Username, len(posts), len(postURLs), profile.AvgEngagement)

	return profile, posts, ctx.Err()
}

// collectPosts fans the post URLs out over a bounded worker pool and
// gathers results in completion order. Callers must not assume any ordering
// of the returned slice.
func (o *Orchestrator) collectPosts(ctx context.Context, profile *ProfileRecord, postURLs []string) []PostRecord {
	if len(postURLs) == 0 {
		return []PostRecord{}
	}

	workers := o.opts.MaxWorkers
	if len(postURLs) < workers {
		workers = len(postURLs)
	}

	jobs := make(chan string)
	outcomes := make(chan postOutcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.metrics.WorkerStarted()
			defer o.metrics.WorkerStopped()
			for url := range jobs {
				outcomes <- o.runUnit(ctx, url)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, url := range postURLs {
			select {
			case jobs <- url:
			case <-ctx.Done():
				return
			}
		}
	}()

	o.transition(profile.ProfileURL, statePostsDispatched)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	posts := make([]PostRecord, 0, len(postURLs))
	for outcome := range outcomes {
		if outcome.err != nil {
			o.logger.Warnf("post excluded from results url=%s err=%v", outcome.url, outcome.err)
			continue
		}
		record := outcome.result.Record
		record.ProfileURL = profile.ProfileURL
		record.ProfileName = profile.Name
		if outcome.result.Degraded() {
			o.logger.Debugf("degraded record url=%s warnings=%v", outcome.url, outcome.result.Warnings)
		}
		posts = append(posts, record)
	}
	return posts
}

// runUnit executes the pipeline for one URL, converting a worker panic into
// a reported failure so it cannot take down sibling workers.
func (o *Orchestrator) runUnit(ctx context.Context, url string) (outcome postOutcome) {
	outcome.url = url
	defer func() {
		if r := recover(); r != nil {
			outcome.result = nil
			outcome.err = fmt.Errorf("worker panic: %v", r)
		}
	}()
	outcome.result, outcome.err = o.pipeline.Extract(ctx, url)
	return outcome
}

// abort produces the minimal failure-marked record returned when the
// profile page itself could not be acquired.
func (o *Orchestrator) abort(profileURL string, cause error) *ProfileRecord {
	o.transition(profileURL, stateAborted)
	o.metrics.AcquisitionFinished("aborted")
	o.logger.Errorf("acquisition aborted profile=%s err=%v", profileURL, cause)
	return &ProfileRecord{
		ProfileURL:   profileURL,
		Username:     utils.UsernameFromURL(profileURL),
		ScrapeFailed: true,
	}
}

func (o *Orchestrator) transition(profileURL string, state runState) {
	o.logger.Debugf("run state profile=%s state=%s", profileURL, state)
}

// averageEngagement is the arithmetic mean of post engagement scores, 0
// when no posts were collected.
func averageEngagement(posts []PostRecord) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += p.Engagement
	}
	return float64(total) / float64(len(posts))
}
