// Package analyzer drives one video analysis from submission to terminal
// state: it submits the URL, short-circuits on cached results, polls queued
// jobs with bounded transient-failure retries, and reports progress along
// the way.
package analyzer

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/chaejoon23/pind/internal/backend"
)

// Backend is the slice of the gateway the analyzer needs.
type Backend interface {
	Submit(ctx context.Context, url string) (backend.Submission, error)
	JobStatus(ctx context.Context, jobID string) (backend.JobStatus, error)
	JobResult(ctx context.Context, jobID string) (backend.JobResult, error)
	PlacesForVideo(ctx context.Context, videoID string) ([]backend.Place, error)
}

// ProgressFunc receives poll updates. Values are non-decreasing for a given
// job and arrive in poll order; no call is made after cancellation.
type ProgressFunc func(progress int, step string)

// Result is the successful outcome of ProcessURL. Places may be empty: a
// video with nothing mappable in it is a result, not a failure.
type Result struct {
	Places    []backend.Place
	Title     string
	Thumbnail string
}

const (
	defaultPollInterval  = 10 * time.Second
	defaultRetryInterval = 2 * time.Second
	defaultMaxRetries    = 3
)

// Analyzer runs analysis jobs against a backend.
type Analyzer struct {
	Backend Backend
	// PollInterval is the fixed wait between status polls (default 10s).
	PollInterval time.Duration
	// RetryInterval seeds the exponential backoff used for transient
	// transport failures (default 2s).
	RetryInterval time.Duration
	// MaxRetries bounds transient retries per operation (default 3).
	// Application-level job FAILURE is terminal and never retried.
	MaxRetries int
	Logger     zerolog.Logger
}

// New returns an Analyzer with the documented default policy.
func New(b Backend, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		Backend:       b,
		PollInterval:  defaultPollInterval,
		RetryInterval: defaultRetryInterval,
		MaxRetries:    defaultMaxRetries,
		Logger:        logger,
	}
}

// state of one analysis run. The zero value is stateSubmitted.
type state int

const (
	stateSubmitted state = iota
	stateCacheHit
	statePolling
	stateSucceeded
	stateFailed
)

// run carries the mutable pieces of one ProcessURL call between states.
type run struct {
	sub          backend.Submission
	onProgress   ProgressFunc
	lastProgress int
	result       *Result
	err          error
}

// ProcessURL submits url and blocks until the analysis reaches a terminal
// state. It returns either a Result (possibly with empty Places) or a typed
// *Error; the only other failure mode is ctx cancellation, which stops all
// polling and is returned as the context's error.
func (a *Analyzer) ProcessURL(ctx context.Context, url string, onProgress ProgressFunc) (*Result, error) {
	r := &run{onProgress: onProgress}
	st := stateSubmitted

	for {
		switch st {
		case stateSubmitted:
			sub, err := a.Backend.Submit(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return nil, networkError(err)
			}
			r.sub = sub
			if sub.Kind == backend.SubmissionCached {
				a.Logger.Debug().Str("videoId", sub.VideoID).Msg("cache hit")
				st = stateCacheHit
			} else {
				a.Logger.Debug().Str("jobId", sub.JobID).Msg("job queued")
				st = statePolling
			}

		case stateCacheHit:
			st = a.resolveCached(ctx, r)

		case statePolling:
			st = a.pollOnce(ctx, r)
			if st == statePolling {
				if err := a.wait(ctx); err != nil {
					return nil, err
				}
			}

		case stateSucceeded:
			return r.result, nil

		case stateFailed:
			return nil, r.err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
}

// resolveCached fetches the stored places for a cached submission. This path
// guarantees a (possibly empty) success: a 404 means "no places", and any
// other lookup failure gets one fallback attempt through the job-result
// endpoint before degrading to an empty result.
func (a *Analyzer) resolveCached(ctx context.Context, r *run) state {
	places, err := a.Backend.PlacesForVideo(ctx, r.sub.VideoID)
	if err == nil {
		r.result = &Result{Places: places}
		return stateSucceeded
	}
	if backend.IsNotFound(err) {
		r.result = &Result{}
		return stateSucceeded
	}

	a.Logger.Debug().Err(err).Msg("cached lookup failed, trying job result")
	if res, ferr := a.Backend.JobResult(ctx, r.sub.JobID); ferr == nil {
		r.result = &Result{Places: res.Places, Title: res.VideoTitle, Thumbnail: res.VideoThumbnail}
		return stateSucceeded
	}

	r.result = &Result{}
	return stateSucceeded
}

// pollOnce performs one status poll (with transient-retry protection) and
// decides the next state.
func (a *Analyzer) pollOnce(ctx context.Context, r *run) state {
	var st backend.JobStatus
	err := a.withRetry(ctx, func() error {
		var e error
		st, e = a.Backend.JobStatus(ctx, r.sub.JobID)
		return e
	})
	if err != nil {
		if ctx.Err() != nil {
			r.err = ctx.Err()
		} else {
			r.err = networkError(err)
		}
		return stateFailed
	}

	a.reportProgress(ctx, r, st.Progress, st.CurrentStep)

	switch st.Status {
	case backend.JobSuccess:
		return a.fetchResult(ctx, r)
	case backend.JobFailure:
		// Terminal. Fetch the detail message for classification, but never
		// surface transport noise from the detail fetch itself.
		res, ferr := a.Backend.JobResult(ctx, r.sub.JobID)
		if ferr != nil {
			r.err = &Error{Category: CategoryProcessing, Message: msgProcessing, Err: ferr}
		} else {
			r.err = classify(res.ErrorMessage)
		}
		return stateFailed
	default:
		return statePolling
	}
}

func (a *Analyzer) fetchResult(ctx context.Context, r *run) state {
	var res backend.JobResult
	err := a.withRetry(ctx, func() error {
		var e error
		res, e = a.Backend.JobResult(ctx, r.sub.JobID)
		return e
	})
	if err != nil {
		if ctx.Err() != nil {
			r.err = ctx.Err()
		} else {
			r.err = networkError(err)
		}
		return stateFailed
	}
	r.result = &Result{Places: res.Places, Title: res.VideoTitle, Thumbnail: res.VideoThumbnail}
	return stateSucceeded
}

// reportProgress clamps progress to be non-decreasing and suppresses
// callbacks once ctx is cancelled.
func (a *Analyzer) reportProgress(ctx context.Context, r *run, progress int, step string) {
	if r.onProgress == nil || ctx.Err() != nil {
		return
	}
	if progress < r.lastProgress {
		progress = r.lastProgress
	}
	r.lastProgress = progress
	r.onProgress(progress, step)
}

// withRetry runs op, retrying transport failures with exponential backoff up
// to MaxRetries additional attempts.
func (a *Analyzer) withRetry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = a.RetryInterval
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(a.MaxRetries)), ctx))
}

// wait sleeps one poll interval or returns early on cancellation.
func (a *Analyzer) wait(ctx context.Context) error {
	t := time.NewTimer(a.PollInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
