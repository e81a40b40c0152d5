// Package backend is the HTTP gateway to the Pind analysis service. It owns
// header and credential handling, error typing, and the wire shapes of every
// endpoint; nothing else in the program talks to the network directly.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/chaejoon23/pind/internal/session"
)

// HTTPError is a non-2xx response from the backend, carrying the message
// from the JSON error body when one was present.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an HTTP 404 from the backend. The
// places-by-video endpoint uses 404 to mean "record exists but has no
// places", which callers must treat as data, not failure.
func IsNotFound(err error) bool {
	he, ok := err.(*HTTPError)
	return ok && he.Status == http.StatusNotFound
}

// Client talks to one Pind backend. Session is optional; when present and
// authenticated, a bearer header is attached to every request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *session.Store
	Limiter    *rate.Limiter
	Logger     zerolog.Logger
}

// New creates a Client for the given base URL (no trailing slash needed).
func New(baseURL string, sess *session.Store, logger zerolog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Session:    sess,
		Limiter:    rate.NewLimiter(rate.Limit(5), 5),
		Logger:     logger,
	}
}

// errorBody is the backend's JSON error shape. FastAPI-style services put
// the human message under "detail"; "message" is accepted as a fallback.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do issues one request and decodes the 2xx JSON body into out (which may be
// nil for endpoints whose body the caller ignores). No shape validation is
// performed on success; defensive handling of malformed records belongs to
// the places package.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body []byte, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.Session != nil {
		if tok, ok := c.Session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	c.Logger.Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP error %d", resp.StatusCode)
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil {
			if eb.Detail != "" {
				msg = eb.Detail
			} else if eb.Message != "" {
				msg = eb.Message
			}
		}
		c.Logger.Debug().Int("status", resp.StatusCode).Str("path", path).Str("msg", msg).Msg("backend error")
		return &HTTPError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// cachedPrefix marks a job handle whose result the backend already has.
const cachedPrefix = "cached_"

// Submit enqueues a processing request for a video URL. The returned
// Submission says whether a result is already cached or a job must be
// polled.
func (c *Client) Submit(ctx context.Context, url string) (Submission, error) {
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := c.postJSON(ctx, "/api/v1/youtube/process", map[string]string{"url": url}, &resp); err != nil {
		return Submission{}, err
	}

	if rest, ok := strings.CutPrefix(resp.JobID, cachedPrefix); ok && rest != "" {
		return Submission{Kind: SubmissionCached, VideoID: rest, JobID: resp.JobID}, nil
	}
	return Submission{Kind: SubmissionQueued, JobID: resp.JobID}, nil
}

// JobStatus fetches the current state of a queued job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (JobStatus, error) {
	var st JobStatus
	err := c.getJSON(ctx, "/api/v1/jobs/"+jobID+"/status", &st)
	return st, err
}

// JobResult fetches the terminal payload of a job.
func (c *Client) JobResult(ctx context.Context, jobID string) (JobResult, error) {
	var res JobResult
	err := c.getJSON(ctx, "/api/v1/jobs/"+jobID+"/result", &res)
	return res, err
}

// PlacesForVideo looks up the stored places of a previously processed video.
// Callers must check IsNotFound: a 404 means "no places", not failure.
func (c *Client) PlacesForVideo(ctx context.Context, videoID string) ([]Place, error) {
	var places []Place
	err := c.getJSON(ctx, "/api/v1/youtube/places/"+videoID, &places)
	return places, err
}

// History fetches the authenticated user's analysis history.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := c.getJSON(ctx, "/api/v1/users/history", &entries)
	return entries, err
}
