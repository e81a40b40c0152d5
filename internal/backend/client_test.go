package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaejoon23/pind/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.Open(t.TempDir())
	require.NoError(t, err)

	c := New(srv.URL, sess, zerolog.Nop())
	return c, sess
}

func TestSubmitQueued(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/youtube/process", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"job_id": "job-42"}`))
	}))

	sub, err := c.Submit(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, SubmissionQueued, sub.Kind)
	assert.Equal(t, "job-42", sub.JobID)
	assert.Empty(t, sub.VideoID)
}

func TestSubmitCachedMarker(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"job_id": "cached_dQw4w9WgXcQ"}`))
	}))

	sub, err := c.Submit(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, SubmissionCached, sub.Kind)
	assert.Equal(t, "dQw4w9WgXcQ", sub.VideoID)
	assert.Equal(t, "cached_dQw4w9WgXcQ", sub.JobID)
}

func TestBearerAttachedWhenAuthenticated(t *testing.T) {
	var gotAuth string
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	_, err := c.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "anonymous request must not carry a bearer")

	require.NoError(t, sess.Save("tok-xyz", "bearer", "u@e.com"))
	_, err = c.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestErrorBodyDetailPreferred(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid credentials"}`))
	}))

	_, err := c.History(context.Background())
	require.Error(t, err)

	he, ok := err.(*HTTPError)
	require.True(t, ok, "expected *HTTPError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

func TestErrorBodyFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`not json at all`))
	}))

	_, err := c.History(context.Background())
	require.Error(t, err)

	he, ok := err.(*HTTPError)
	require.True(t, ok)
	assert.Equal(t, "HTTP error 502", he.Message)
}

func TestPlacesForVideoNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/youtube/places/dQw4w9WgXcQ", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "no places for video"}`))
	}))

	_, err := c.PlacesForVideo(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestJobStatusAndResult(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/jobs/j1/status":
			w.Write([]byte(`{"job_id":"j1","status":"PENDING","progress":40,"current_step":"transcribing"}`))
		case "/api/v1/jobs/j1/result":
			w.Write([]byte(`{"job_id":"j1","status":"SUCCESS","places":[{"name":"Cafe","lat":37.5,"lng":127.0}],"video_title":"T"}`))
		default:
			http.NotFound(w, r)
		}
	}))

	st, err := c.JobStatus(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, JobPending, st.Status)
	assert.Equal(t, 40, st.Progress)
	assert.Equal(t, "transcribing", st.CurrentStep)

	res, err := c.JobResult(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	assert.Equal(t, "Cafe", res.Places[0].Name)
	require.NotNil(t, res.Places[0].Lat)
	assert.Equal(t, 37.5, *res.Places[0].Lat)
	assert.Equal(t, "T", res.VideoTitle)
}

func TestLoginFormEncoded(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "u@e.com", r.PostForm.Get("username"))
		require.Equal(t, "hunter2", r.PostForm.Get("password"))
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	}))

	tok, err := c.Login(context.Background(), "u@e.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
}

func TestSignupJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))

	require.NoError(t, c.Signup(context.Background(), "u@e.com", "hunter2"))
}
