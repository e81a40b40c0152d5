package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/analyzer"
	"github.com/chaejoon23/pind/internal/backend"
	"github.com/chaejoon23/pind/internal/model"
)

type cachedBackend struct {
	places []backend.Place
}

func (c *cachedBackend) Submit(ctx context.Context, url string) (backend.Submission, error) {
	return backend.Submission{Kind: backend.SubmissionCached, VideoID: "dQw4w9WgXcQ", JobID: "cached_dQw4w9WgXcQ"}, nil
}

func (c *cachedBackend) JobStatus(ctx context.Context, jobID string) (backend.JobStatus, error) {
	return backend.JobStatus{}, errors.New("not used")
}

func (c *cachedBackend) JobResult(ctx context.Context, jobID string) (backend.JobResult, error) {
	return backend.JobResult{}, errors.New("not used")
}

func (c *cachedBackend) PlacesForVideo(ctx context.Context, videoID string) ([]backend.Place, error) {
	return c.places, nil
}

func testPipeline(b analyzer.Backend) (*Pipeline, *aggregator.Collection) {
	coll := aggregator.NewCollection()
	return &Pipeline{
		Analyzer:   analyzer.New(b, zerolog.Nop()),
		Collection: coll,
		Logger:     zerolog.Nop(),
	}, coll
}

func f64(v float64) *float64 { return &v }

func TestAnalyzeAddsToCollection(t *testing.T) {
	p, coll := testPipeline(&cachedBackend{
		places: []backend.Place{
			{Name: "Cafe", Lat: f64(37.5), Lng: f64(127.0)},
			{Name: "", Lat: f64(0), Lng: f64(0)},
		},
	})

	video, ok, err := p.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", video.ID)
	require.Len(t, video.Locations, 1, "the zero-coordinate place must be filtered")
	assert.Equal(t, "Cafe", video.Locations[0].Name)
	assert.NotEmpty(t, video.Date)

	// Placeholders stand in when no metadata client is configured.
	assert.Equal(t, "YouTube Video - dQw4w9WgXcQ", video.Title)
	assert.Contains(t, video.Thumbnail, "dQw4w9WgXcQ")

	assert.Equal(t, 1, coll.Len())
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, coll.Selected())
}

func TestAnalyzeUnrecognizedURL(t *testing.T) {
	p, coll := testPipeline(&cachedBackend{})

	_, ok, err := p.Analyze(context.Background(), "https://example.com/watch", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, coll.Len())
}

func TestAnalyzeNoMappablePlaces(t *testing.T) {
	p, coll := testPipeline(&cachedBackend{places: nil})

	_, ok, err := p.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", nil)
	require.NoError(t, err)
	assert.False(t, ok, "empty result is not an error but adds nothing")
	assert.Zero(t, coll.Len())
}

func TestImportVideos(t *testing.T) {
	p, coll := testPipeline(&cachedBackend{})

	p.ImportVideos([]model.Video{
		{ID: "vid-a", Title: "A", Date: "2026-08-01"},
		{ID: "vid-b", Title: "B", Date: "2026-08-02"},
		{ID: "vid-a", Title: "A2", Date: "2026-08-01"},
	})

	assert.Equal(t, 2, coll.Len(), "same ID merges, not duplicates")
	videos := coll.Videos()
	assert.Equal(t, "vid-b", videos[0].ID)
	assert.Equal(t, "A2", videos[1].Title)
}
