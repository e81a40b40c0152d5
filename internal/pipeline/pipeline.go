// Package pipeline wires one URL through the whole client engine: identifier
// extraction, submission/polling, normalization, metadata, and merge into
// the collection and local cache. Both the CLI and the web app run analyses
// through it.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/analyzer"
	"github.com/chaejoon23/pind/internal/model"
	"github.com/chaejoon23/pind/internal/places"
	"github.com/chaejoon23/pind/internal/store"
	"github.com/chaejoon23/pind/internal/youtube"
)

// Pipeline composes the analysis engine with the collection and cache.
// Store and Metadata are optional.
type Pipeline struct {
	Analyzer   *analyzer.Analyzer
	Collection *aggregator.Collection
	Store      *store.Store
	Metadata   *youtube.MetadataClient
	Logger     zerolog.Logger
}

// Analyze runs one URL to completion. ok is false when the URL carries no
// recognizable video identifier or the analysis found nothing mappable;
// neither case is an error. Real failures come back as the analyzer's typed
// error (or ctx.Err on cancellation).
func (p *Pipeline) Analyze(ctx context.Context, url string, onProgress analyzer.ProgressFunc) (model.Video, bool, error) {
	videoID, found := youtube.ExtractVideoID(url)
	if !found {
		p.Logger.Warn().Str("url", url).Msg("no video identifier in URL")
		return model.Video{}, false, nil
	}

	res, err := p.Analyzer.ProcessURL(ctx, url, onProgress)
	if err != nil {
		return model.Video{}, false, err
	}

	locs := places.ConvertPlaces(res.Places, videoID)
	if len(locs) == 0 {
		p.Logger.Info().Str("videoId", videoID).Msg("no mappable places found")
		return model.Video{}, false, nil
	}

	video := model.Video{
		ID:        videoID,
		Title:     res.Title,
		Thumbnail: res.Thumbnail,
		Date:      time.Now().UTC().Format("2006-01-02"),
		Locations: locs,
	}
	p.fillMetadata(ctx, &video)

	p.Collection.Add(video)
	if p.Store != nil {
		if err := p.Store.UpsertVideo(video); err != nil {
			p.Logger.Warn().Err(err).Str("videoId", videoID).Msg("caching video failed")
		}
	}

	return video, true, nil
}

// ImportVideos merges already-converted videos (e.g. from history ingestion)
// into the collection and cache.
func (p *Pipeline) ImportVideos(videos []model.Video) {
	for _, v := range videos {
		p.Collection.Add(v)
		if p.Store != nil {
			if err := p.Store.UpsertVideo(v); err != nil {
				p.Logger.Warn().Err(err).Str("videoId", v.ID).Msg("caching video failed")
			}
		}
	}
}

func (p *Pipeline) fillMetadata(ctx context.Context, v *model.Video) {
	if v.Title != "" && v.Thumbnail != "" {
		return
	}

	md := youtube.Placeholder(v.ID)
	if p.Metadata != nil {
		md = p.Metadata.Fetch(ctx, v.ID)
	}
	if v.Title == "" {
		v.Title = md.Title
	}
	if v.Thumbnail == "" {
		v.Thumbnail = md.Thumbnail
	}
}
