// Package places turns raw backend place records into Location values,
// filtering out everything that cannot be put on a map.
package places

import (
	"fmt"

	"github.com/chaejoon23/pind/internal/backend"
	"github.com/chaejoon23/pind/internal/model"
	"github.com/chaejoon23/pind/internal/youtube"
)

// defaultName is used when the backend reports a place without a name.
const defaultName = "Unknown Place"

// ValidCoordinates reports whether a nullable lat/lng pair is usable: both
// present, not the (0,0) "unknown" sentinel, and inside geographic range.
func ValidCoordinates(lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	if *lat == 0 && *lng == 0 {
		return false
	}
	return *lat >= -90 && *lat <= 90 && *lng >= -180 && *lng <= 180
}

// ConvertPlaces normalizes a batch of raw places into Locations owned by
// videoID. Places with unusable coordinates are dropped silently; zero
// survivors is a legitimate "nothing found" outcome, not an error. IDs are
// assigned over the post-filter sequence, so they stay dense.
func ConvertPlaces(raw []backend.Place, videoID string) []model.Location {
	var out []model.Location
	for _, p := range raw {
		if !ValidCoordinates(p.Lat, p.Lng) {
			continue
		}
		name := p.Name
		if name == "" {
			name = defaultName
		}
		out = append(out, model.Location{
			ID:          fmt.Sprintf("place-%d", len(out)),
			Name:        name,
			Coordinates: model.Coordinates{Lat: *p.Lat, Lng: *p.Lng},
			VideoID:     videoID,
		})
	}
	return out
}

// VideoFromHistory converts one server-side history entry into a Video,
// running its places through the same coordinate filter as fresh analysis
// results. Returns false when nothing mappable survives; such entries are
// not shown.
func VideoFromHistory(entry backend.HistoryEntry) (model.Video, bool) {
	locs := ConvertPlaces(entry.Places, entry.ID)
	if len(locs) == 0 {
		return model.Video{}, false
	}

	title := entry.Title
	if title == "" {
		title = youtube.PlaceholderTitle(entry.ID)
	}
	thumb := entry.ThumbnailURL
	if thumb == "" {
		thumb = youtube.ThumbnailURL(entry.ID)
	}

	return model.Video{
		ID:        entry.ID,
		Title:     title,
		Thumbnail: thumb,
		Date:      dayOf(entry.CreatedAt),
		Locations: locs,
	}, true
}

// dayOf trims a timestamp to day precision ("2026-08-28T09:00:00Z" ->
// "2026-08-28"). Non-timestamp strings pass through unchanged.
func dayOf(ts string) string {
	if len(ts) >= 10 && ts[4] == '-' && ts[7] == '-' {
		return ts[:10]
	}
	return ts
}
