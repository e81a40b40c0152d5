// Package aggregator reconciles analyzed videos into a deduplicated
// collection and computes the overlap annotations that drive map rendering.
package aggregator

import (
	"sort"

	"github.com/chaejoon23/pind/internal/model"
)

// MergeVideo merges v into videos: an existing entry with the same ID is
// replaced in place, otherwise v is prepended. The result is re-sorted by
// date descending; the sort is stable, so same-day entries keep their
// recency order.
func MergeVideo(videos []model.Video, v model.Video) []model.Video {
	out := make([]model.Video, 0, len(videos)+1)

	replaced := false
	for _, existing := range videos {
		if existing.ID == v.ID {
			out = append(out, v)
			replaced = true
		} else {
			out = append(out, existing)
		}
	}
	if !replaced {
		out = append([]model.Video{v}, out...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// SelectedLocations flattens the locations of the selected videos,
// preserving collection order and intra-video order.
func SelectedLocations(videos []model.Video, selectedIDs []string) []model.Location {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var out []model.Location
	for _, v := range videos {
		if selected[v.ID] {
			out = append(out, v.Locations...)
		}
	}
	return out
}
