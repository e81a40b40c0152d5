package aggregator

import (
	"math"

	"github.com/chaejoon23/pind/internal/model"
)

// coordTolerance is the same-place threshold on each axis. It absorbs minor
// geocoding jitter while keeping distinct addresses distinct.
const coordTolerance = 0.001

// samePlace reports whether two locations refer to the same physical place.
func samePlace(a, b model.Coordinates) bool {
	return math.Abs(a.Lat-b.Lat) < coordTolerance && math.Abs(a.Lng-b.Lng) < coordTolerance
}

// Annotate computes the overlap projection for a flattened selection: each
// location's OverlapCount is the number of distinct videos whose locations
// fall within tolerance of it (itself included), and Highlighted marks
// places mentioned by more than one video. Output order matches input order;
// the computation is from scratch every time, nothing incremental.
func Annotate(locations []model.Location) []model.AnnotatedLocation {
	out := make([]model.AnnotatedLocation, 0, len(locations))
	for _, loc := range locations {
		videos := make(map[string]bool)
		for _, other := range locations {
			if samePlace(loc.Coordinates, other.Coordinates) {
				videos[other.VideoID] = true
			}
		}
		count := len(videos)
		out = append(out, model.AnnotatedLocation{
			Location:     loc,
			OverlapCount: count,
			Highlighted:  count > 1,
		})
	}
	return out
}

// Overlapping filters an annotated selection down to the highlighted places.
func Overlapping(annotated []model.AnnotatedLocation) []model.AnnotatedLocation {
	var out []model.AnnotatedLocation
	for _, a := range annotated {
		if a.Highlighted {
			out = append(out, a)
		}
	}
	return out
}
