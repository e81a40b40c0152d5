package aggregator

import (
	"testing"

	"github.com/chaejoon23/pind/internal/model"
)

func loc(videoID string, lat, lng float64) model.Location {
	return model.Location{Name: "p", Coordinates: model.Coordinates{Lat: lat, Lng: lng}, VideoID: videoID}
}

func TestAnnotateNearbyCoordinatesOverlap(t *testing.T) {
	locations := []model.Location{
		loc("a", 37.0001, 127.0001),
		loc("b", 37.0000, 127.0000),
		loc("b", 40.0, 130.0),
	}

	got := Annotate(locations)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	for i := 0; i < 2; i++ {
		if got[i].OverlapCount != 2 {
			t.Errorf("location %d: OverlapCount = %d, want 2", i, got[i].OverlapCount)
		}
		if !got[i].Highlighted {
			t.Errorf("location %d: expected highlighted", i)
		}
	}
	if got[2].OverlapCount != 1 {
		t.Errorf("lone location: OverlapCount = %d, want 1", got[2].OverlapCount)
	}
	if got[2].Highlighted {
		t.Error("lone location must not be highlighted")
	}
}

func TestAnnotateSameVideoCountsOnce(t *testing.T) {
	// Two pins from the same video at the same spot are one distinct video.
	locations := []model.Location{
		loc("a", 37.0, 127.0),
		loc("a", 37.0002, 127.0002),
	}

	got := Annotate(locations)
	for i, a := range got {
		if a.OverlapCount != 1 {
			t.Errorf("location %d: OverlapCount = %d, want 1", i, a.OverlapCount)
		}
		if a.Highlighted {
			t.Errorf("location %d: same-video cluster must not highlight", i)
		}
	}
}

func TestAnnotateToleranceBoundary(t *testing.T) {
	tests := []struct {
		name    string
		a, b    model.Coordinates
		overlap bool
	}{
		{"just inside", model.Coordinates{Lat: 37, Lng: 127}, model.Coordinates{Lat: 37.0009, Lng: 127.0009}, true},
		{"exactly at tolerance", model.Coordinates{Lat: 37, Lng: 127}, model.Coordinates{Lat: 37.001, Lng: 127.001}, false},
		{"one axis out", model.Coordinates{Lat: 37, Lng: 127}, model.Coordinates{Lat: 37.0001, Lng: 127.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := samePlace(tt.a, tt.b); got != tt.overlap {
				t.Errorf("samePlace(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.overlap)
			}
		})
	}
}

func TestAnnotatePreservesOrder(t *testing.T) {
	locations := []model.Location{
		loc("a", 1, 1), loc("b", 2, 2), loc("c", 3, 3),
	}
	got := Annotate(locations)
	for i := range locations {
		if got[i].VideoID != locations[i].VideoID {
			t.Fatalf("order changed at %d: got %q", i, got[i].VideoID)
		}
	}
}

func TestAnnotateEmpty(t *testing.T) {
	if got := Annotate(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %d", len(got))
	}
}

func TestOverlappingFilters(t *testing.T) {
	annotated := Annotate([]model.Location{
		loc("a", 37, 127),
		loc("b", 37, 127),
		loc("b", 40, 130),
	})

	got := Overlapping(annotated)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, a := range got {
		if !a.Highlighted {
			t.Errorf("non-highlighted entry leaked through: %+v", a)
		}
	}
}
