package aggregator

import (
	"reflect"
	"testing"

	"github.com/chaejoon23/pind/internal/model"
)

func TestCollectionAutoSelectsFirstVideo(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-01"))

	if got := c.Selected(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("selected = %v, want [a]", got)
	}
}

func TestCollectionAutoSelectOnlyWhenEmpty(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-01"))
	c.Add(vid("b", "2026-01-02"))

	// "a" is already selected; the second add must not touch the selection.
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("selected = %v, want [a]", got)
	}
}

func TestCollectionClearNotOverriddenByReplace(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-01"))
	c.ClearSelection()

	// Re-adding the same ID replaces, the collection does not grow, so the
	// cleared selection stands.
	c.Add(vid("a", "2026-01-01", model.Location{ID: "place-0"}))
	if got := c.Selected(); len(got) != 0 {
		t.Fatalf("selected = %v, want empty after user clear", got)
	}

	// A genuinely new video is a growth event and re-enables auto-selection.
	c.Add(vid("b", "2026-01-02"))
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("selected = %v, want [b]", got)
	}
}

func TestCollectionToggle(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-01"))
	c.Add(vid("b", "2026-01-02"))

	c.Toggle("b")
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("selected = %v, want [a b]", got)
	}

	c.Toggle("a")
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("selected = %v, want [b]", got)
	}

	c.Toggle("nope")
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("unknown ID changed selection: %v", got)
	}
}

func TestCollectionReplaceSameID(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-01"))
	c.Add(vid("a", "2026-01-01", model.Location{ID: "place-0", Name: "Cafe"}))

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	videos := c.Videos()
	if len(videos[0].Locations) != 1 {
		t.Fatalf("replacement lost: %+v", videos[0])
	}
}

func TestCollectionVideosNewestFirst(t *testing.T) {
	c := NewCollection()
	c.Add(vid("old", "2025-01-01"))
	c.Add(vid("new", "2026-01-01"))

	if got := ids(c.Videos()); !reflect.DeepEqual(got, []string{"new", "old"}) {
		t.Fatalf("order = %v, want [new old]", got)
	}
}

func TestAnnotatedSelection(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-02", loc("a", 37.0001, 127.0001)))
	c.Add(vid("b", "2026-01-01", loc("b", 37.0, 127.0)))
	c.Toggle("b")

	got := c.AnnotatedSelection()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, a := range got {
		if a.OverlapCount != 2 || !a.Highlighted {
			t.Errorf("location %d: count=%d highlighted=%v, want overlap", i, a.OverlapCount, a.Highlighted)
		}
	}
}

func TestCollectionSnapshotsAreCopies(t *testing.T) {
	c := NewCollection()
	c.Add(vid("a", "2026-01-01"))

	videos := c.Videos()
	videos[0].ID = "mutated"
	if c.Videos()[0].ID != "a" {
		t.Fatal("Videos snapshot shares backing state")
	}

	sel := c.Selected()
	sel[0] = "mutated"
	if c.Selected()[0] != "a" {
		t.Fatal("Selected snapshot shares backing state")
	}
}
