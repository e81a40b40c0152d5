package aggregator

import (
	"sync"

	"github.com/chaejoon23/pind/internal/model"
)

// Collection is the live, in-memory video collection plus the user's current
// selection. It backs both the anonymous session and the web app's view of
// an authenticated one; concurrent analyses may Add while the UI reads.
//
// Auto-selection only happens inside Add, i.e. in direct response to a
// growth event. A selection that is empty because the user cleared it is
// therefore never overridden by a re-render.
type Collection struct {
	mu       sync.Mutex
	videos   []model.Video
	selected []string
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add merges v into the collection (replace same ID, else prepend, date
// descending). When the merge grows the collection while nothing is
// selected, the newcomer becomes the sole selection. Two Adds for the same
// ID are last-write-wins in call order.
func (c *Collection) Add(v model.Video) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.videos)
	c.videos = MergeVideo(c.videos, v)
	if len(c.videos) > before && len(c.selected) == 0 {
		c.selected = []string{v.ID}
	}
}

// Toggle flips a video in or out of the selection. Unknown IDs are ignored.
func (c *Collection) Toggle(videoID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, id := range c.selected {
		if id == videoID {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			return
		}
	}
	for _, v := range c.videos {
		if v.ID == videoID {
			c.selected = append(c.selected, videoID)
			return
		}
	}
}

// ClearSelection deselects everything. This is a user action: auto-selection
// will not undo it until the collection grows again.
func (c *Collection) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Videos returns a snapshot of the collection, newest first.
func (c *Collection) Videos() []model.Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Video, len(c.videos))
	copy(out, c.videos)
	return out
}

// Selected returns a snapshot of the selected video IDs.
func (c *Collection) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.selected))
	copy(out, c.selected)
	return out
}

// AnnotatedSelection recomputes the overlap projection for the current
// selection. Deterministic and order-preserving for stable rendering.
func (c *Collection) AnnotatedSelection() []model.AnnotatedLocation {
	c.mu.Lock()
	videos := make([]model.Video, len(c.videos))
	copy(videos, c.videos)
	selected := make([]string, len(c.selected))
	copy(selected, c.selected)
	c.mu.Unlock()

	return Annotate(SelectedLocations(videos, selected))
}

// Len returns the number of videos in the collection.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.videos)
}
