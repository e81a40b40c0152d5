package model

// Coordinates is a geographic point. (0,0) is the backend's sentinel for
// "unknown" and never appears on a stored Location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a single point of interest extracted from a video. The ID is
// unique within the batch that produced it ("place-0", "place-1", ...) and is
// not stable across re-analysis of the same video.
type Location struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	VideoID     string      `json:"videoId"`
}

// AnnotatedLocation is a Location plus the overlap annotation computed for
// the current selection. It is a derived projection, recomputed on every
// selection change and never persisted.
type AnnotatedLocation struct {
	Location
	OverlapCount int  `json:"overlapCount"`
	Highlighted  bool `json:"isHighlighted"`
}

// Video is one analyzed input and its extracted locations. The ID is the
// canonical YouTube identifier, which is the natural key for deduplication:
// a collection holds at most one Video per ID.
type Video struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Thumbnail string     `json:"thumbnail"`
	Date      string     `json:"date"` // day precision, e.g. "2026-08-28"
	Locations []Location `json:"locations"`
}
