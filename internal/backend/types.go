package backend

// Place is a raw place record as the backend reports it. Coordinates are
// nullable; the places package decides what survives.
type Place struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// Job status values reported by the status endpoint.
const (
	JobPending = "PENDING"
	JobSuccess = "SUCCESS"
	JobFailure = "FAILURE"
)

// JobStatus is one poll response for a queued analysis job.
type JobStatus struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	CurrentStep string `json:"current_step"`
}

// JobResult is the terminal payload of an analysis job.
type JobResult struct {
	JobID          string  `json:"job_id"`
	Status         string  `json:"status"`
	Places         []Place `json:"places"`
	VideoTitle     string  `json:"video_title,omitempty"`
	VideoThumbnail string  `json:"video_thumbnail,omitempty"`
	ProcessingTime float64 `json:"processing_time,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// SubmissionKind discriminates the two outcomes of submitting a URL.
type SubmissionKind int

const (
	// SubmissionQueued means a fresh job was enqueued and must be polled.
	SubmissionQueued SubmissionKind = iota
	// SubmissionCached means the backend already holds a result for this
	// exact input; the places can be fetched directly by video ID.
	SubmissionCached
)

// Submission is the decoded job handle returned by Submit. The "cached_"
// marker prefix is resolved here so that no other package has to sniff
// job-ID strings.
type Submission struct {
	Kind SubmissionKind
	// VideoID is set when Kind is SubmissionCached.
	VideoID string
	// JobID is the raw handle; for cached submissions it still carries the
	// full marker, usable as a fallback with the job-result endpoint.
	JobID string
}

// HistoryEntry is one item of the authenticated user's server-side history.
type HistoryEntry struct {
	ID           string  `json:"id"`
	Title        string  `json:"title,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
	Places       []Place `json:"places,omitempty"`
}

// Token is a bearer credential issued by the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
