package analyzer

import "strings"

// Category is the user-facing classification of an analysis failure.
type Category int

const (
	// CategoryProcessing is the generic "processing failed" bucket.
	CategoryProcessing Category = iota
	// CategoryNetwork means transport failures exhausted the retry budget.
	CategoryNetwork
	// CategorySafety means the content was rejected by a safety filter.
	CategorySafety
	// CategoryEmptyResponse means the extraction model returned nothing.
	CategoryEmptyResponse
	// CategoryQuota means the backend's model quota is exhausted.
	CategoryQuota
)

func (c Category) String() string {
	switch c {
	case CategoryNetwork:
		return "network"
	case CategorySafety:
		return "safety"
	case CategoryEmptyResponse:
		return "empty-response"
	case CategoryQuota:
		return "quota"
	default:
		return "processing"
	}
}

// Error is the single typed failure ProcessURL can return. Message is safe
// to show to a user; raw transport detail stays in Err.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// User-facing messages per category.
const (
	msgProcessing    = "video processing failed"
	msgNetwork       = "network error while processing video"
	msgSafety        = "video was rejected by the content safety filter"
	msgEmptyResponse = "the analysis model returned an empty response"
	msgQuota         = "analysis quota exceeded, try again later"
)

// classify maps a backend failure message onto a category by substring.
// Unrecognized messages fall into the generic processing bucket.
func classify(errMsg string) *Error {
	lower := strings.ToLower(errMsg)
	switch {
	case strings.Contains(lower, "quota"):
		return &Error{Category: CategoryQuota, Message: msgQuota}
	case strings.Contains(lower, "safety") || strings.Contains(lower, "blocked"):
		return &Error{Category: CategorySafety, Message: msgSafety}
	case strings.Contains(lower, "empty response") || strings.Contains(lower, "no response"):
		return &Error{Category: CategoryEmptyResponse, Message: msgEmptyResponse}
	default:
		return &Error{Category: CategoryProcessing, Message: msgProcessing}
	}
}

func networkError(err error) *Error {
	return &Error{Category: CategoryNetwork, Message: msgNetwork, Err: err}
}
