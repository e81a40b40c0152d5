package youtube

import "regexp"

// idPattern recognizes the watch, short-link, embed and /v/ URL forms. The
// identifier is always 11 characters and may be followed by extra query
// parameters, fragments or whitespace, none of which are captured.
var idPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID pulls the canonical 11-character video identifier out of a
// YouTube URL. It returns false for anything it does not recognize and never
// panics; callers treat a miss as "no identifier", not an error.
func ExtractVideoID(url string) (string, bool) {
	m := idPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
