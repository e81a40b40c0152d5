package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
)

// Metadata is the display title and thumbnail for a video.
type Metadata struct {
	Title     string
	Thumbnail string
}

// ThumbnailURL returns the public medium-quality thumbnail for a video ID.
func ThumbnailURL(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", id)
}

// PlaceholderTitle is used whenever a real title cannot be determined.
func PlaceholderTitle(id string) string {
	return "YouTube Video - " + id
}

// Placeholder returns synthesized metadata for a video ID.
func Placeholder(id string) Metadata {
	return Metadata{Title: PlaceholderTitle(id), Thumbnail: ThumbnailURL(id)}
}

type oembedResponse struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MetadataClient looks up video titles and thumbnails. Lookups are
// best-effort: every failure path degrades to Placeholder, never an error.
type MetadataClient struct {
	HTTPClient *http.Client
}

// NewMetadataClient returns a client with a short per-lookup timeout; a slow
// metadata source must not stall an analysis.
func NewMetadataClient() *MetadataClient {
	return &MetadataClient{HTTPClient: &http.Client{Timeout: 5 * time.Second}}
}

// Fetch resolves metadata for a video ID. It tries the public oEmbed
// endpoint first and falls back to scraping the watch page's OpenGraph tags.
func (c *MetadataClient) Fetch(ctx context.Context, id string) Metadata {
	if md, ok := c.fetchOEmbed(ctx, id); ok {
		return md
	}
	if md, ok := c.fetchWatchPage(ctx, id); ok {
		return md
	}
	return Placeholder(id)
}

func (c *MetadataClient) fetchOEmbed(ctx context.Context, id string) (Metadata, bool) {
	watch := "https://www.youtube.com/watch?v=" + id
	endpoint := "https://www.youtube.com/oembed?format=json&url=" + url.QueryEscape(watch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metadata{}, false
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Metadata{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, false
	}

	var oe oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&oe); err != nil || oe.Title == "" {
		return Metadata{}, false
	}

	md := Metadata{Title: oe.Title, Thumbnail: oe.ThumbnailURL}
	if md.Thumbnail == "" {
		md.Thumbnail = ThumbnailURL(id)
	}
	return md, true
}

func (c *MetadataClient) fetchWatchPage(ctx context.Context, id string) (Metadata, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.youtube.com/watch?v="+id, nil)
	if err != nil {
		return Metadata{}, false
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Metadata{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Metadata{}, false
	}

	md := ExtractOpenGraph(doc)
	if md.Title == "" {
		return Metadata{}, false
	}
	if md.Thumbnail == "" {
		md.Thumbnail = ThumbnailURL(id)
	}
	return md, true
}

// ExtractOpenGraph pulls og:title and og:image out of a parsed HTML page.
func ExtractOpenGraph(doc *goquery.Document) Metadata {
	var md Metadata
	doc.Find(`meta[property="og:title"]`).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok && md.Title == "" {
			md.Title = v
		}
	})
	doc.Find(`meta[property="og:image"]`).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok && md.Thumbnail == "" {
			md.Thumbnail = v
		}
	})
	return md
}
