package core

import "time"

// EpisodeSummary is a recently published episode as returned by the
// recent episodes endpoint. The landing loader forwards these untouched;
// only the render surface reads the fields.
type EpisodeSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Link          string `json:"link,omitempty"`
	DatePublished int64  `json:"datePublished,omitempty"`
	EnclosureURL  string `json:"enclosureUrl,omitempty"`
	Image         string `json:"image,omitempty"`
	FeedID        int64  `json:"feedId,omitempty"`
	FeedTitle     string `json:"feedTitle,omitempty"`
	FeedImage     string `json:"feedImage,omitempty"`
}

// PublishedAt returns the publication time, or the zero time when unknown.
func (e EpisodeSummary) PublishedAt() time.Time {
	if e.DatePublished <= 0 {
		return time.Time{}
	}
	return time.Unix(e.DatePublished, 0).UTC()
}

// Artwork returns the episode image, falling back to the feed image.
func (e EpisodeSummary) Artwork() string {
	if e.Image != "" {
		return e.Image
	}
	return e.FeedImage
}
