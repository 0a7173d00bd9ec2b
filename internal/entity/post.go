package entity

// MediaType is the kind of media an Instagram post carries.
type MediaType string

const (
	MediaTypeImage         MediaType = "IMAGE"
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeCarouselAlbum MediaType = "CAROUSEL_ALBUM"
)

// Valid reports whether the media type is one of the known kinds
func (m MediaType) Valid() bool {
	switch m {
	case MediaTypeImage, MediaTypeVideo, MediaTypeCarouselAlbum:
		return true
	default:
		return false
	}
}

type Post struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption,omitempty"`
	MediaType MediaType `json:"media_type"`
	// URL or a local path of the primary media asset.
	MediaURL string `json:"media_url"`
	// Only meaningful for videos, and even then it may be absent.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Permalink    string `json:"permalink"`
	// ISO-8601 datetime as returned by the Graph API, e.g. 2025-01-15T20:00:00+0000.
	Timestamp string `json:"timestamp"`
}

// Valid reports whether the post has everything needed to be displayed
func (p Post) Valid() bool {
	return p.ID != "" && p.MediaURL != "" && p.Permalink != "" && p.MediaType.Valid()
}
