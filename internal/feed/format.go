package feed

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/whatyouseeau/socialfeed/internal/entity"
)

const (
	// Layout used by the Graph API, e.g. 2025-01-15T20:00:00+0000
	graphTimeLayout = "2006-01-02T15:04:05-0700"
	postDateLayout  = "2 Jan"

	CaptionLengthDefault = 100
	captionEllipsis      = "..."
)

// ParseTimestamp parses a post timestamp in the Graph API or RFC3339 layout
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(graphTimeLayout, ts)

	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}

	return t, err
}

// FormatPostDate renders a post timestamp as a short day and month, e.g. "15 Jan".
// Dates are shown in UTC so the output does not depend on the server's zone.
// An unparsable timestamp yields an empty string.
func FormatPostDate(ts string) string {
	t, err := ParseTimestamp(ts)

	if err != nil {
		return ""
	}

	return t.UTC().Format(postDateLayout)
}

// TruncateCaption cuts a caption to maxLength characters and appends "...".
// Captions within the bound are returned unchanged.
func TruncateCaption(caption string, maxLength int) string {
	if caption == "" {
		return ""
	}

	if maxLength < 1 {
		maxLength = CaptionLengthDefault
	}

	if utf8.RuneCountInString(caption) <= maxLength {
		return caption
	}

	runes := []rune(caption)

	return strings.TrimSpace(string(runes[:maxLength])) + captionEllipsis
}

// DisplayURL returns the image to show for a post: the thumbnail for
// videos that have one, the media itself otherwise.
func DisplayURL(p entity.Post) string {
	if p.MediaType == entity.MediaTypeVideo && p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}

	return p.MediaURL
}
