package feed

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/whatyouseeau/socialfeed/internal/entity"
)

const (
	feedTitle       = "What You See on Instagram"
	feedDescription = "Moments, textures, and scenes from @whatyouseeau"
)

// Generate renders a resolved feed as RSS or Atom and returns it as a byte array
func Generate(result entity.FeedResult, params *entity.FeedParams) ([]byte, error) {
	feed := &feeds.Feed{
		Title:       feedTitle,
		Description: feedDescription,
		Link:        &feeds.Link{Href: ProfileURL},
		Id:          ProfileURL,
	}

	for _, p := range result.Posts {
		// An unparsable timestamp leaves the item undated rather than failing the feed.
		created, _ := ParseTimestamp(p.Timestamp)

		item := &feeds.Item{
			Id:          p.ID,
			Title:       extractTitle(p.Caption),
			Description: p.Caption,
			Link:        &feeds.Link{Href: p.Permalink},
			Created:     created,
		}

		displayURL := DisplayURL(p)

		if mediaType := extractMediaTypeFromURL(displayURL); mediaType != "" {
			item.Enclosure = &feeds.Enclosure{
				Url:    displayURL,
				Type:   mediaType,
				Length: "0",
			}
		}

		feed.Items = append(feed.Items, item)

		if feed.Created.IsZero() || created.After(feed.Created) {
			feed.Created = created
		}
	}

	var content string
	var err error

	switch params.Format {
	case entity.FormatRSS:
		content, err = feed.ToRss()
	case entity.FormatAtom:
		content, err = feed.ToAtom()
	default:
		return nil, fmt.Errorf("unsupported feed format: %s", params.Format)
	}

	if err != nil {
		return nil, fmt.Errorf("could not marshal %s posts to feed: %w", result.Source, err)
	}

	return []byte(content), nil
}

func extractMediaTypeFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)

	if err != nil {
		return ""
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	default:
		return "" // Skip unsupported media types
	}
}
