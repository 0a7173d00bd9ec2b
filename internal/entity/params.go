package entity

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	FormatJSON = "json"
	FormatAtom = "atom"
	FormatRSS  = "rss"
)

// LimitDefault is how many posts are requested from Instagram when nothing else is configured
const LimitDefault = 12

// FeedParams represents validated request parameters for the social feed
type FeedParams struct {
	// Format is the response format: json, rss or atom
	Format string

	// Count trims the resolved posts to the first Count items.
	// A value of 0 means all resolved posts.
	Count int
}

// NewFeedParamFromRequest parses and validates request parameters and creates a new FeedParams.
// limit is the number of posts the server resolves, count may not exceed it.
func NewFeedParamFromRequest(r *http.Request, limit int) (*FeedParams, error) {
	qp := r.URL.Query()

	format := qp.Get("format")

	if format == "" {
		format = FormatJSON
	} else if format != FormatJSON && format != FormatRSS && format != FormatAtom {
		return nil, fmt.Errorf("format must be %s, %s or %s", FormatJSON, FormatRSS, FormatAtom)
	}

	count := 0

	if countStr := qp.Get("count"); countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)

		if err != nil {
			return nil, fmt.Errorf("count must be a valid integer")
		}

		if count < 1 || count > limit {
			return nil, fmt.Errorf("count must be between 1 and %d", limit)
		}
	}

	return &FeedParams{
		Format: format,
		Count:  count,
	}, nil
}
