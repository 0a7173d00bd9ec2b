package feed

//go:generate mockgen -destination=mocks/provider.go -package=mocks . Provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/whatyouseeau/socialfeed/internal/entity"
)

// DefaultGraphURL is the Instagram Graph API host
const DefaultGraphURL = "https://graph.instagram.com"

// MediaFields is the field set requested for every post
const MediaFields = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"

const maxResponseSize = 4 << 20

// Provider fetches recent posts from a remote social network
type Provider interface {
	Fetch(ctx context.Context, accessToken string, limit int) ([]entity.Post, error)
}

// APIError is returned when the Graph API answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("instagram api error: %d", e.StatusCode)
	}

	return fmt.Sprintf("instagram api error: %d: %s", e.StatusCode, e.Message)
}

// ErrNoMediaData is returned for a 2xx reply without a data array
var ErrNoMediaData = errors.New("media response has no data array")

type mediaResponse struct {
	// Nil when the reply carries no data array, empty for an account without posts.
	Data []entity.Post `json:"data"`
	// Paging cursors are ignored, only the first page is used.
	Paging json.RawMessage `json:"paging,omitempty"`
}

type graphErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GraphClient lists the token owner's media through the Instagram Graph API
type GraphClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewGraphClient(baseURL string, client *http.Client, logger *slog.Logger) *GraphClient {
	if baseURL == "" {
		baseURL = DefaultGraphURL
	}

	if client == nil {
		client = NewHTTPClient(0)
	}

	return &GraphClient{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// Fetch requests a single page of at most limit posts
func (c *GraphClient) Fetch(ctx context.Context, accessToken string, limit int) ([]entity.Post, error) {
	endpoint, err := url.Parse(c.baseURL)

	if err != nil {
		return nil, fmt.Errorf("could not parse graph url %q: %w", c.baseURL, err)
	}

	endpoint = endpoint.JoinPath("me", "media")
	publicURL := endpoint.String()

	qp := endpoint.Query()
	qp.Set("fields", MediaFields)
	qp.Set("limit", strconv.Itoa(limit))
	qp.Set("access_token", accessToken)
	endpoint.RawQuery = qp.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)

	if err != nil {
		return nil, fmt.Errorf("could not create request for %s: %w", publicURL, err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("could not request %s: %w", publicURL, redactURL(err, publicURL))
	}

	defer res.Body.Close()

	body := io.LimitReader(res.Body, maxResponseSize)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, newAPIError(res.StatusCode, body)
	}

	var media mediaResponse

	if err := json.NewDecoder(body).Decode(&media); err != nil {
		return nil, fmt.Errorf("could not decode media response: %w", err)
	}

	if media.Data == nil {
		return nil, ErrNoMediaData
	}

	posts := make([]entity.Post, 0, min(len(media.Data), limit))

	for _, p := range media.Data {
		if len(posts) == limit {
			break
		}

		if !p.Valid() {
			c.logger.Warn("Skipping malformed Instagram post",
				"id", p.ID,
				"mediaType", p.MediaType)

			continue
		}

		posts = append(posts, p)
	}

	return posts, nil
}

func newAPIError(statusCode int, body io.Reader) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var graphErr graphErrorResponse

	if err := json.NewDecoder(body).Decode(&graphErr); err == nil {
		apiErr.Message = graphErr.Error.Message
	}

	return apiErr
}

// redactURL replaces the request URL in transport errors so the
// access token never ends up in logs.
func redactURL(err error, publicURL string) error {
	var urlErr *url.Error

	if errors.As(err, &urlErr) {
		urlErr.URL = publicURL
	}

	return err
}
