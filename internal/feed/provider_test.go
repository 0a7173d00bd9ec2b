package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whatyouseeau/socialfeed/internal/entity"
	"github.com/whatyouseeau/socialfeed/internal/feed"
)

const mediaResponse = `{
  "data": [
    {
      "id": "17900000000000001",
      "caption": "Neon dreams",
      "media_type": "IMAGE",
      "media_url": "https://cdn.example.com/1.jpg",
      "permalink": "https://www.instagram.com/p/AAA/",
      "timestamp": "2025-02-01T20:00:00+0000"
    },
    {
      "id": "17900000000000002",
      "media_type": "VIDEO",
      "media_url": "https://cdn.example.com/2.mp4",
      "thumbnail_url": "https://cdn.example.com/2.jpg",
      "permalink": "https://www.instagram.com/p/BBB/",
      "timestamp": "2025-01-30T21:00:00+0000"
    },
    {
      "id": "17900000000000003",
      "media_type": "IMAGE",
      "permalink": "https://www.instagram.com/p/CCC/",
      "timestamp": "2025-01-29T21:00:00+0000"
    }
  ],
  "paging": {"cursors": {"before": "QVFI", "after": "QVFJ"}, "next": "https://graph.instagram.com/next"}
}`

func TestGraphClient_Fetch(t *testing.T) {
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/me/media", r.URL.Path)
		assert.Equal(t, feed.MediaFields, r.URL.Query().Get("fields"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Equal(t, "TOKEN123", r.URL.Query().Get("access_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mediaResponse))
	}))
	defer srv.Close()

	client := feed.NewGraphClient(srv.URL, srv.Client(), discardLogger())

	posts, err := client.Fetch(context.Background(), "TOKEN123", 12)
	require.NoError(t, err)
	assert.Equal(t, 1, requests)

	// The post without media_url is skipped.
	require.Len(t, posts, 2)
	assert.Equal(t, "17900000000000001", posts[0].ID)
	assert.Equal(t, "Neon dreams", posts[0].Caption)
	assert.Equal(t, entity.MediaTypeImage, posts[0].MediaType)
	assert.Equal(t, entity.MediaTypeVideo, posts[1].MediaType)
	assert.Equal(t, "https://cdn.example.com/2.jpg", posts[1].ThumbnailURL)
	assert.Equal(t, "2025-01-30T21:00:00+0000", posts[1].Timestamp)
}

func TestGraphClient_FetchRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(mediaResponse))
	}))
	defer srv.Close()

	posts, err := feed.NewGraphClient(srv.URL, srv.Client(), discardLogger()).Fetch(context.Background(), "TOKEN123", 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "17900000000000001", posts[0].ID)
}

func TestGraphClient_FetchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	posts, err := feed.NewGraphClient(srv.URL, srv.Client(), discardLogger()).Fetch(context.Background(), "TOKEN123", 12)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGraphClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedError string
		expectedCode  int
	}{
		{
			name:          "Server error",
			status:        http.StatusInternalServerError,
			body:          `oops`,
			expectedError: "instagram api error: 500",
			expectedCode:  http.StatusInternalServerError,
		},
		{
			name:          "Graph error payload",
			status:        http.StatusBadRequest,
			body:          `{"error":{"message":"Invalid OAuth access token - Cannot parse access token","type":"OAuthException","code":190}}`,
			expectedError: "Invalid OAuth access token",
			expectedCode:  http.StatusBadRequest,
		},
		{
			name:          "Malformed JSON",
			status:        http.StatusOK,
			body:          `{"data": [`,
			expectedError: "could not decode media response",
		},
		{
			name:          "Empty object",
			status:        http.StatusOK,
			body:          `{}`,
			expectedError: "media response has no data array",
		},
		{
			name:          "Null data",
			status:        http.StatusOK,
			body:          `{"data": null}`,
			expectedError: "media response has no data array",
		},
		{
			name:          "Null body",
			status:        http.StatusOK,
			body:          `null`,
			expectedError: "media response has no data array",
		},
		{
			name:          "Unexpected envelope",
			status:        http.StatusOK,
			body:          `{"error_msg":"x"}`,
			expectedError: "media response has no data array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			posts, err := feed.NewGraphClient(srv.URL, srv.Client(), discardLogger()).Fetch(context.Background(), "TOKEN123", 12)
			require.Error(t, err)
			assert.Nil(t, posts)
			assert.Contains(t, err.Error(), tt.expectedError)

			if tt.expectedCode != 0 {
				var apiErr *feed.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.expectedCode, apiErr.StatusCode)
			}
		})
	}
}

func TestGraphClient_NetworkErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := feed.NewGraphClient(baseURL, nil, discardLogger()).Fetch(context.Background(), "TOKEN123", 12)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "TOKEN123")
}

func TestResolver_MissingDataIsProviderError(t *testing.T) {
	for _, body := range []string{`{}`, `{"data": null}`, `null`, `{"error_msg":"x"}`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			var failures []error

			resolver := feed.NewResolver(
				feed.NewGraphClient(srv.URL, srv.Client(), discardLogger()),
				discardLogger(),
				feed.WithFailureObserver(func(_ context.Context, err error) {
					failures = append(failures, err)
				}),
			)

			result := resolver.Resolve(context.Background(), "TOKEN123", 12)

			assert.Equal(t, entity.SourceFallback, result.Source)
			assert.Equal(t, entity.MessageProviderError, result.Message)
			assert.Len(t, result.Posts, 9)
			require.Len(t, failures, 1)
			assert.ErrorIs(t, failures[0], feed.ErrNoMediaData)
		})
	}
}
