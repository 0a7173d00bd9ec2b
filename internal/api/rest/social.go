package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/whatyouseeau/socialfeed/internal/cache"
	"github.com/whatyouseeau/socialfeed/internal/entity"
	"github.com/whatyouseeau/socialfeed/internal/feed"
	"golang.org/x/sync/singleflight"
)

const (
	cacheStatusHit  = "HIT"
	cacheStatusMiss = "MISS"

	// Placeholders served because Instagram failed are kept for a short while only.
	errorResultTTL = 5 * time.Minute

	cacheWriteTimeout = 5 * time.Second
)

// FeedResolver resolves the social feed, it must never fail
type FeedResolver interface {
	Resolve(ctx context.Context, accessToken string, limit int) entity.FeedResult
}

// SocialOpts configures the social feed route
type SocialOpts struct {
	// AccessToken for Instagram, empty when not configured.
	AccessToken string
	// Limit is the number of posts requested from Instagram.
	Limit int
	// Revalidate is how long a resolved feed stays fresh, 0 disables caching.
	Revalidate time.Duration
}

// SocialHandler serves the Instagram feed with placeholder fallback
type SocialHandler struct {
	cache    cache.Cache
	resolver FeedResolver
	opts     SocialOpts
	group    singleflight.Group
	logger   *slog.Logger
}

// NewSocialHandler creates a new SocialHandler and sets up routes
func NewSocialHandler(mux *http.ServeMux, c cache.Cache, r FeedResolver, opts SocialOpts, logger *slog.Logger) *SocialHandler {
	if opts.Limit < 1 {
		opts.Limit = entity.LimitDefault
	}

	handler := &SocialHandler{
		cache:    c,
		resolver: r,
		opts:     opts,
		logger:   logger,
	}

	mux.HandleFunc("GET /api/social-feed", handler.GetFeed)

	return handler
}

// GetFeed handles requests for the social feed. Upstream failures never
// surface here: the response is always a feed with at least one post.
func (h *SocialHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	params, err := entity.NewFeedParamFromRequest(r, h.opts.Limit)

	if err != nil {
		h.handleError(w, err, http.StatusBadRequest)
		return
	}

	result, cacheStatus := h.resolve(r.Context())
	result = result.Head(params.Count)

	var content []byte

	if params.Format == entity.FormatJSON {
		content, err = json.Marshal(result)
	} else {
		content, err = feed.Generate(result, params)
	}

	if err != nil {
		h.handleError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-CACHE-STATUS", cacheStatus)
	w.Header().Set("X-FEED-SOURCE", string(result.Source))
	h.serveContent(w, content, params.Format)
}

// resolve returns the cached feed or resolves a fresh one. Concurrent
// misses share a single resolution so every caller sees the same result.
func (h *SocialHandler) resolve(ctx context.Context) (entity.FeedResult, string) {
	if h.opts.Revalidate <= 0 {
		return h.resolver.Resolve(ctx, h.opts.AccessToken, h.opts.Limit), cacheStatusMiss
	}

	cacheKey := h.buildCacheKey()

	if result, ok := h.fromCache(ctx, cacheKey); ok {
		return result, cacheStatusHit
	}

	v, _, shared := h.group.Do(cacheKey, func() (any, error) {
		// The first caller's cancellation must not break the shared resolution
		result := h.resolver.Resolve(context.WithoutCancel(ctx), h.opts.AccessToken, h.opts.Limit)
		h.store(cacheKey, result)

		return result, nil
	})

	if shared {
		h.logger.Debug("Shared social feed resolution", "key", cacheKey)
	}

	return v.(entity.FeedResult), cacheStatusMiss
}

func (h *SocialHandler) fromCache(ctx context.Context, cacheKey string) (entity.FeedResult, bool) {
	var result entity.FeedResult

	cachedContent, err := h.cache.Get(ctx, cacheKey)

	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Real error, not just cache miss
			h.logger.Error("Cache error", "error", err)
		}

		return result, false
	}

	if err := json.Unmarshal(cachedContent, &result); err != nil || len(result.Posts) == 0 {
		h.logger.Warn("Discarding unreadable cached feed", "key", cacheKey, "error", err)
		return entity.FeedResult{}, false
	}

	return result, true
}

func (h *SocialHandler) store(cacheKey string, result entity.FeedResult) {
	ttl := h.opts.Revalidate

	if result.Message == entity.MessageProviderError {
		ttl = min(ttl, errorResultTTL)
	}

	content, err := json.Marshal(result)

	if err != nil {
		h.logger.Error("Failed to encode feed for cache", "error", err)
		return
	}

	// Use background context for caching to avoid cancellation
	cacheCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	if err := h.cache.Set(cacheCtx, cacheKey, content, ttl); err != nil {
		h.logger.Error("Failed to cache content", "error", err)
	}
}

// buildCacheKey generates a cache key for the configured feed
func (h *SocialHandler) buildCacheKey() string {
	return "social:feed:" + strconv.Itoa(h.opts.Limit)
}

// serveContent sends the content to the client with appropriate headers
func (h *SocialHandler) serveContent(w http.ResponseWriter, content []byte, format string) {
	var contentType string

	switch format {
	case entity.FormatRSS:
		contentType = "application/rss+xml"
	case entity.FormatAtom:
		contentType = "application/atom+xml"
	default:
		contentType = "application/json"
	}

	w.Header().Set("Content-Type", contentType+"; charset=utf-8")

	if seconds := int(h.opts.Revalidate.Seconds()); seconds > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d", seconds, seconds))
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}

	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

// handleError responds with an error message
func (h *SocialHandler) handleError(w http.ResponseWriter, err error, statusCode int) {
	h.logger.Error("Request error", "error", err, "status", statusCode)
	writeError(w, h.logger, err.Error(), statusCode)
}
