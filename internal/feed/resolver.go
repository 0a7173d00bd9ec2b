package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whatyouseeau/socialfeed/internal/entity"
)

// FailureObserver is notified when the provider call fails
type FailureObserver func(ctx context.Context, err error)

// Resolver produces a FeedResult, preferring the live provider and falling
// back to the placeholder posts. It never fails and never returns an empty feed.
type Resolver struct {
	provider  Provider
	timeout   time.Duration
	onFailure FailureObserver
	logger    *slog.Logger
}

type Option func(*Resolver)

// WithTimeout bounds the provider call. Zero leaves it to the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithFailureObserver replaces the default observer that logs provider failures
func WithFailureObserver(fn FailureObserver) Option {
	return func(r *Resolver) {
		r.onFailure = fn
	}
}

func NewResolver(provider Provider, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		provider: provider,
		logger:   logger,
	}

	r.onFailure = r.logFailure

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns up to limit recent posts. An empty accessToken means
// Instagram is not configured and no request is made.
func (r *Resolver) Resolve(ctx context.Context, accessToken string, limit int) entity.FeedResult {
	if accessToken == "" {
		return fallback(entity.MessageNoCredential)
	}

	if limit < 1 {
		limit = entity.LimitDefault
	}

	posts, err := r.fetch(ctx, accessToken, limit)

	if err != nil {
		if r.onFailure != nil {
			r.onFailure(ctx, err)
		}

		return fallback(entity.MessageProviderError)
	}

	if len(posts) == 0 {
		return fallback(entity.MessageProviderEmpty)
	}

	return entity.FeedResult{
		Posts:   posts,
		Source:  entity.SourceProvider,
		Message: entity.MessageSuccess,
	}
}

func (r *Resolver) fetch(ctx context.Context, accessToken string, limit int) (posts []entity.Post, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			posts = nil
			err = fmt.Errorf("recovered: %v", rec)
		}
	}()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	return r.provider.Fetch(ctx, accessToken, limit)
}

func (r *Resolver) logFailure(ctx context.Context, err error) {
	r.logger.ErrorContext(ctx, "Instagram API error", "error", err)
}

func fallback(message string) entity.FeedResult {
	return entity.FeedResult{
		Posts:   PlaceholderPosts(),
		Source:  entity.SourceFallback,
		Message: message,
	}
}
