package app

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 2 * time.Second

// InitSentry configures the global Sentry hub. The returned func flushes
// buffered events and must be called before the process exits.
func InitSentry(dsn, env string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		AttachStacktrace: true,
	})

	if err != nil {
		return nil, fmt.Errorf("could not initialize sentry: %w", err)
	}

	return func() { sentry.Flush(sentryFlushTimeout) }, nil
}
