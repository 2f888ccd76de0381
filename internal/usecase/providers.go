package usecase

import (
	"context"
	"time"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/schedule"
)

// MatchProvider fetches and normalizes one upstream page per call. The url
// passed in is already canonical.
type MatchProvider interface {
	FetchMatch(ctx context.Context, url, profile string) (match.Match, error)
	FetchSquads(ctx context.Context, url, profile string) (match.SquadsPage, error)
	FetchSchedule(ctx context.Context, url, profile, seriesPrefix string) ([]schedule.Entry, error)
}

// PageCache is the read-through cache in front of the provider. Implementations
// must expire entries on their own; services never delete by hand.
type PageCache interface {
	Get(ctx context.Context, key string) (any, bool)
	Set(ctx context.Context, key string, value any, ttl time.Duration)
}

// JobPublisher enqueues a deferred warm request for later delivery.
type JobPublisher interface {
	PublishWarmJob(ctx context.Context, urls []string, profile string) error
}
