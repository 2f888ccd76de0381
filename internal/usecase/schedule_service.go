package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickslab/crex-api/internal/domain/pages"
	"github.com/crickslab/crex-api/internal/domain/schedule"
)

// ScheduleService serves normalized series schedules. Entries keep the
// upstream list order; no de-duplication is applied, so a fixture listed
// twice upstream appears twice here with distinct sequence ids.
type ScheduleService struct {
	provider MatchProvider
	cache    PageCache
	ttl      time.Duration
}

func NewScheduleService(provider MatchProvider, cache PageCache, ttl time.Duration) *ScheduleService {
	return &ScheduleService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

// GetSchedule resolves a series URL to its fixture list. A non-empty
// seriesPrefix overrides the prefix otherwise derived from the series slug,
// and participates in the cache key so overridden and derived results never
// mix.
func (s *ScheduleService) GetSchedule(ctx context.Context, rawURL, profile, seriesPrefix string) ([]schedule.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GetSchedule")
	defer span.End()

	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	canonical, err := pages.Canonicalize(rawURL, pages.KindSchedule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	seriesPrefix = strings.TrimSpace(seriesPrefix)
	key := canonical
	if seriesPrefix != "" {
		key = canonical + "#prefix=" + seriesPrefix
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		if entries, ok := cached.([]schedule.Entry); ok {
			return entries, nil
		}
	}

	entries, err := s.provider.FetchSchedule(ctx, canonical, profile, seriesPrefix)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	s.cache.Set(ctx, key, entries, s.ttl)
	return entries, nil
}
