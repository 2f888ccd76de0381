package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/pages"
)

// SquadService serves the squads view of a match page. Squad lists change
// rarely, so this tier runs with the longest cache TTL.
type SquadService struct {
	provider MatchProvider
	cache    PageCache
	ttl      time.Duration
}

func NewSquadService(provider MatchProvider, cache PageCache, ttl time.Duration) *SquadService {
	return &SquadService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

func (s *SquadService) GetSquads(ctx context.Context, rawURL, profile string) (match.SquadsPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquads")
	defer span.End()

	if strings.TrimSpace(rawURL) == "" {
		return match.SquadsPage{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	key, err := pages.Canonicalize(rawURL, pages.KindSquads)
	if err != nil {
		return match.SquadsPage{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		if sp, ok := cached.(match.SquadsPage); ok {
			return sp, nil
		}
	}

	sp, err := s.provider.FetchSquads(ctx, key, profile)
	if err != nil {
		return match.SquadsPage{}, fmt.Errorf("fetch squads: %w", err)
	}

	s.cache.Set(ctx, key, sp, s.ttl)
	return sp, nil
}
