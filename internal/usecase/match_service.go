package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/pages"
)

// MatchService serves normalized match pages through a read-through TTL
// cache. Concurrent misses for the same URL are not coalesced: each caller
// fetches independently and the last write wins, which keeps the cache free
// of cross-request coupling at the cost of a few duplicate upstream hits.
type MatchService struct {
	provider MatchProvider
	cache    PageCache
	ttl      time.Duration
}

func NewMatchService(provider MatchProvider, cache PageCache, ttl time.Duration) *MatchService {
	return &MatchService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

// GetMatch resolves a scorecard URL to its normalized match document. Live
// and finished matches share the same shape; the state field tells them
// apart.
func (s *MatchService) GetMatch(ctx context.Context, rawURL, profile string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	if strings.TrimSpace(rawURL) == "" {
		return match.Match{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	key, err := pages.Canonicalize(rawURL, pages.KindScorecard)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		if m, ok := cached.(match.Match); ok {
			return m, nil
		}
	}

	m, err := s.provider.FetchMatch(ctx, key, profile)
	if err != nil {
		return match.Match{}, fmt.Errorf("fetch match: %w", err)
	}

	s.cache.Set(ctx, key, m, s.ttl)
	return m, nil
}
