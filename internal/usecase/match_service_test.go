package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/schedule"
	"github.com/crickslab/crex-api/internal/platform/cache"
)

// fakeProvider counts fetches and replays canned payloads per method.
type fakeProvider struct {
	matchCalls    atomic.Int32
	scheduleCalls atomic.Int32
	squadCalls    atomic.Int32

	match    match.Match
	squads   match.SquadsPage
	schedule []schedule.Entry
	err      error
}

func (f *fakeProvider) FetchMatch(_ context.Context, _, _ string) (match.Match, error) {
	f.matchCalls.Add(1)
	return f.match, f.err
}

func (f *fakeProvider) FetchSquads(_ context.Context, _, _ string) (match.SquadsPage, error) {
	f.squadCalls.Add(1)
	return f.squads, f.err
}

func (f *fakeProvider) FetchSchedule(_ context.Context, _, _, _ string) ([]schedule.Entry, error) {
	f.scheduleCalls.Add(1)
	return f.schedule, f.err
}

func TestMatchService_CacheHitSkipsProvider(t *testing.T) {
	provider := &fakeProvider{match: match.Match{Success: true, State: match.StateLive}}
	svc := NewMatchService(provider, cache.NewStore(), time.Minute)

	for i := 0; i < 3; i++ {
		out, err := svc.GetMatch(t.Context(), "https://crex.live/ind-vs-aus/scorecard", "chrome")
		if err != nil {
			t.Fatalf("get match: %v", err)
		}
		if out.State != match.StateLive {
			t.Fatalf("unexpected state: %s", out.State)
		}
	}
	if got := provider.matchCalls.Load(); got != 1 {
		t.Fatalf("expected one upstream fetch, got %d", got)
	}
}

func TestMatchService_URLVariantsShareOneEntry(t *testing.T) {
	provider := &fakeProvider{match: match.Match{Success: true}}
	svc := NewMatchService(provider, cache.NewStore(), time.Minute)

	variants := []string{
		"https://crex.live/ind-vs-aus",
		"https://crex.live/ind-vs-aus/",
		"https://crex.live/ind-vs-aus/scorecard?utm=x",
		"https://crex.live/ind-vs-aus/scorecard#live",
	}
	for _, u := range variants {
		if _, err := svc.GetMatch(t.Context(), u, "chrome"); err != nil {
			t.Fatalf("get match %q: %v", u, err)
		}
	}
	if got := provider.matchCalls.Load(); got != 1 {
		t.Fatalf("canonical variants must share a cache entry, got %d fetches", got)
	}
}

func TestMatchService_InvalidInput(t *testing.T) {
	svc := NewMatchService(&fakeProvider{}, cache.NewStore(), time.Minute)

	if _, err := svc.GetMatch(t.Context(), "   ", "chrome"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank url, got %v", err)
	}
	if _, err := svc.GetMatch(t.Context(), "ftp://crex.live/x", "chrome"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad scheme, got %v", err)
	}
}

func TestMatchService_ErrorsAreNotCached(t *testing.T) {
	provider := &fakeProvider{err: ErrUpstreamUnreachable}
	svc := NewMatchService(provider, cache.NewStore(), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := svc.GetMatch(t.Context(), "https://crex.live/m/scorecard", "chrome"); !errors.Is(err, ErrUpstreamUnreachable) {
			t.Fatalf("expected wrapped upstream error, got %v", err)
		}
	}
	if got := provider.matchCalls.Load(); got != 2 {
		t.Fatalf("failures must not populate the cache, got %d fetches", got)
	}
}

func TestMatchService_ConcurrentMissesFetchIndependently(t *testing.T) {
	provider := &fakeProvider{match: match.Match{Success: true}}
	svc := NewMatchService(provider, cache.NewStore(), time.Minute)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.GetMatch(t.Context(), "https://crex.live/m/scorecard", "chrome"); err != nil {
				t.Errorf("get match: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	// Misses are deliberately not coalesced, so anywhere between one and
	// four fetches is correct depending on interleaving.
	if got := provider.matchCalls.Load(); got < 1 || got > 4 {
		t.Fatalf("unexpected fetch count: %d", got)
	}
}

func TestScheduleService_PrefixVariantsCacheSeparately(t *testing.T) {
	provider := &fakeProvider{schedule: []schedule.Entry{{ID: "001"}}}
	svc := NewScheduleService(provider, cache.NewStore(), time.Minute)

	if _, err := svc.GetSchedule(t.Context(), "https://crex.live/series/wc", "chrome", ""); err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if _, err := svc.GetSchedule(t.Context(), "https://crex.live/series/wc", "chrome", "wc24"); err != nil {
		t.Fatalf("get schedule with prefix: %v", err)
	}
	if got := provider.scheduleCalls.Load(); got != 2 {
		t.Fatalf("prefix override must get its own cache entry, got %d fetches", got)
	}

	if _, err := svc.GetSchedule(t.Context(), "https://crex.live/series/wc", "chrome", "wc24"); err != nil {
		t.Fatalf("repeat get schedule: %v", err)
	}
	if got := provider.scheduleCalls.Load(); got != 2 {
		t.Fatalf("repeat lookup must hit the cache, got %d fetches", got)
	}
}

func TestSquadService_CacheHit(t *testing.T) {
	provider := &fakeProvider{squads: match.SquadsPage{Success: true}}
	svc := NewSquadService(provider, cache.NewStore(), time.Minute)

	for i := 0; i < 2; i++ {
		out, err := svc.GetSquads(t.Context(), "https://crex.live/ind-vs-aus/squads", "chrome")
		if err != nil {
			t.Fatalf("get squads: %v", err)
		}
		if !out.Success {
			t.Fatal("expected success flag")
		}
	}
	if got := provider.squadCalls.Load(); got != 1 {
		t.Fatalf("expected one upstream fetch, got %d", got)
	}
}
