package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/crickslab/crex-api/internal/platform/logging"
)

const (
	warmStatusSuccess = "success"
	warmStatusFailed  = "failed"

	defaultWarmWorkers = 4
	maxWarmWorkers     = 16
	maxWarmURLs        = 50
)

type WarmInput struct {
	URLs    []string
	Profile string
	// MaxWorkers caps the fan-out; zero means the default.
	MaxWorkers int
	// Defer enqueues the job for later delivery instead of warming inline.
	Defer bool
}

type WarmResult struct {
	URLCount     int              `json:"url_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	WorkerCount  int              `json:"worker_count"`
	Deferred     bool             `json:"deferred"`
	Rows         []WarmTaskResult `json:"rows,omitempty"`
}

type WarmTaskResult struct {
	URL        string `json:"url"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// WarmService pre-populates the match cache for a batch of URLs. Each URL is
// warmed independently; one failing page never aborts the batch.
type WarmService struct {
	matches        *MatchService
	publisher      JobPublisher
	defaultWorkers int
	logger         *logging.Logger
}

// NewWarmService builds a warm service. publisher may be nil, in which case
// deferred warming is not available. defaultWorkers is the fan-out used when
// a job does not set MaxWorkers; non-positive values fall back to the
// built-in default.
func NewWarmService(matches *MatchService, publisher JobPublisher, defaultWorkers int, logger *logging.Logger) *WarmService {
	if defaultWorkers <= 0 {
		defaultWorkers = defaultWarmWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmService{
		matches:        matches,
		publisher:      publisher,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *WarmService) Warm(ctx context.Context, input WarmInput) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmService.Warm")
	defer span.End()

	urls := make([]string, 0, len(input.URLs))
	for _, raw := range input.URLs {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			urls = append(urls, raw)
		}
	}
	if len(urls) == 0 {
		return WarmResult{}, fmt.Errorf("%w: at least one url is required", ErrInvalidInput)
	}
	if len(urls) > maxWarmURLs {
		return WarmResult{}, fmt.Errorf("%w: at most %d urls per job", ErrInvalidInput, maxWarmURLs)
	}

	if input.Defer {
		if s.publisher == nil {
			return WarmResult{}, fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
		}
		if err := s.publisher.PublishWarmJob(ctx, urls, input.Profile); err != nil {
			return WarmResult{}, fmt.Errorf("publish warm job: %w", err)
		}
		return WarmResult{URLCount: len(urls), Deferred: true}, nil
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.defaultWorkers
	}
	if workerCount > maxWarmWorkers {
		workerCount = maxWarmWorkers
	}
	if workerCount > len(urls) {
		workerCount = len(urls)
	}

	results := make(chan WarmTaskResult, len(urls))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, raw := range urls {
		raw := raw
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmTaskResult{URL: raw, Status: warmStatusSuccess}

			if _, err := s.matches.GetMatch(ctx, raw, input.Profile); err != nil {
				row.Status = warmStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "warm target failed", "url", raw, "error", err)
			} else {
				successCount.Add(1)
			}

			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return WarmResult{}, fmt.Errorf("submit url to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	result := WarmResult{
		URLCount:    len(urls),
		WorkerCount: workerCount,
	}
	for row := range results {
		result.Rows = append(result.Rows, row)
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].URL < result.Rows[j].URL
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
