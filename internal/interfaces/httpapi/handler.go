package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/schedule"
	"github.com/crickslab/crex-api/internal/usecase"
)

// The handler depends on narrow interfaces rather than the concrete services
// so tests can swap in fakes without standing up a provider or cache.
type matchGetter interface {
	GetMatch(ctx context.Context, url, profile string) (match.Match, error)
}

type scheduleGetter interface {
	GetSchedule(ctx context.Context, url, profile, seriesPrefix string) ([]schedule.Entry, error)
}

type squadGetter interface {
	GetSquads(ctx context.Context, url, profile string) (match.SquadsPage, error)
}

type warmRunner interface {
	Warm(ctx context.Context, input usecase.WarmInput) (usecase.WarmResult, error)
}

type Handler struct {
	matches   matchGetter
	schedules scheduleGetter
	squads    squadGetter
	warmer    warmRunner
	logger    *slog.Logger
	validator *validator.Validate
}

func NewHandler(
	matches matchGetter,
	schedules scheduleGetter,
	squads squadGetter,
	warmer warmRunner,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		matches:   matches,
		schedules: schedules,
		squads:    squads,
		warmer:    warmer,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type matchQuery struct {
	URL     string `validate:"required,url"`
	Profile string `validate:"omitempty,oneof=chrome firefox safari random"`
}

// GetMatch serves the normalized document for one scorecard or live page.
// The document itself carries the success flag, so it is written as-is.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	q := matchQuery{
		URL:     r.URL.Query().Get("url"),
		Profile: r.URL.Query().Get("profile"),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matches.GetMatch(ctx, q.URL, q.Profile)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "url", q.URL, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, m)
}

type scheduleQuery struct {
	URL     string `validate:"required,url"`
	Profile string `validate:"omitempty,oneof=chrome firefox safari random"`
	Prefix  string `validate:"omitempty,max=64"`
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	q := scheduleQuery{
		URL:     r.URL.Query().Get("url"),
		Profile: r.URL.Query().Get("profile"),
		Prefix:  r.URL.Query().Get("prefix"),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.schedules.GetSchedule(ctx, q.URL, q.Profile, q.Prefix)
	if err != nil {
		h.logger.WarnContext(ctx, "get schedule failed", "url", q.URL, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"matches": entries,
	})
}

func (h *Handler) GetSquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquads")
	defer span.End()

	q := matchQuery{
		URL:     r.URL.Query().Get("url"),
		Profile: r.URL.Query().Get("profile"),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	sp, err := h.squads.GetSquads(ctx, q.URL, q.Profile)
	if err != nil {
		h.logger.WarnContext(ctx, "get squads failed", "url", q.URL, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, sp)
}

type warmJobRequest struct {
	URLs       []string `json:"urls" validate:"required,min=1,max=50,dive,required,url"`
	Profile    string   `json:"profile" validate:"omitempty,oneof=chrome firefox safari random"`
	MaxWorkers int      `json:"max_workers" validate:"omitempty,min=1,max=16"`
	Defer      bool     `json:"defer"`
}

// RunWarmJob pre-populates the match cache for a URL batch. With defer=true
// the batch is re-enqueued through the job queue instead of warmed inline.
func (h *Handler) RunWarmJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmJob")
	defer span.End()

	if h.warmer == nil {
		writeError(ctx, w, fmt.Errorf("%w: warm service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req warmJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(ctx, w, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.warmer.Warm(ctx, usecase.WarmInput{
		URLs:       req.URLs,
		Profile:    req.Profile,
		MaxWorkers: req.MaxWorkers,
		Defer:      req.Defer,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "warm job failed", "url_count", len(req.URLs), "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Deferred {
		status = http.StatusAccepted
	}
	writeJSON(ctx, w, status, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
