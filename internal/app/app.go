package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/crickslab/crex-api/external/crex"
	"github.com/crickslab/crex-api/external/jobqueue"
	"github.com/crickslab/crex-api/internal/config"
	"github.com/crickslab/crex-api/internal/interfaces/httpapi"
	"github.com/crickslab/crex-api/internal/platform/cache"
	"github.com/crickslab/crex-api/internal/platform/logging"
	"github.com/crickslab/crex-api/internal/platform/resilience"
	"github.com/crickslab/crex-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, error) {
	store := cache.NewStore()

	client := crex.NewClient(crex.ClientConfig{
		BaseURL:        cfg.CrexBaseURL,
		Timeout:        cfg.CrexTimeout,
		Logger:         appLogger,
		DefaultProfile: cfg.CrexImpersonate,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CrexCircuitEnabled,
			FailureThreshold: cfg.CrexCircuitFailureCount,
			OpenTimeout:      cfg.CrexCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CrexCircuitHalfOpenMaxReq,
		},
		RecentBallCount: cfg.CrexRecentBalls,
		DefaultOvers:    cfg.CrexDefaultOvers,
	})

	matchSvc := usecase.NewMatchService(client, store, cfg.CacheTTLMatch)
	scheduleSvc := usecase.NewScheduleService(client, store, cfg.CacheTTLSchedule)
	squadSvc := usecase.NewSquadService(client, store, cfg.CacheTTLSquads)

	var publisher usecase.JobPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	warmSvc := usecase.NewWarmService(matchSvc, publisher, cfg.WarmMaxWorkers, appLogger)

	handler := httpapi.NewHandler(matchSvc, scheduleSvc, squadSvc, warmSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
