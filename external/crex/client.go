package crex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/schedule"
	"github.com/crickslab/crex-api/internal/platform/logging"
	"github.com/crickslab/crex-api/internal/platform/resilience"
	"github.com/crickslab/crex-api/internal/usecase"
)

const (
	defaultTimeout = 20 * time.Second

	// Product constants preserved from the upstream's T20-era behavior.
	// Both look arbitrary; both are relied upon by existing clients.
	defaultRecentBallCount = 18
	defaultOversPlayed     = "20"
)

type ClientConfig struct {
	// BaseURL, when set, pins fetches to its host so the service cannot be
	// used as an open proxy. An empty value allows any host.
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *logging.Logger
	// DefaultProfile is the impersonation profile used when a request does
	// not name one.
	DefaultProfile  string
	CircuitBreaker  resilience.CircuitBreakerConfig
	RecentBallCount int
	DefaultOvers    string
}

// Client fetches upstream pages with a browser-impersonating transport and
// normalizes their embedded payloads. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	http           *resty.Client
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	allowedHost    string
	defaultProfile string
	opts           mapOptions
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := resty.New()
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	}
	rc.SetTimeout(timeout)
	rc.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(rc.GetClient().Transport)

	opts := mapOptions{
		recentBallCount: cfg.RecentBallCount,
		defaultOvers:    cfg.DefaultOvers,
	}
	if opts.recentBallCount <= 0 {
		opts.recentBallCount = defaultRecentBallCount
	}
	if opts.defaultOvers == "" {
		opts.defaultOvers = defaultOversPlayed
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	allowedHost := ""
	if parsed, err := url.Parse(strings.TrimSpace(cfg.BaseURL)); err == nil {
		allowedHost = parsed.Host
	}

	return &Client{
		http:           rc,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		allowedHost:    allowedHost,
		defaultProfile: strings.ToLower(strings.TrimSpace(cfg.DefaultProfile)),
		opts:           opts,
	}
}

// FetchMatch retrieves and normalizes a scorecard or live page.
func (c *Client) FetchMatch(ctx context.Context, url, profile string) (match.Match, error) {
	root, err := c.fetchPayload(ctx, url, profile)
	if err != nil {
		return match.Match{}, err
	}

	wrapper, err := resolveMatchWrapper(root)
	if err != nil {
		return match.Match{}, err
	}

	return mapMatch(wrapper, c.opts), nil
}

// FetchSquads retrieves and normalizes a squads page.
func (c *Client) FetchSquads(ctx context.Context, url, profile string) (match.SquadsPage, error) {
	root, err := c.fetchPayload(ctx, url, profile)
	if err != nil {
		return match.SquadsPage{}, err
	}

	wrapper, err := resolveMatchWrapper(root)
	if err != nil {
		return match.SquadsPage{}, err
	}

	return mapSquadsPage(wrapper), nil
}

// FetchSchedule retrieves and normalizes a series schedule page.
func (c *Client) FetchSchedule(ctx context.Context, url, profile, seriesPrefix string) ([]schedule.Entry, error) {
	root, err := c.fetchPayload(ctx, url, profile)
	if err != nil {
		return nil, err
	}

	items, err := resolveMatchList(root)
	if err != nil {
		return nil, err
	}

	return mapSchedule(items, seriesPrefix, c.opts.defaultOvers), nil
}

func (c *Client) fetchPayload(ctx context.Context, url, profile string) (map[string]any, error) {
	html, err := c.fetchPage(ctx, url, profile)
	if err != nil {
		return nil, err
	}
	return extractPayload(html)
}

// effectiveProfile resolves the impersonation profile for one request: the
// caller's choice when named, otherwise the configured default.
func (c *Client) effectiveProfile(profile string) string {
	if trimmed := strings.TrimSpace(profile); trimmed != "" {
		return trimmed
	}
	return c.defaultProfile
}

// fetchPage performs one upstream GET. Any non-200 status is a hard failure
// for the request; retries, if wanted, belong to the caller.
func (c *Client) fetchPage(ctx context.Context, rawURL, profile string) (string, error) {
	if c.allowedHost != "" {
		parsed, err := url.Parse(rawURL)
		if err != nil || parsed.Host != c.allowedHost {
			return "", fmt.Errorf("%w: host not allowed in %q", usecase.ErrInvalidInput, rawURL)
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: upstream temporarily suspended after repeated failures", usecase.ErrUpstreamUnreachable)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(profileHeaders(c.effectiveProfile(profile))).
		Get(rawURL)
	if err != nil {
		if c.circuitEnabled {
			c.breaker.RecordFailure()
		}
		return "", fmt.Errorf("%w: %v", usecase.ErrUpstreamUnreachable, crerr.Wrapf(err, "get %s", rawURL))
	}
	if resp.StatusCode() != http.StatusOK {
		if c.circuitEnabled {
			c.breaker.RecordFailure()
		}
		c.logger.WarnContext(ctx, "upstream returned non-200", "url", rawURL, "status", resp.StatusCode())
		return "", fmt.Errorf("%w: status=%d", usecase.ErrUpstreamUnreachable, resp.StatusCode())
	}

	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
	return resp.String(), nil
}
