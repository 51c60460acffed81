// Package github lists public repositories from the GitHub REST API and maps
// them to draft portfolio projects.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
	"github.com/rpggio/folio/internal/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	reposPerPage   = 100
	metricsService = "github"
)

var (
	// ErrAccountNotFound indicates the user or organization does not exist.
	ErrAccountNotFound = errors.New("github account not found")
	// ErrRateLimited indicates GitHub refused the request for quota reasons.
	ErrRateLimited = errors.New("github rate limit exceeded")
)

// Repository is the subset of the GitHub repository payload folio uses.
type Repository struct {
	Name        string
	FullName    string
	Description string
	HTMLURL     string
	Homepage    string
	Language    string
	Topics      []string
	Fork        bool
	PushedAt    time.Time
}

// Config configures the client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to the GitHub REST API.
type Client struct {
	api     *gh.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewClient creates a client. An empty token makes anonymous requests. An
// unparseable BaseURL falls back to the public API.
func NewClient(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	api := gh.NewClient(&http.Client{Timeout: cfg.Timeout})
	if cfg.Token != "" {
		api = api.WithAuthToken(cfg.Token)
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		// go-github requires the trailing slash.
		if u, err := url.Parse(strings.TrimRight(base, "/") + "/"); err == nil {
			api.BaseURL = u
		} else {
			logger.Warn("ignoring invalid github base url", "base_url", base, "error", err)
		}
	}
	return &Client{api: api, metrics: m, logger: logger}
}

// ListRepositories returns the most recently updated public repositories of
// account, up to one page of 100.
func (c *Client) ListRepositories(ctx context.Context, account string) (repos []Repository, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveExternal(metricsService, "list_repositories", start, err) }()

	listed, _, err := c.api.Repositories.ListByUser(ctx, account, &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: reposPerPage},
	})
	if err != nil {
		return nil, c.classify(account, err)
	}

	repos = make([]Repository, 0, len(listed))
	for _, r := range listed {
		repos = append(repos, Repository{
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			HTMLURL:     r.GetHTMLURL(),
			Homepage:    r.GetHomepage(),
			Language:    r.GetLanguage(),
			Topics:      r.Topics,
			Fork:        r.GetFork(),
			PushedAt:    r.GetPushedAt().Time,
		})
	}
	return repos, nil
}

func (c *Client) classify(account string, err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var respErr *gh.ErrorResponse
	switch {
	case errors.As(err, &rateErr):
		c.logger.Warn("github quota exhausted", "remaining", rateErr.Rate.Remaining, "reset", rateErr.Rate.Reset.Time)
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case errors.As(err, &abuseErr):
		c.logger.Warn("github secondary rate limit", "retry_after", abuseErr.GetRetryAfter())
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrAccountNotFound, account)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		default:
			return fmt.Errorf("github api error (status %d): %s", respErr.Response.StatusCode, strings.TrimSpace(respErr.Message))
		}
	default:
		return fmt.Errorf("listing repositories: %w", err)
	}
}
