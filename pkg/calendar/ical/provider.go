// Package ical implements a read-only calendar provider for public ICS
// feeds. Unlike API-backed providers, feeds deliver raw recurring
// events, so single-occurrence expansion and windowing happen client
// side.
package ical

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gcalagenda/internal/models"
	calendarPkg "gcalagenda/pkg/calendar"
	"gcalagenda/pkg/query"
	"gcalagenda/pkg/retry"
)

// Provider is a calendar provider backed by a single ICS feed URL.
type Provider struct {
	name    string
	url     string
	client  *http.Client
	logger  *slog.Logger
	retryer *retry.Retryer
}

// NewProvider creates a new ICS feed provider.
func NewProvider() *Provider {
	logger := slog.Default()

	return &Provider{
		name: "ICS Feed",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logger,
		retryer: retry.NewRetryer(retry.DefaultConfig(), logger),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.name
}

// Type returns the provider type identifier.
func (p *Provider) Type() string {
	return "ical"
}

// SetLogger sets the logger for this provider.
func (p *Provider) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
		p.retryer = retry.NewRetryer(retry.DefaultConfig(), logger)
	}
}

// Initialize records the feed URL. No credentials are involved.
func (p *Provider) Initialize(ctx context.Context, settings calendarPkg.Settings) error {
	if settings.FeedURL == "" {
		return fmt.Errorf("ICS feed URL is required")
	}
	p.url = settings.FeedURL
	return nil
}

// ListEvents fetches the feed, parses it, and applies the descriptor's
// listing semantics (expansion, window, ordering, result cap).
func (p *Provider) ListEvents(ctx context.Context, desc query.Descriptor) ([]models.Event, error) {
	if p.url == "" {
		return nil, fmt.Errorf("ICS provider not initialized")
	}

	body, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := parseFeed(body)
	if err != nil {
		return nil, err
	}

	events := expandOccurrences(parsed, desc)

	p.logger.Debug("fetched feed events",
		"url", p.url,
		"raw_count", len(parsed),
		"event_count", len(events),
		"bounded", desc.Window != nil)

	return events, nil
}

// fetch retrieves the feed body, retrying transient failures.
func (p *Provider) fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	err := p.retryer.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
		if err != nil {
			return err
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return retry.NewHTTPError(resp.StatusCode, resp.Status, p.url)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ICS feed: %w", err)
	}

	return body, nil
}

// Close cleans up resources.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
