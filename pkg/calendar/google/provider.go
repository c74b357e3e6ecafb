// Package google implements the calendar provider for Google Calendar,
// including the OAuth2 credential lifecycle.
package google

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"gcalagenda/internal/models"
	calendarPkg "gcalagenda/pkg/calendar"
	"gcalagenda/pkg/query"
)

// Provider implements the calendar.Provider interface for Google Calendar.
type Provider struct {
	name    string
	service *calendar.Service
	tokens  *TokenManager
	logger  *slog.Logger
}

// NewProvider creates a new Google Calendar provider.
func NewProvider() *Provider {
	return &Provider{
		name:   "Google Calendar",
		logger: slog.Default(),
	}
}

// Name returns the human-readable name of the provider.
func (p *Provider) Name() string {
	return p.name
}

// Type returns the provider type identifier.
func (p *Provider) Type() string {
	return "google"
}

// SetLogger sets the logger for this provider.
func (p *Provider) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Initialize loads credentials, runs the token lifecycle (including the
// interactive consent flow when needed), and builds the API client.
func (p *Provider) Initialize(ctx context.Context, settings calendarPkg.Settings) error {
	store := NewFileTokenStore(settings.TokenPath)

	tokens, err := NewTokenManager(settings.CredentialsPath, store, settings.CallbackPort, p.logger)
	if err != nil {
		return err
	}
	p.tokens = tokens

	client, err := tokens.Client(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	p.service = service
	return nil
}

// ListEvents executes the query descriptor against the Google Calendar
// API. The remote call is not retried; any failure surfaces to the
// caller as-is.
func (p *Provider) ListEvents(ctx context.Context, desc query.Descriptor) ([]models.Event, error) {
	if p.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	call := p.service.Events.List(desc.CalendarID).
		Context(ctx).
		MaxResults(desc.MaxResults).
		SingleEvents(desc.SingleEvents).
		OrderBy(desc.OrderBy)

	if desc.Window != nil {
		call = call.TimeMin(desc.Window.Min()).TimeMax(desc.Window.Max())
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events for calendar %s: %w", desc.CalendarID, err)
	}

	events := make([]models.Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, convertEvent(item))
	}

	p.logger.Debug("fetched events",
		"calendar_id", desc.CalendarID,
		"event_count", len(events),
		"bounded", desc.Window != nil)

	return events, nil
}

// Close cleans up resources. The underlying HTTP client manages its own
// connections.
func (p *Provider) Close() error {
	p.service = nil
	p.tokens = nil
	return nil
}
