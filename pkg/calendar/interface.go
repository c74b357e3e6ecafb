package calendar

import (
	"context"
	"log/slog"

	"gcalagenda/internal/models"
	"gcalagenda/pkg/query"
)

// Settings carries the provider-specific wiring a Provider needs at
// initialization time. Providers read only the fields relevant to them.
type Settings struct {
	// CredentialsPath is the OAuth client secret file. Read-only input,
	// never written by this program.
	CredentialsPath string

	// TokenPath is the persisted OAuth credential file. Read at startup,
	// rewritten only when credentials are refreshed or newly obtained.
	TokenPath string

	// FeedURL is the ICS feed location, for feed-backed providers.
	FeedURL string

	// CallbackPort is the local port the interactive consent flow
	// listens on.
	CallbackPort int
}

// Provider defines the interface that all calendar implementations must
// satisfy. ListEvents executes a query descriptor and returns raw event
// records in the descriptor's ordering; normalization for display is the
// caller's job.
type Provider interface {
	// Name returns the human-readable name of the calendar provider.
	Name() string

	// Type returns the provider type identifier (e.g. "google", "ical").
	Type() string

	// SetLogger sets the structured logger used by the provider.
	SetLogger(logger *slog.Logger)

	// Initialize sets up the provider, including any credential loading
	// or interactive authentication it requires.
	Initialize(ctx context.Context, settings Settings) error

	// ListEvents executes the query descriptor against the provider.
	ListEvents(ctx context.Context, desc query.Descriptor) ([]models.Event, error)

	// Close cleans up any resources used by the provider.
	Close() error
}

// ProviderFactory creates calendar providers based on configuration.
type ProviderFactory interface {
	// CreateProvider creates a new calendar provider instance.
	CreateProvider(providerType string) (Provider, error)

	// SupportedTypes returns a list of supported provider types.
	SupportedTypes() []string
}
