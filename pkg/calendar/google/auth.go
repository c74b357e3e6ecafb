package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// TokenStore abstracts persistence of the OAuth2 credential so the token
// lifecycle can be exercised without touching the filesystem.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
}

// FileTokenStore persists the token as JSON in a single file, typically
// token.json next to the binary.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a token store backed by the given file path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

func (s *FileTokenStore) Save(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// TokenManager handles the OAuth2 credential lifecycle: loading a stored
// token, refreshing it silently when expired, and falling back to the
// interactive browser consent flow when nothing usable remains.
type TokenManager struct {
	config       *oauth2.Config
	store        TokenStore
	callbackPort int
	logger       *slog.Logger
}

// NewTokenManager creates a token manager from an OAuth client secret
// file, requesting read-only calendar access.
func NewTokenManager(credentialsPath string, store TokenStore, callbackPort int, logger *slog.Logger) (*TokenManager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	return &TokenManager{
		config:       config,
		store:        store,
		callbackPort: callbackPort,
		logger:       logger,
	}, nil
}

// Client returns an HTTP client carrying valid credentials.
//
// Recovery happens as close to the source as possible: an unreadable or
// malformed stored token is discarded and regenerated, an expired token
// with a refresh token is refreshed silently, and only when both fail
// does the interactive consent flow run.
func (tm *TokenManager) Client(ctx context.Context) (*http.Client, error) {
	token, err := tm.store.Load()
	if err != nil {
		tm.logger.Warn("invalid or missing token, regenerating credentials", "error", err)
		return tm.authorizedClient(ctx)
	}

	if !token.Valid() && token.RefreshToken == "" {
		tm.logger.Info("stored token expired with no refresh token")
		return tm.authorizedClient(ctx)
	}

	tokenSource := tm.config.TokenSource(ctx, token)

	fresh, err := tokenSource.Token()
	if err != nil {
		tm.logger.Warn("token refresh failed, regenerating credentials", "error", err)
		return tm.authorizedClient(ctx)
	}

	if fresh.AccessToken != token.AccessToken {
		tm.logger.Info("token refreshed, saving new token")
		if err := tm.store.Save(fresh); err != nil {
			tm.logger.Warn("failed to save refreshed token", "error", err)
		}
	}

	return oauth2.NewClient(ctx, tokenSource), nil
}

func (tm *TokenManager) authorizedClient(ctx context.Context) (*http.Client, error) {
	token, err := tm.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, tm.config.TokenSource(ctx, token)), nil
}
