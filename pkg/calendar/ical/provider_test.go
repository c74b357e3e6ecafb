package ical

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gcalagenda/pkg/calendar"
	"gcalagenda/pkg/query"
)

func TestProviderListEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(testFeed)
	}))
	defer server.Close()

	provider := NewProvider()
	if err := provider.Initialize(context.Background(), calendar.Settings{FeedURL: server.URL}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer provider.Close()

	w := mustWindow(t, "01/03/2024", "31/03/2024")
	desc := query.NewBuilder("primary", 0).Bounded(w)

	events, err := provider.ListEvents(context.Background(), desc)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 7 {
		t.Fatalf("Expected 7 events, got %d", len(events))
	}

	// Ordered by start time, like the API-backed providers.
	if events[0].Summary != "Standup" || events[0].StartDateTime != "2024-03-01T09:00:00Z" {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
}

func TestProviderListEventsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewProvider()
	if err := provider.Initialize(context.Background(), calendar.Settings{FeedURL: server.URL}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if _, err := provider.ListEvents(context.Background(), query.NewBuilder("", 0).Unbounded()); err == nil {
		t.Error("Expected error for failing feed")
	}
}

func TestProviderInitializeRequiresURL(t *testing.T) {
	provider := NewProvider()
	if err := provider.Initialize(context.Background(), calendar.Settings{}); err == nil {
		t.Error("Expected error for missing feed URL")
	}
}

func TestProviderListEventsUninitialized(t *testing.T) {
	provider := NewProvider()
	if _, err := provider.ListEvents(context.Background(), query.NewBuilder("", 0).Unbounded()); err == nil {
		t.Error("Expected error for uninitialized provider")
	}
}
