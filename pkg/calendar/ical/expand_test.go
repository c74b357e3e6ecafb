package ical

import (
	"testing"

	"gcalagenda/pkg/query"
)

func mustWindow(t *testing.T, start, end string) query.Window {
	t.Helper()
	w, err := query.BuildWindow(start, end)
	if err != nil {
		t.Fatalf("BuildWindow failed: %v", err)
	}
	return w
}

func TestExpandOccurrencesBounded(t *testing.T) {
	parsed, err := parseFeed(testFeed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}

	w := mustWindow(t, "01/03/2024", "31/03/2024")
	desc := query.NewBuilder("primary", 0).Bounded(w)

	events := expandOccurrences(parsed, desc)

	// Weekly standup lands on Mar 1, 8, 15, 22 and 29; the Apr 5, 12
	// and 19 occurrences fall outside the window. Plus the timed review
	// and the all-day offsite.
	if len(events) != 7 {
		t.Fatalf("Expected 7 events in March, got %d: %+v", len(events), events)
	}

	wantStarts := []string{
		"2024-03-01T09:00:00Z",
		"2024-03-08T09:00:00Z",
		"2024-03-15T09:00:00Z",
		"2024-03-15T14:30:00Z",
		"", // all-day carries a date, not a date-time
		"2024-03-22T09:00:00Z",
		"2024-03-29T09:00:00Z",
	}
	for i, want := range wantStarts {
		if events[i].StartDateTime != want {
			t.Errorf("Event %d: expected start date-time %q, got %q", i, want, events[i].StartDateTime)
		}
	}

	if events[4].StartDate != "2024-03-16" {
		t.Errorf("Expected all-day start date '2024-03-16', got %q", events[4].StartDate)
	}
	if events[4].Summary != "Offsite" {
		t.Errorf("Expected all-day event 'Offsite' at index 4, got %q", events[4].Summary)
	}
}

func TestExpandOccurrencesUnbounded(t *testing.T) {
	parsed, err := parseFeed(testFeed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}

	desc := query.NewBuilder("primary", 0).Unbounded()
	events := expandOccurrences(parsed, desc)

	// All 8 standup occurrences plus the two single events.
	if len(events) != 10 {
		t.Fatalf("Expected 10 events, got %d", len(events))
	}
}

func TestExpandOccurrencesResultCap(t *testing.T) {
	parsed, err := parseFeed(testFeed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}

	desc := query.NewBuilder("primary", 3).Unbounded()
	events := expandOccurrences(parsed, desc)

	if len(events) != 3 {
		t.Fatalf("Expected result cap of 3, got %d events", len(events))
	}
	// Cap keeps the earliest occurrences.
	if events[0].StartDateTime != "2024-03-01T09:00:00Z" {
		t.Errorf("Unexpected first event start %q", events[0].StartDateTime)
	}
}

func TestExpandOccurrencesHonorsExDates(t *testing.T) {
	feed := icsFixture(
		"BEGIN:VEVENT",
		"UID:weekly-ex",
		"DTSTART:20240301T090000Z",
		"DTEND:20240301T093000Z",
		"RRULE:FREQ=WEEKLY;COUNT=4",
		"EXDATE:20240308T090000Z",
		"SUMMARY:Standup",
		"END:VEVENT",
	)

	parsed, err := parseFeed(feed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}

	desc := query.NewBuilder("primary", 0).Unbounded()
	events := expandOccurrences(parsed, desc)

	if len(events) != 3 {
		t.Fatalf("Expected 3 occurrences after EXDATE, got %d", len(events))
	}
	for _, ev := range events {
		if ev.StartDateTime == "2024-03-08T09:00:00Z" {
			t.Error("Excluded occurrence still present")
		}
	}
}

func TestExpandOccurrencesNoExpansionWhenDisabled(t *testing.T) {
	parsed, err := parseFeed(testFeed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}

	desc := query.NewBuilder("primary", 0).Unbounded()
	desc.SingleEvents = false
	events := expandOccurrences(parsed, desc)

	// The recurring series collapses to its base instance.
	if len(events) != 3 {
		t.Fatalf("Expected 3 base events without expansion, got %d", len(events))
	}
}

func TestExpandOccurrencesWindowExcludesOutside(t *testing.T) {
	parsed, err := parseFeed(testFeed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}

	w := mustWindow(t, "01/01/2024", "31/01/2024")
	desc := query.NewBuilder("primary", 0).Bounded(w)

	if events := expandOccurrences(parsed, desc); len(events) != 0 {
		t.Errorf("Expected no events in January, got %d", len(events))
	}
}
