package ical

import (
	"strings"
	"testing"
	"time"
)

func icsFixture(lines ...string) []byte {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
	}, lines...)
	all = append(all, "END:VCALENDAR")
	return []byte(strings.Join(all, "\r\n") + "\r\n")
}

var testFeed = icsFixture(
	"BEGIN:VEVENT",
	"UID:timed-1",
	"DTSTART:20240315T143000Z",
	"DTEND:20240315T153000Z",
	"SUMMARY:Design review",
	"LOCATION:Room 4",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:allday-1",
	"DTSTART;VALUE=DATE:20240316",
	"DTEND;VALUE=DATE:20240317",
	"SUMMARY:Offsite",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:weekly-1",
	"DTSTART:20240301T090000Z",
	"DTEND:20240301T093000Z",
	"RRULE:FREQ=WEEKLY;COUNT=8",
	"SUMMARY:Standup",
	"END:VEVENT",
)

func TestParseFeed(t *testing.T) {
	events, err := parseFeed(testFeed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	byUID := make(map[string]feedEvent)
	for _, ev := range events {
		byUID[ev.UID] = ev
	}

	timed := byUID["timed-1"]
	if timed.Summary != "Design review" || timed.Location != "Room 4" {
		t.Errorf("Unexpected timed event fields: %+v", timed)
	}
	if timed.AllDay {
		t.Error("Expected timed event not to be all-day")
	}
	wantStart := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	if !timed.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, timed.Start)
	}
	if got := timed.End.Sub(timed.Start); got != time.Hour {
		t.Errorf("Expected one hour duration, got %v", got)
	}

	allDay := byUID["allday-1"]
	if !allDay.AllDay {
		t.Error("Expected VALUE=DATE event to be all-day")
	}
	if allDay.Summary != "Offsite" {
		t.Errorf("Expected summary 'Offsite', got %q", allDay.Summary)
	}

	weekly := byUID["weekly-1"]
	if weekly.RawRRule != "FREQ=WEEKLY;COUNT=8" {
		t.Errorf("Expected RRULE to be captured, got %q", weekly.RawRRule)
	}
}

func TestParseFeedMissingStart(t *testing.T) {
	feed := icsFixture(
		"BEGIN:VEVENT",
		"UID:no-start",
		"SUMMARY:Broken",
		"END:VEVENT",
	)

	if _, err := parseFeed(feed); err == nil {
		t.Error("Expected error for event without DTSTART")
	}
}

func TestParseFeedEmptyBody(t *testing.T) {
	if _, err := parseFeed(nil); err == nil {
		t.Error("Expected error for empty feed body")
	}
}

func TestParseFeedExDates(t *testing.T) {
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

	events, err := parseFeed(feed)
	if err != nil {
		t.Fatalf("parseFeed failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if len(events[0].ExDates) != 1 {
		t.Fatalf("Expected 1 exdate, got %d", len(events[0].ExDates))
	}

	want := time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC)
	if !events[0].ExDates[0].Equal(want) {
		t.Errorf("Expected exdate %v, got %v", want, events[0].ExDates[0])
	}
}

func TestParseICSTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"20240315T143000Z", time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{"20240315", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseICSTime(tt.input)
		if err != nil {
			t.Errorf("parseICSTime(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseICSTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseICSTime("not-a-time"); err == nil {
		t.Error("Expected error for unparsable time")
	}
}
