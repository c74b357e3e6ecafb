package models

import (
	"fmt"
	"strings"
	"time"
)

// Defaults and markers used when rendering events for display.
const (
	NoTitle      = "No Title"
	NoLocation   = "No Location"
	AllDayMarker = "All Day"

	displayDateLayout = "02/01/2006"
	displayTimeLayout = "15:04:05"
	naiveLayout       = "2006-01-02T15:04:05"
	dateOnlyLayout    = "2006-01-02"
)

// Event is the raw, provider-agnostic event record. Providers map their
// wire formats onto it without interpreting the start representation:
// a timed event carries StartDateTime (date-time string, usually with a
// trailing "Z"), an all-day event carries StartDate (date-only string).
type Event struct {
	ID            string
	Summary       string
	StartDateTime string
	StartDate     string
	EndDateTime   string
	EndDate       string
	Location      string
}

// Start returns the event's start representation. A date-time field takes
// precedence over a date-only field.
func (e Event) Start() string {
	if e.StartDateTime != "" {
		return e.StartDateTime
	}
	return e.StartDate
}

// DisplayEvent is the uniform display-ready form of an event.
type DisplayEvent struct {
	Name     string
	Date     string // dd/mm/yyyy
	Time     string // HH:MM:SS, or the "All Day" marker
	Location string
}

// MalformedEventError reports an event record whose start field is absent
// or unparsable. It aborts the listing: partial tables are never shown.
type MalformedEventError struct {
	EventID string
	Start   string
	Err     error
}

func (e *MalformedEventError) Error() string {
	if e.Start == "" {
		return fmt.Sprintf("event %q has no start field", e.EventID)
	}
	return fmt.Sprintf("event %q has unparsable start %q", e.EventID, e.Start)
}

func (e *MalformedEventError) Unwrap() error {
	return e.Err
}

// Display normalizes a raw event into its display form.
//
// The start string is parsed naively: a trailing "Z" is stripped and no
// offset conversion is applied, mirroring how query windows are built.
// Whether an event is all-day is decided by the presence of the "T"
// separator in the original start string, not by the time value.
func (e Event) Display() (DisplayEvent, error) {
	start := e.Start()
	if start == "" {
		return DisplayEvent{}, &MalformedEventError{EventID: e.ID}
	}

	timed := strings.Contains(start, "T")
	at, err := parseStart(start, timed)
	if err != nil {
		return DisplayEvent{}, &MalformedEventError{EventID: e.ID, Start: start, Err: err}
	}

	d := DisplayEvent{
		Name:     e.Summary,
		Date:     at.Format(displayDateLayout),
		Time:     AllDayMarker,
		Location: e.Location,
	}
	if timed {
		d.Time = at.Format(displayTimeLayout)
	}
	if d.Name == "" {
		d.Name = NoTitle
	}
	if d.Location == "" {
		d.Location = NoLocation
	}
	return d, nil
}

func parseStart(start string, timed bool) (time.Time, error) {
	if !timed {
		return time.Parse(dateOnlyLayout, start)
	}

	if t, err := time.Parse(naiveLayout, strings.TrimSuffix(start, "Z")); err == nil {
		return t, nil
	}
	// Explicit-offset forms keep their wall clock: formatting the parsed
	// value reproduces the provider's local date and time digits.
	return time.Parse(time.RFC3339, start)
}

// DisplayAll normalizes a sequence of raw events, preserving order. It
// fails on the first malformed record; the caller shows either the full
// table or an error, never a partial result.
func DisplayAll(events []Event) ([]DisplayEvent, error) {
	out := make([]DisplayEvent, 0, len(events))
	for _, e := range events {
		d, err := e.Display()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
