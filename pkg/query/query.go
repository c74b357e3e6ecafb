package query

import (
	"fmt"
	"time"
)

const (
	// DefaultCalendarID is the provider-side identifier of the user's
	// primary calendar.
	DefaultCalendarID = "primary"

	// DefaultMaxResults is the single-page result cap. The provider page
	// size limit is treated as a fixed external constraint; there is no
	// pagination past it.
	DefaultMaxResults = 2500

	// DateLayout is the user-facing date format (dd/mm/yyyy).
	DateLayout = "02/01/2006"

	instantLayout = "2006-01-02T15:04:05"
)

// MalformedDateError reports a user-supplied date string that does not
// parse as dd/mm/yyyy.
type MalformedDateError struct {
	Input string
	Err   error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: expected dd/mm/yyyy", e.Input)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

// Window is an inclusive UTC instant range used to filter events by date.
// Start sits at 00:00:00 of the first day and End at 23:59:59 of the last
// day. The one-second-before-midnight upper bound can exclude an event in
// the final second of the day; that boundary is intentional.
type Window struct {
	Start time.Time
	End   time.Time
}

// Min returns the window start serialized as an ISO-8601 instant with a
// trailing "Z".
func (w Window) Min() string {
	return formatInstant(w.Start)
}

// Max returns the window end serialized as an ISO-8601 instant with a
// trailing "Z".
func (w Window) Max() string {
	return formatInstant(w.End)
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout) + "Z"
}

// ParseDate parses a dd/mm/yyyy string into midnight UTC of that day.
// The wall clock is taken at face value: no timezone conversion happens,
// which matches the "assume local time is UTC" approximation documented
// in the configuration.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn parses a dd/mm/yyyy string into midnight of that day in the
// given location. Callers that want true timezone handling pass time.Local
// here; the resulting instants are converted to UTC on serialization.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, &MalformedDateError{Input: s, Err: err}
	}
	return t, nil
}

// BuildWindow builds a Window spanning startDate at 00:00:00 through
// endDate at 23:59:59, both interpreted as UTC wall-clock dates.
// start <= end is the caller's responsibility and is not enforced.
func BuildWindow(startDate, endDate string) (Window, error) {
	return BuildWindowIn(startDate, endDate, time.UTC)
}

// BuildWindowIn is BuildWindow with the dates interpreted in loc.
func BuildWindowIn(startDate, endDate string, loc *time.Location) (Window, error) {
	start, err := ParseDateIn(startDate, loc)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseDateIn(endDate, loc)
	if err != nil {
		return Window{}, err
	}

	return Window{
		Start: start,
		End:   end.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}, nil
}

// Descriptor is a provider-agnostic event query: which calendar, an
// optional time window, and fixed listing semantics. A nil Window means
// the query is unbounded (all events).
type Descriptor struct {
	CalendarID   string
	Window       *Window
	MaxResults   int64
	SingleEvents bool
	OrderBy      string
}

// Builder produces query descriptors for a fixed calendar and result cap.
type Builder struct {
	calendarID string
	maxResults int64
}

// NewBuilder creates a Builder. Zero values fall back to the primary
// calendar and the default result cap.
func NewBuilder(calendarID string, maxResults int64) *Builder {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Builder{calendarID: calendarID, maxResults: maxResults}
}

// Unbounded returns a descriptor listing all events on the calendar.
func (b *Builder) Unbounded() Descriptor {
	return b.descriptor(nil)
}

// Bounded returns a descriptor restricted to the given window.
func (b *Builder) Bounded(w Window) Descriptor {
	return b.descriptor(&w)
}

func (b *Builder) descriptor(w *Window) Descriptor {
	return Descriptor{
		CalendarID:   b.calendarID,
		Window:       w,
		MaxResults:   b.maxResults,
		SingleEvents: true,
		OrderBy:      "startTime",
	}
}
