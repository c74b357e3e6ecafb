package ical

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"gcalagenda/internal/models"
	"gcalagenda/pkg/query"
)

// recurrenceHorizon bounds expansion of recurring events when the query
// is unbounded; without it an open-ended RRULE would expand forever.
const recurrenceHorizon = 365 * 24 * time.Hour

// occurrence is a single concrete instance of a (possibly recurring)
// feed event.
type occurrence struct {
	ev    feedEvent
	start time.Time
	end   time.Time
}

// expandOccurrences turns feed events into the concrete instances the
// descriptor asks for: recurring series expand into single occurrences
// when SingleEvents is set, the window filters by overlap, results come
// back ordered by start time and capped at MaxResults. This mirrors the
// server-side listing semantics that API-backed providers get for free.
func expandOccurrences(events []feedEvent, desc query.Descriptor) []models.Event {
	var occurrences []occurrence

	for _, ev := range events {
		if ev.RawRRule == "" || !desc.SingleEvents {
			if inWindow(ev.Start, ev.End, desc.Window) {
				occurrences = append(occurrences, occurrence{ev: ev, start: ev.Start, end: ev.End})
			}
			continue
		}
		occurrences = append(occurrences, expandRecurring(ev, desc)...)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].start.Before(occurrences[j].start)
	})

	if desc.MaxResults > 0 && int64(len(occurrences)) > desc.MaxResults {
		occurrences = occurrences[:desc.MaxResults]
	}

	out := make([]models.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		out = append(out, occ.toEvent())
	}
	return out
}

func expandRecurring(ev feedEvent, desc query.Descriptor) []occurrence {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		// An unparsable rule degrades to the base instance.
		if inWindow(ev.Start, ev.End, desc.Window) {
			return []occurrence{{ev: ev, start: ev.Start, end: ev.End}}
		}
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	rangeStart := ev.Start
	rangeEnd := ev.Start.Add(recurrenceHorizon)
	if desc.Window != nil {
		rangeStart = desc.Window.Start.In(ev.Start.Location())
		rangeEnd = desc.Window.End.In(ev.Start.Location())
	}

	duration := ev.End.Sub(ev.Start)

	starts := set.Between(rangeStart, rangeEnd, true)
	if desc.MaxResults > 0 && int64(len(starts)) > desc.MaxResults {
		starts = starts[:desc.MaxResults]
	}

	out := make([]occurrence, 0, len(starts))
	for _, start := range starts {
		if ev.AllDay {
			day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			out = append(out, occurrence{ev: ev, start: day, end: day.Add(24 * time.Hour)})
			continue
		}
		out = append(out, occurrence{ev: ev, start: start, end: start.Add(duration)})
	}
	return out
}

// inWindow reports whether [start, end] overlaps the window. A nil
// window admits everything.
func inWindow(start, end time.Time, w *query.Window) bool {
	if w == nil {
		return true
	}
	if end.IsZero() {
		end = start
	}
	return !start.After(w.End) && !end.Before(w.Start)
}

// toEvent renders the occurrence in the same raw string conventions
// API-backed providers use: a date-only start for all-day events, an
// RFC3339 UTC date-time otherwise.
func (o occurrence) toEvent() models.Event {
	ev := models.Event{
		ID:       o.ev.UID,
		Summary:  o.ev.Summary,
		Location: o.ev.Location,
	}

	if o.ev.AllDay {
		ev.StartDate = o.start.Format("2006-01-02")
		ev.EndDate = o.end.Format("2006-01-02")
		return ev
	}

	ev.StartDateTime = o.start.UTC().Format(time.RFC3339)
	ev.EndDateTime = o.end.UTC().Format(time.RFC3339)
	return ev
}
