package google

import (
	"google.golang.org/api/calendar/v3"

	"gcalagenda/internal/models"
)

// convertEvent maps a Google Calendar event onto the raw internal record.
// The start and end strings are carried verbatim: whether an event is
// timed or all-day is decided later, during display normalization.
func convertEvent(item *calendar.Event) models.Event {
	event := models.Event{
		ID:       item.Id,
		Summary:  item.Summary,
		Location: item.Location,
	}

	if item.Start != nil {
		event.StartDateTime = item.Start.DateTime
		event.StartDate = item.Start.Date
	}
	if item.End != nil {
		event.EndDateTime = item.End.DateTime
		event.EndDate = item.End.Date
	}

	return event
}
