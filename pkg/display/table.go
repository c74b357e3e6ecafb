// Package display renders normalized events as a grid-formatted text table.
package display

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"gcalagenda/internal/models"
)

// NoEventsMessage is printed instead of an empty table.
const NoEventsMessage = "No events found."

// Header is the fixed column order of the event table.
var Header = []string{"Event Name", "Date", "Time", "Location"}

// Render writes the events as a grid table to w. An empty sequence
// produces the fixed no-events message and nothing else.
func Render(w io.Writer, events []models.DisplayEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, NoEventsMessage)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(Header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(true)
	for _, e := range events {
		table.Append([]string{e.Name, e.Date, e.Time, e.Location})
	}
	table.Render()
	return nil
}
