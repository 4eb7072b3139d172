package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/countdown"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

const humanTimeLayout = "Mon, Jan 2, 2006, 3:04 PM"

func humanTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(humanTimeLayout)
}

// renderList prints the view as an aligned table with a per-event
// countdown label.
func renderList(w io.Writer, records []model.EventRecord, now time.Time, loc *time.Location) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tLOCATION\tCATEGORY\tORGANIZER\tWHEN")
	for _, rec := range records {
		organizer := rec.Organizer
		if organizer == "" {
			organizer = "Not specified"
		}
		cls := countdown.Classify(rec.Date, now)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			rec.Name,
			humanTime(rec.Date, loc),
			rec.Location,
			rec.Category.DisplayName(),
			organizer,
			cls.Label,
		)
	}
	tw.Flush()

	plural := "s"
	if len(records) == 1 {
		plural = ""
	}
	fmt.Fprintf(w, "\n%d event%s\n", len(records), plural)
}
