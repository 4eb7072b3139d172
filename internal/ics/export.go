package ics

import (
	ical "github.com/arran4/golang-ical"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// Export renders the collection as an iCalendar document. Record ids
// become UIDs, so an export re-imported into the same collection merges
// under fresh ids rather than clobbering anything.
func Export(records []model.EventRecord) []byte {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Campus Event Tracker//cetrack//EN")

	for _, rec := range records {
		ve := cal.AddEvent(string(rec.ID))
		ve.SetCreatedTime(rec.Created)
		ve.SetDtStampTime(rec.Created)
		ve.SetStartAt(rec.Date)
		ve.SetSummary(rec.Name)
		ve.SetLocation(rec.Location)
		ve.SetProperty(ical.ComponentProperty(ical.PropertyCategories), string(rec.Category))
		if rec.Description != "" {
			ve.SetDescription(rec.Description)
		}
		if rec.Organizer != "" {
			ve.SetOrganizer(rec.Organizer)
		}
	}
	return []byte(cal.Serialize())
}
