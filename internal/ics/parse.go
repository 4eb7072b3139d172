// Package ics imports and exports the collection as iCalendar data,
// including recurrence expansion and feed fetching for subscriptions.
package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/log"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// ParsedEvent is a normalized VEVENT before recurrence expansion.
type ParsedEvent struct {
	UID string

	Summary     string
	Description string
	Location    string
	Organizer   string
	Category    model.Category

	Start time.Time

	RawRRule string
	ExDates  []time.Time
}

// Parse reads an ICS payload into normalized events. Individual broken
// VEVENTs are logged and skipped so one bad entry cannot sink a feed.
func Parse(body []byte) ([]ParsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]ParsedEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			log.Logger.Warn().Err(perr).Msg("skipping unparseable VEVENT")
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (ParsedEvent, error) {
	var out ParsedEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentProperty(ical.PropertyOrganizer)); p != nil {
		out.Organizer = organizerName(p.Value, p.ICalParameters)
	}
	out.Category = parseCategory(ve)

	start, err := ve.GetStartAt()
	if err != nil {
		return out, errors.New("missing or invalid DTSTART")
	}
	out.Start = start

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

// organizerName prefers the CN parameter over the raw value, and strips
// the mailto: scheme when only an address is given.
func organizerName(value string, params map[string][]string) string {
	if params != nil {
		if cn, ok := params["CN"]; ok && len(cn) > 0 && cn[0] != "" {
			return cn[0]
		}
	}
	return strings.TrimPrefix(value, "mailto:")
}

// parseCategory maps the first CATEGORIES entry onto the catalog's
// category set. Unknown values are kept verbatim, lowercased; a missing
// property falls back to "other".
func parseCategory(ve *ical.VEvent) model.Category {
	p := ve.GetProperty(ical.ComponentProperty(ical.PropertyCategories))
	if p == nil || p.Value == "" {
		return model.CategoryOther
	}
	first := strings.TrimSpace(strings.Split(p.Value, ",")[0])
	if first == "" {
		return model.CategoryOther
	}
	return model.Category(strings.ToLower(first))
}

// parseICSTime handles the basic EXDATE forms: UTC, floating local
// date-time, and date-only.
func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
