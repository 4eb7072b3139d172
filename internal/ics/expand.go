package ics

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/log"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

const defaultMaxOccurrencesPerEvent = 500

// ExpandConfig bounds recurrence expansion. Non-recurring events are
// always included; only RRULE occurrences are limited to the range.
type ExpandConfig struct {
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrencesPerEvent caps runaway rules; zero means the default.
	MaxOccurrencesPerEvent int
}

// Expand turns parsed VEVENTs into import candidates for the store's
// admission gate. Recurring events become one candidate per occurrence
// within [RangeStart, RangeEnd], with EXDATEs removed. Candidate ids are
// the UID, suffixed per occurrence so repeated instances stay distinct.
func Expand(events []ParsedEvent, cfg ExpandConfig) []model.Candidate {
	if cfg.MaxOccurrencesPerEvent <= 0 {
		cfg.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}

	var out []model.Candidate
	for _, ev := range events {
		if ev.RawRRule == "" {
			out = append(out, candidate(ev, ev.Start, ev.UID))
			continue
		}
		out = append(out, expandRecurring(ev, cfg)...)
	}
	return out
}

func expandRecurring(ev ParsedEvent, cfg ExpandConfig) []model.Candidate {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		log.Logger.Warn().Err(err).Str("uid", ev.UID).Str("rrule", ev.RawRRule).
			Msg("unparseable RRULE, keeping base event only")
		return []model.Candidate{candidate(ev, ev.Start, ev.UID)}
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	rangeStart := cfg.RangeStart.In(ev.Start.Location())
	rangeEnd := cfg.RangeEnd.In(ev.Start.Location())
	occs := set.Between(rangeStart, rangeEnd, true)

	if len(occs) > cfg.MaxOccurrencesPerEvent {
		log.Logger.Warn().Str("uid", ev.UID).Int("cap", cfg.MaxOccurrencesPerEvent).
			Msg("truncating recurrence expansion")
		occs = occs[:cfg.MaxOccurrencesPerEvent]
	}

	out := make([]model.Candidate, 0, len(occs))
	for _, start := range occs {
		id := ev.UID + "/" + start.Format(time.RFC3339)
		out = append(out, candidate(ev, start, id))
	}
	return out
}

func candidate(ev ParsedEvent, start time.Time, id string) model.Candidate {
	return model.Candidate{
		ID:          model.ID(id),
		Name:        ev.Summary,
		Date:        start.Format(time.RFC3339),
		Location:    ev.Location,
		Category:    ev.Category,
		Description: ev.Description,
		Organizer:   ev.Organizer,
	}
}
