// Package query derives filtered, searched, sorted views and aggregate
// statistics from an event collection. All functions are pure; the input
// slice is never mutated.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// Sort keys accepted by View. Anything else behaves as SortDateAsc.
type Sort string

const (
	SortDateAsc  Sort = "date-asc"
	SortDateDesc Sort = "date-desc"
	SortNameAsc  Sort = "name-asc"
	SortNameDesc Sort = "name-desc"
	SortCategory Sort = "category"
)

// FilterAll matches every category.
const FilterAll = "all"

// ViewState is the explicit filter/search/sort selection applied to a
// collection snapshot.
type ViewState struct {
	Filter string
	Search string
	Sort   Sort
}

// collator gives locale-aware name and category ordering. The single-actor
// model means no locking is needed around it.
var collator = collate.New(language.English)

// View applies category filter, then free-text search, then a stable sort.
// The search term matches case-insensitively as a substring of name,
// description, location, organizer, or category. Ties keep the relative
// order of the input, so identical inputs always yield identical output.
func View(records []model.EventRecord, state ViewState) []model.EventRecord {
	out := make([]model.EventRecord, 0, len(records))

	for _, rec := range records {
		if state.Filter != "" && state.Filter != FilterAll && string(rec.Category) != state.Filter {
			continue
		}
		out = append(out, rec)
	}

	if term := strings.ToLower(strings.TrimSpace(state.Search)); term != "" {
		matched := out[:0]
		for _, rec := range out {
			if matchesTerm(rec, term) {
				matched = append(matched, rec)
			}
		}
		out = matched
	}

	sort.SliceStable(out, less(state.Sort, out))
	return out
}

func matchesTerm(rec model.EventRecord, term string) bool {
	for _, field := range []string{
		rec.Name,
		rec.Description,
		rec.Location,
		rec.Organizer,
		string(rec.Category),
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func less(key Sort, recs []model.EventRecord) func(i, j int) bool {
	switch key {
	case SortDateDesc:
		return func(i, j int) bool { return recs[j].Date.Before(recs[i].Date) }
	case SortNameAsc:
		return func(i, j int) bool { return collator.CompareString(recs[i].Name, recs[j].Name) < 0 }
	case SortNameDesc:
		return func(i, j int) bool { return collator.CompareString(recs[j].Name, recs[i].Name) < 0 }
	case SortCategory:
		return func(i, j int) bool {
			return collator.CompareString(string(recs[i].Category), string(recs[j].Category)) < 0
		}
	default: // date-asc and anything unrecognized
		return func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) }
	}
}

// Stats are the temporal bucket counts shown in the status bar.
type Stats struct {
	Total    int
	Upcoming int
	Past     int
}

// Statistics counts records relative to now; a record starting exactly at
// now is upcoming.
func Statistics(records []model.EventRecord, now time.Time) Stats {
	st := Stats{Total: len(records)}
	for _, rec := range records {
		if !rec.Date.Before(now) {
			st.Upcoming++
		}
	}
	st.Past = st.Total - st.Upcoming
	return st
}
