// Package model defines the event record and the interchange-friendly
// scalar types used for import payloads of unknown provenance.
package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Category classifies an event. Unrecognized values are kept verbatim;
// DisplayName falls back to the raw value for anything outside the
// known set.
type Category string

const (
	CategoryAcademic  Category = "academic"
	CategoryTechnical Category = "technical"
	CategoryCultural  Category = "cultural"
	CategorySports    Category = "sports"
	CategoryWorkshop  Category = "workshop"
	CategorySeminar   Category = "seminar"
	CategoryOther     Category = "other"
)

var categoryDisplayNames = map[Category]string{
	CategoryAcademic:  "Academic",
	CategoryTechnical: "Technical",
	CategoryCultural:  "Cultural",
	CategorySports:    "Sports",
	CategoryWorkshop:  "Workshop",
	CategorySeminar:   "Seminar",
	CategoryOther:     "Other",
}

// DisplayName returns the human label for c, or c itself when unknown.
func (c Category) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// ID is an opaque record identifier. Exports produced by earlier versions
// of the tracker carry numeric ids, so unmarshaling accepts both JSON
// strings and numbers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = ID(n.String())
		return nil
	}
	return errors.New("id must be a string or number")
}

// Capacity is an optional positive seat count; zero means unspecified.
// Legacy exports stored it as a number, a numeric string, or null.
type Capacity int

func (c *Capacity) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*c = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Capacity(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			*c = 0
			return nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			*c = Capacity(n)
			return nil
		}
		// Unparseable capacity degrades to unspecified rather than
		// failing the whole record.
		*c = 0
		return nil
	}
	return errors.New("capacity must be a number, string, or null")
}

// EventRecord is a single entry of the catalog. Records are immutable
// once stored; the only mutation path is removal and re-creation.
type EventRecord struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Category    Category  `json:"category"`
	Description string    `json:"description,omitempty"`
	Organizer   string    `json:"organizer,omitempty"`
	Capacity    Capacity  `json:"capacity,omitempty"`
	Created     time.Time `json:"created"`
}

// Draft carries caller-supplied fields for a record about to be created.
// ID and Created are assigned by the store.
type Draft struct {
	Name        string    `validate:"required"`
	Date        time.Time `validate:"required,future"`
	Location    string    `validate:"required"`
	Category    Category  `validate:"required"`
	Description string
	Organizer   string
	Capacity    Capacity  `validate:"omitempty,positive"`
}

// Candidate is a duck-typed record from an external source (JSON import,
// ICS feed). Field presence and the date format are unverified until the
// store's admission gate runs.
type Candidate struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Organizer   string   `json:"organizer"`
	Capacity    Capacity `json:"capacity"`
	Created     string   `json:"created"`
}

// eventTimeLayouts are the accepted date forms, most specific first.
// The zone-less forms cover datetime-local values from legacy exports.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEventTime parses a timestamp in any accepted interchange form.
// Zone-less values are interpreted in local time.
func ParseEventTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}
	for _, layout := range eventTimeLayouts {
		var t time.Time
		var err error
		if strings.ContainsAny(v, "Zz+") && strings.Contains(v, "T") {
			t, err = time.Parse(layout, v)
		} else {
			t, err = time.ParseInLocation(layout, v, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized time value: " + v)
}
