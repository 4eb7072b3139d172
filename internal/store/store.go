// Package store owns the authoritative event collection and its
// persistence. All mutating operations persist before returning.
package store

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/validate"
)

// Persistence is the storage collaborator injected into the store.
//
// Load distinguishes three states: absent (found == false, the collection
// was never persisted or was reset), present (found == true, records may
// be empty), and malformed (found == true with a non-nil error).
type Persistence interface {
	Load() (records []model.EventRecord, found bool, err error)
	Save(records []model.EventRecord) error
	Erase() error
}

// Store maintains the in-memory collection in insertion order. It is not
// safe for concurrent mutation; the CLI is a single-actor caller.
type Store struct {
	persist Persistence
	log     zerolog.Logger
	now     func() time.Time

	records []model.EventRecord
	lastID  int64
}

// New builds a store over the given persistence collaborator. Load must
// be called before the collection is used.
func New(p Persistence, logger zerolog.Logger) *Store {
	return &Store{
		persist: p,
		log:     logger,
		now:     time.Now,
	}
}

// Load reads the persisted collection. Absent or malformed state degrades
// to the sample seed, persisted immediately; present-but-empty state
// (an explicitly cleared collection) stays empty. Load never fails.
func (s *Store) Load() {
	records, found, err := s.persist.Load()
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("persisted collection unreadable, reseeding samples")
		s.seed()
	case !found:
		s.log.Info().Msg("no persisted collection, seeding samples")
		s.seed()
	default:
		s.records = records
		s.syncLastID()
		s.log.Debug().Int("count", len(records)).Msg("collection loaded")
	}
}

func (s *Store) seed() {
	s.records = SampleRecords(s.now())
	s.syncLastID()
	if err := s.persist.Save(s.records); err != nil {
		s.log.Error().Err(err).Msg("failed to persist sample seed")
	}
}

// syncLastID advances the id cursor past any numeric ids already in the
// collection so newly generated ids cannot collide with loaded ones.
func (s *Store) syncLastID() {
	for _, rec := range s.records {
		if n, err := strconv.ParseInt(string(rec.ID), 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
}

// Add validates the draft, assigns id and creation time, appends the new
// record, and persists. A past date is rejected with
// ValidationError{FutureDateRequired} and the collection is untouched.
// On a persist failure the record stays in memory and the error is
// returned wrapped as a PersistenceError.
func (s *Store) Add(draft model.Draft) (model.EventRecord, error) {
	if err := validate.Struct(draft); err != nil {
		var fe *validate.FieldError
		if errors.As(err, &fe) {
			return model.EventRecord{}, validationError(fe)
		}
		return model.EventRecord{}, err
	}

	rec := model.EventRecord{
		ID:          s.nextID(),
		Name:        draft.Name,
		Date:        draft.Date,
		Location:    draft.Location,
		Category:    draft.Category,
		Description: draft.Description,
		Organizer:   draft.Organizer,
		Capacity:    draft.Capacity,
		Created:     s.now(),
	}
	s.records = append(s.records, rec)

	if err := s.persist.Save(s.records); err != nil {
		s.log.Error().Err(err).Str("id", string(rec.ID)).Msg("failed to persist new event")
		return rec, &PersistenceError{Op: "save", Err: err}
	}
	s.log.Info().Str("id", string(rec.ID)).Str("name", rec.Name).Msg("event added")
	return rec, nil
}

func validationError(fe *validate.FieldError) error {
	switch fe.Tag {
	case "future":
		return &ValidationError{Kind: FutureDateRequired, Field: fe.Field}
	case "positive":
		return &ValidationError{Kind: InvalidCapacity, Field: fe.Field}
	default:
		return &ValidationError{Kind: MissingField, Field: fe.Field}
	}
}

// Remove deletes the record with the given id and persists. A missing id
// is a no-op, not an error.
func (s *Store) Remove(id model.ID) error {
	kept := s.records[:0:0]
	removed := false
	for _, rec := range s.records {
		if rec.ID == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		s.log.Debug().Str("id", string(id)).Msg("remove: id not present")
		return nil
	}
	s.records = kept

	if err := s.persist.Save(s.records); err != nil {
		s.log.Error().Err(err).Str("id", string(id)).Msg("failed to persist removal")
		return &PersistenceError{Op: "save", Err: err}
	}
	s.log.Info().Str("id", string(id)).Msg("event removed")
	return nil
}

// BulkMerge admits every candidate that carries a non-empty name,
// location, and category plus a parseable date. No future-date check is
// applied here, only at creation. Candidates without an id, or whose id
// collides with an existing record, get a synthesized one. Returns the
// number admitted; zero admitted is not an error.
func (s *Store) BulkMerge(candidates []model.Candidate) (int, error) {
	existing := make(map[model.ID]struct{}, len(s.records))
	for _, rec := range s.records {
		existing[rec.ID] = struct{}{}
	}

	admitted := 0
	for _, cand := range candidates {
		rec, ok := s.admit(cand)
		if !ok {
			s.log.Debug().Str("name", cand.Name).Msg("candidate rejected")
			continue
		}
		if _, taken := existing[rec.ID]; rec.ID == "" || taken {
			rec.ID = s.nextID()
		}
		existing[rec.ID] = struct{}{}
		s.records = append(s.records, rec)
		admitted++
	}

	if admitted == 0 {
		return 0, nil
	}
	if err := s.persist.Save(s.records); err != nil {
		s.log.Error().Err(err).Int("admitted", admitted).Msg("failed to persist merged events")
		return admitted, &PersistenceError{Op: "save", Err: err}
	}
	s.log.Info().Int("admitted", admitted).Int("offered", len(candidates)).Msg("events merged")
	return admitted, nil
}

func (s *Store) admit(cand model.Candidate) (model.EventRecord, bool) {
	name := strings.TrimSpace(cand.Name)
	location := strings.TrimSpace(cand.Location)
	category := model.Category(strings.TrimSpace(string(cand.Category)))
	if name == "" || location == "" || category == "" {
		return model.EventRecord{}, false
	}
	date, err := model.ParseEventTime(cand.Date)
	if err != nil {
		return model.EventRecord{}, false
	}

	created := s.now()
	if t, err := model.ParseEventTime(cand.Created); err == nil {
		created = t
	}

	return model.EventRecord{
		ID:          cand.ID,
		Name:        name,
		Date:        date,
		Location:    location,
		Category:    category,
		Description: cand.Description,
		Organizer:   cand.Organizer,
		Capacity:    cand.Capacity,
		Created:     created,
	}, true
}

// Clear empties the collection and erases all persisted data. The
// persistence layer keeps a cleared marker so the next Load does not
// reseed samples; Reset on the concrete file store removes even that.
func (s *Store) Clear() error {
	s.records = nil
	if err := s.persist.Erase(); err != nil {
		s.log.Error().Err(err).Msg("failed to erase persisted collection")
		return &PersistenceError{Op: "erase", Err: err}
	}
	s.log.Info().Msg("all events cleared")
	return nil
}

// All returns a copy of the collection in insertion order. Mutating the
// returned slice does not affect the store.
func (s *Store) All() []model.EventRecord {
	out := make([]model.EventRecord, len(s.records))
	copy(out, s.records)
	return out
}

// nextID generates a millisecond-timestamp id, bumped past both the last
// generated value and any numeric id already in the collection, so ids
// stay unique even for back-to-back calls within the same millisecond.
func (s *Store) nextID() model.ID {
	n := s.now().UnixMilli()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	for s.hasID(model.ID(strconv.FormatInt(n, 10))) {
		n++
	}
	s.lastID = n
	return model.ID(strconv.FormatInt(n, 10))
}

func (s *Store) hasID(id model.ID) bool {
	for _, rec := range s.records {
		if rec.ID == id {
			return true
		}
	}
	return false
}
