package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appLog "github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/log"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// fakePersistence is an in-memory Persistence for tests.
type fakePersistence struct {
	records []model.EventRecord
	found   bool

	loadErr  error
	saveErr  error
	eraseErr error

	saves  int
	erases int
}

func (f *fakePersistence) Load() ([]model.EventRecord, bool, error) {
	return f.records, f.found, f.loadErr
}

func (f *fakePersistence) Save(records []model.EventRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = append([]model.EventRecord(nil), records...)
	f.found = true
	f.saves++
	return nil
}

func (f *fakePersistence) Erase() error {
	if f.eraseErr != nil {
		return f.eraseErr
	}
	f.records = nil
	f.found = true
	f.erases++
	return nil
}

func newTestStore(p Persistence) *Store {
	return New(p, appLog.Logger)
}

func futureDraft(name string, offset time.Duration) model.Draft {
	return model.Draft{
		Name:     name,
		Date:     time.Now().Add(offset),
		Location: "Main Hall",
		Category: model.CategoryAcademic,
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	seen := make(map[model.ID]struct{})
	for i := 0; i < 10; i++ {
		rec, err := s.Add(futureDraft(fmt.Sprintf("Event %d", i), 48*time.Hour))
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		_, dup := seen[rec.ID]
		assert.False(t, dup, "duplicate id %s", rec.ID)
		seen[rec.ID] = struct{}{}
	}

	assert.Len(t, s.All(), 10)
	assert.Equal(t, 10, fake.saves, "each add persists")
}

func TestAddRejectsPastDate(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	_, err := s.Add(futureDraft("Yesterday", -24*time.Hour))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FutureDateRequired, verr.Kind)
	assert.Empty(t, s.All(), "collection untouched after rejection")
	assert.Zero(t, fake.saves)
}

func TestAddRejectsMissingFields(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	draft := futureDraft("No Venue", 24*time.Hour)
	draft.Location = ""
	_, err := s.Add(draft)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MissingField, verr.Kind)
	assert.Equal(t, "Location", verr.Field)
	assert.Empty(t, s.All())
}

func TestAddRejectsNonPositiveCapacity(t *testing.T) {
	s := newTestStore(&fakePersistence{found: true})
	s.Load()

	draft := futureDraft("Overbooked", 24*time.Hour)
	draft.Capacity = -5
	_, err := s.Add(draft)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidCapacity, verr.Kind)
}

func TestAddKeepsMemoryOnPersistFailure(t *testing.T) {
	fake := &fakePersistence{found: true, saveErr: errors.New("disk full")}
	s := newTestStore(fake)
	s.Load()

	rec, err := s.Add(futureDraft("Unlucky", 24*time.Hour))
	require.Error(t, err)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)

	// No rollback: the record is in memory and returned to the caller.
	require.Len(t, s.All(), 1)
	assert.Equal(t, rec.ID, s.All()[0].ID)
}

func TestRemove(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	rec, err := s.Add(futureDraft("Doomed", 24*time.Hour))
	require.NoError(t, err)
	keep, err := s.Add(futureDraft("Kept", 48*time.Hour))
	require.NoError(t, err)
	savesBefore := fake.saves

	require.NoError(t, s.Remove(rec.ID))
	require.Len(t, s.All(), 1)
	assert.Equal(t, keep.ID, s.All()[0].ID)
	assert.Equal(t, savesBefore+1, fake.saves)

	// Absent id: no-op, no persist.
	require.NoError(t, s.Remove("missing"))
	assert.Equal(t, savesBefore+1, fake.saves)
	assert.Len(t, s.All(), 1)
}

func TestBulkMergeAdmitsOnlyValidCandidates(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	date := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	candidates := []model.Candidate{
		{Name: "A", Date: date, Location: "Hall 1", Category: "academic"},
		{Name: "B", Date: date, Category: "technical"}, // no location
		{Name: "C", Date: date, Location: "Hall 2", Category: "cultural"},
		{Name: "D", Date: date, Category: "sports"}, // no location
		{Name: "E", Date: date, Location: "Hall 3", Category: "other"},
	}

	n, err := s.BulkMerge(candidates)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, s.All(), 3)
	assert.Equal(t, 1, fake.saves, "bulk merge persists once")
}

func TestBulkMergeAdmitsPastDates(t *testing.T) {
	s := newTestStore(&fakePersistence{found: true})
	s.Load()

	past := time.Now().Add(-240 * time.Hour).Format(time.RFC3339)
	n, err := s.BulkMerge([]model.Candidate{
		{Name: "Old Event", Date: past, Location: "Archive Hall", Category: "other"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "import applies no future-date check")
}

func TestBulkMergeIDHandling(t *testing.T) {
	s := newTestStore(&fakePersistence{found: true})
	s.Load()

	date := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	_, err := s.BulkMerge([]model.Candidate{
		{ID: "kept-id", Name: "Keeper", Date: date, Location: "L", Category: "other"},
	})
	require.NoError(t, err)

	n, err := s.BulkMerge([]model.Candidate{
		{ID: "kept-id", Name: "Collider", Date: date, Location: "L", Category: "other"},
		{Name: "Anonymous", Date: date, Location: "L", Category: "other"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ids := make(map[model.ID]int)
	for _, rec := range s.All() {
		ids[rec.ID]++
	}
	assert.Equal(t, 1, ids["kept-id"], "colliding id re-synthesized")
	assert.Len(t, ids, 3, "every record has a distinct id")
}

func TestBulkMergeNothingValid(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	n, err := s.BulkMerge([]model.Candidate{{Name: "no date"}, {}})
	require.NoError(t, err, "zero admitted is not an error")
	assert.Zero(t, n)
	assert.Zero(t, fake.saves)
}

func TestLoadSeedsWhenAbsent(t *testing.T) {
	fake := &fakePersistence{found: false}
	s := newTestStore(fake)
	s.Load()

	require.Len(t, s.All(), 5)
	assert.Equal(t, 1, fake.saves, "seed is persisted immediately")
}

func TestLoadEmptyPresentStaysEmpty(t *testing.T) {
	fake := &fakePersistence{found: true}
	s := newTestStore(fake)
	s.Load()

	assert.Empty(t, s.All(), "cleared collection must not reseed")
	assert.Zero(t, fake.saves)
}

func TestLoadMalformedReseeds(t *testing.T) {
	fake := &fakePersistence{found: true, loadErr: errors.New("invalid character 'x'")}
	s := newTestStore(fake)
	s.Load()

	assert.Len(t, s.All(), 5)
}

func TestClearThenLoadStaysEmpty(t *testing.T) {
	fake := &fakePersistence{found: false}
	s := newTestStore(fake)
	s.Load()
	require.Len(t, s.All(), 5)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.All())

	s2 := newTestStore(fake)
	s2.Load()
	assert.Empty(t, s2.All(), "clear followed by load returns empty, not samples")
}

func TestAllReturnsSnapshot(t *testing.T) {
	s := newTestStore(&fakePersistence{found: true})
	s.Load()
	_, err := s.Add(futureDraft("Original", 24*time.Hour))
	require.NoError(t, err)

	snap := s.All()
	snap[0].Name = "Mutated"
	assert.Equal(t, "Original", s.All()[0].Name)
}

func TestNextIDMonotonicWithinSameMillisecond(t *testing.T) {
	s := newTestStore(&fakePersistence{found: true})
	fixed := time.Now()
	s.now = func() time.Time { return fixed }

	a := s.nextID()
	b := s.nextID()
	assert.NotEqual(t, a, b)
}
