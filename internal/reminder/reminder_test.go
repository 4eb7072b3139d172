package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

type captureNotifier struct {
	ids []model.ID
}

func (c *captureNotifier) Notify(rec model.EventRecord, startsIn time.Duration) {
	c.ids = append(c.ids, rec.ID)
}

func TestSweepAnnouncesEventsInWindow(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	records := []model.EventRecord{
		{ID: "soon", Name: "Starting Soon", Date: now.Add(30 * time.Minute)},
		{ID: "later", Name: "Much Later", Date: now.Add(2 * time.Hour)},
		{ID: "started", Name: "Already Started", Date: now.Add(-10 * time.Minute)},
	}

	n := &captureNotifier{}
	c := NewChecker(n, time.Hour)

	assert.Equal(t, 1, c.Sweep(records, now))
	assert.Equal(t, []model.ID{"soon"}, n.ids)
}

func TestSweepAnnouncesEachEventOnce(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	records := []model.EventRecord{
		{ID: "soon", Date: now.Add(30 * time.Minute)},
	}

	n := &captureNotifier{}
	c := NewChecker(n, time.Hour)

	assert.Equal(t, 1, c.Sweep(records, now))
	assert.Equal(t, 0, c.Sweep(records, now.Add(time.Minute)), "second sweep is silent")
	assert.Len(t, n.ids, 1)
}

func TestSweepPicksUpEventsEnteringWindow(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	records := []model.EventRecord{
		{ID: "later", Date: now.Add(90 * time.Minute)},
	}

	n := &captureNotifier{}
	c := NewChecker(n, time.Hour)

	assert.Equal(t, 0, c.Sweep(records, now))
	assert.Equal(t, 1, c.Sweep(records, now.Add(45*time.Minute)))
}
