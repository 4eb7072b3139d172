// Package reminder implements the upcoming-event sweep run periodically
// in watch mode. Each sweep is idempotent per event: a record is
// announced at most once per process lifetime.
package reminder

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// Notifier delivers an upcoming-event announcement.
type Notifier interface {
	Notify(rec model.EventRecord, startsIn time.Duration)
}

// LogNotifier announces events as structured log lines.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(rec model.EventRecord, startsIn time.Duration) {
	n.Log.Warn().
		Str("id", string(rec.ID)).
		Str("name", rec.Name).
		Str("location", rec.Location).
		Str("starts_in", startsIn.Round(time.Minute).String()).
		Msg("upcoming event")
}

// Checker finds records starting within the window and announces each
// one once.
type Checker struct {
	notifier Notifier
	window   time.Duration
	notified map[model.ID]struct{}
}

// NewChecker announces events starting within window of the sweep time.
func NewChecker(n Notifier, window time.Duration) *Checker {
	return &Checker{
		notifier: n,
		window:   window,
		notified: make(map[model.ID]struct{}),
	}
}

// Sweep announces every not-yet-announced record with
// now < date < now+window and returns how many were announced. Skipping
// a sweep cycle is safe; the next one catches anything still in window.
func (c *Checker) Sweep(records []model.EventRecord, now time.Time) int {
	cutoff := now.Add(c.window)
	count := 0
	for _, rec := range records {
		if !rec.Date.After(now) || !rec.Date.Before(cutoff) {
			continue
		}
		if _, seen := c.notified[rec.ID]; seen {
			continue
		}
		c.notified[rec.ID] = struct{}{}
		c.notifier.Notify(rec, rec.Date.Sub(now))
		count++
	}
	return count
}
