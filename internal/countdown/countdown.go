// Package countdown computes the temporal classification and live
// remaining-time text for one event against an explicit reference
// instant. It owns no timers; callers re-invoke on their own schedule.
package countdown

import (
	"fmt"
	"math"
	"time"
)

// Bucket classifies an event date relative to now.
type Bucket int

const (
	Future Bucket = iota
	Today
	Past
)

func (b Bucket) String() string {
	switch b {
	case Future:
		return "future"
	case Today:
		return "today"
	default:
		return "past"
	}
}

// Classification is a day-granularity countdown for list rendering.
type Classification struct {
	Bucket    Bucket
	DaysUntil int
	Label     string
}

// Classify buckets date against now using whole ceiling days, so an event
// later today and one that finished a few hours ago both read "Today".
func Classify(date, now time.Time) Classification {
	days := int(math.Ceil(date.Sub(now).Hours() / 24))
	switch {
	case days > 0:
		label := fmt.Sprintf("In %d days", days)
		if days == 1 {
			label = "In 1 day"
		}
		return Classification{Bucket: Future, DaysUntil: days, Label: label}
	case days == 0:
		return Classification{Bucket: Today, DaysUntil: 0, Label: "Today"}
	default:
		return Classification{Bucket: Past, DaysUntil: days, Label: "Past event"}
	}
}

// Remaining is one tick of the live countdown.
type Remaining struct {
	Text string
	// Urgent is set on the minutes-only tier.
	Urgent bool
	// Done means the event has started; callers should stop re-invoking.
	Done bool
}

// LiveRemaining renders the time left until date as whole days/hours or
// hours/minutes or minutes, matching the granularity of a once-a-minute
// refresh.
func LiveRemaining(date, now time.Time) Remaining {
	diff := date.Sub(now)
	if diff <= 0 {
		return Remaining{Text: "Ongoing/Finished", Done: true}
	}

	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	switch {
	case days > 0:
		return Remaining{Text: fmt.Sprintf("%dd %dh", days, hours)}
	case hours > 0:
		return Remaining{Text: fmt.Sprintf("%dh %dm", hours, minutes)}
	default:
		return Remaining{Text: fmt.Sprintf("%dm", minutes), Urgent: true}
	}
}
