package store

import (
	"time"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// SampleRecords returns the fixed five-event seed used when no collection
// has ever been persisted. Dates are offsets from now so a fresh install
// always starts with upcoming events.
func SampleRecords(now time.Time) []model.EventRecord {
	day := func(offset, hour, min int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day()+offset, hour, min, 0, 0, now.Location())
	}

	return []model.EventRecord{
		{
			ID:          "1",
			Name:        "Annual Tech Fest",
			Date:        day(5, 10, 0),
			Location:    "Main Auditorium",
			Category:    model.CategoryTechnical,
			Description: "Join us for the biggest technical festival of the year with coding competitions, workshops, and guest lectures.",
			Organizer:   "Computer Science Department",
			Capacity:    300,
			Created:     now,
		},
		{
			ID:          "2",
			Name:        "Cultural Night",
			Date:        day(3, 18, 30),
			Location:    "College Ground",
			Category:    model.CategoryCultural,
			Description: "An evening of music, dance, and drama performances by talented students.",
			Organizer:   "Cultural Committee",
			Capacity:    500,
			Created:     now,
		},
		{
			ID:          "3",
			Name:        "Machine Learning Workshop",
			Date:        day(7, 9, 0),
			Location:    "CS Lab 3",
			Category:    model.CategoryWorkshop,
			Description: "Hands-on workshop on ML algorithms and TensorFlow implementation.",
			Organizer:   "AI Club",
			Capacity:    50,
			Created:     now,
		},
		{
			ID:          "4",
			Name:        "Inter-College Sports Meet",
			Date:        day(10, 8, 0),
			Location:    "Sports Complex",
			Category:    model.CategorySports,
			Description: "Annual sports competition with various track and field events.",
			Organizer:   "Sports Department",
			Created:     now,
		},
		{
			ID:          "5",
			Name:        "Career Guidance Seminar",
			Date:        day(2, 14, 0),
			Location:    "Seminar Hall 2",
			Category:    model.CategoryAcademic,
			Description: "Learn about career opportunities and higher education options after graduation.",
			Organizer:   "Placement Cell",
			Capacity:    200,
			Created:     now,
		},
	}
}
