package schedule

import (
	"sort"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
)

// ActiveWindow is how far into the past a deadline stays active. A deadline
// remains listed through the day it falls on before it drops out.
const ActiveWindow = 24 * time.Hour

// ActiveCutoff returns the earliest deadline instant still active at now.
func ActiveCutoff(now time.Time) time.Time {
	return now.Add(-ActiveWindow)
}

// IsActive reports whether d.Deadline >= now - 1 day.
func IsActive(d models.Deadline, now time.Time) bool {
	return !d.Deadline.Before(ActiveCutoff(now))
}

// IsUpcoming reports whether the lecture has not ended yet (EndTime >= now).
func IsUpcoming(l models.Lecture, now time.Time) bool {
	return !l.EndTime.Before(now)
}

// IsCurrent reports whether now falls inside [StartTime, EndTime].
func IsCurrent(l models.Lecture, now time.Time) bool {
	return !l.StartTime.After(now) && !now.After(l.EndTime)
}

// FilterLectures returns the lectures for which keep returns true.
// The result is never nil.
func FilterLectures(lectures []models.Lecture, now time.Time, keep func(models.Lecture, time.Time) bool) []models.Lecture {
	out := make([]models.Lecture, 0, len(lectures))
	for _, l := range lectures {
		if keep(l, now) {
			out = append(out, l)
		}
	}
	return out
}

// ActiveDeadlines returns the deadlines active at now, sorted ascending.
func ActiveDeadlines(deadlines []models.Deadline, now time.Time) []models.Deadline {
	out := make([]models.Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		if IsActive(d, now) {
			out = append(out, d)
		}
	}
	SortDeadlines(out)
	return out
}

// SortLectures orders lectures by StartTime ascending, then by id so equal
// start times come back in a stable order.
func SortLectures(lectures []models.Lecture) {
	sort.SliceStable(lectures, func(i, j int) bool {
		a, b := lectures[i], lectures[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID.Hex() < b.ID.Hex()
	})
}

// SortDeadlines orders deadlines by Deadline ascending, then by id.
func SortDeadlines(deadlines []models.Deadline) {
	sort.SliceStable(deadlines, func(i, j int) bool {
		a, b := deadlines[i], deadlines[j]
		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
		return a.ID.Hex() < b.ID.Hex()
	})
}
