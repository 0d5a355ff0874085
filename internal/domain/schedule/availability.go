package schedule

import (
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
)

// FreeRooms returns every room known from lectures minus the rooms occupied
// by a lecture that is current at now.
//
// Occupancy changes as time passes, not through writes, so the result is
// recomputed from the lecture set on every call.
func FreeRooms(lectures []models.Lecture, now time.Time) []string {
	all := DistinctRooms(lectures)
	busy := DistinctRooms(FilterLectures(lectures, now, IsCurrent))
	return Difference(all, busy)
}
