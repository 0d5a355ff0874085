package schedule

import (
	"context"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
)

// LectureRepository is the read side of the lecture collection.
//
// Ids are opaque strings; an id the repository cannot parse is reported as
// ErrNotFound. Any other error is treated as a repository failure.
type LectureRepository interface {
	// ListAll returns every lecture.
	ListAll(ctx context.Context) ([]models.Lecture, error)
	// GetByID returns one lecture or ErrNotFound.
	GetByID(ctx context.Context, id string) (models.Lecture, error)
	// ListEndingFrom returns lectures with EndTime >= t.
	ListEndingFrom(ctx context.Context, t time.Time) ([]models.Lecture, error)
	// ListByGroups returns lectures serving at least one of groups.
	ListByGroups(ctx context.Context, groups []string) ([]models.Lecture, error)
	// ListCurrent returns lectures with StartTime <= at <= EndTime.
	ListCurrent(ctx context.Context, at time.Time) ([]models.Lecture, error)
}

// Aggregator is implemented by lecture repositories that can compute the
// distinct views natively (for example with an $unwind/$group pipeline).
// The Facade prefers it when available and folds in process otherwise;
// results are normalised either way.
type Aggregator interface {
	RoomSet(ctx context.Context) ([]string, error)
	BusyRoomSet(ctx context.Context, at time.Time) ([]string, error)
	GroupSet(ctx context.Context) ([]string, error)
	GroupLectureSets(ctx context.Context) ([]GroupLectures, error)
}

// DeadlineRepository stores deadlines.
type DeadlineRepository interface {
	// GetByID returns one deadline or ErrNotFound.
	GetByID(ctx context.Context, id string) (models.Deadline, error)
	// ListFrom returns deadlines with Deadline >= from.
	ListFrom(ctx context.Context, from time.Time) ([]models.Deadline, error)
	// Create persists d, assigning a fresh id when d.ID is zero.
	Create(ctx context.Context, d models.Deadline) (models.Deadline, error)
	// Replace overwrites the stored record with d.ID; ErrNotFound if absent.
	Replace(ctx context.Context, d models.Deadline) error
	// Delete removes the record. Missing or unparsable ids are not an error.
	Delete(ctx context.Context, id string) error
}
