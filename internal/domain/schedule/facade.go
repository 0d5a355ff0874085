// Package schedule is the schedule query and availability engine.
//
// It derives the computed views a timetable client needs (free rooms, active
// deadlines, group sets, per-group lecture sets) from the lecture and
// deadline repositories, and validates deadline writes. It holds no mutable
// state and performs no caching: every call recomputes from the repositories'
// current snapshot. Transport and persistence live elsewhere.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
	"go.uber.org/zap"
)

// Facade is the single entry point the transport layer calls.
type Facade struct {
	lectures  LectureRepository
	agg       Aggregator // nil when lectures cannot aggregate natively
	deadlines *DeadlineService
}

// NewFacade wires the engine over its repositories. When lectures also
// implements Aggregator the distinct views are computed by the store.
func NewFacade(lectures LectureRepository, deadlines DeadlineRepository, logger *zap.Logger, opts ...DeadlineOption) *Facade {
	f := &Facade{
		lectures:  lectures,
		deadlines: NewDeadlineService(deadlines, logger, opts...),
	}
	if agg, ok := lectures.(Aggregator); ok {
		f.agg = agg
	}
	return f
}

// Deadlines exposes the deadline service.
func (f *Facade) Deadlines() *DeadlineService { return f.deadlines }

// ListLectures returns all lectures sorted by start time.
func (f *Facade) ListLectures(ctx context.Context) ([]models.Lecture, error) {
	list, err := f.lectures.ListAll(ctx)
	if err != nil {
		return nil, repoErr("list lectures", err)
	}
	return sortedLectures(list), nil
}

// GetLecture returns one lecture or ErrNotFound.
func (f *Facade) GetLecture(ctx context.Context, id string) (models.Lecture, error) {
	l, err := f.lectures.GetByID(ctx, id)
	if err != nil {
		return models.Lecture{}, repoErr("get lecture", err)
	}
	return l, nil
}

// ListUpcomingLectures returns lectures that have not ended at now, sorted
// by start time.
func (f *Facade) ListUpcomingLectures(ctx context.Context, now time.Time) ([]models.Lecture, error) {
	list, err := f.lectures.ListEndingFrom(ctx, now)
	if err != nil {
		return nil, repoErr("list upcoming lectures", err)
	}
	return sortedLectures(FilterLectures(list, now, IsUpcoming)), nil
}

// LecturesForGroups returns the lectures serving any of groups, sorted by
// start time. A nil or empty group list is a validation error, not an
// empty result.
func (f *Facade) LecturesForGroups(ctx context.Context, groups []string) ([]models.Lecture, error) {
	wanted, err := requireGroups(groups)
	if err != nil {
		return nil, err
	}
	list, err := f.lectures.ListByGroups(ctx, wanted)
	if err != nil {
		return nil, repoErr("list lectures for groups", err)
	}
	return sortedLectures(servingAny(list, wanted)), nil
}

// UpcomingLecturesForGroups narrows LecturesForGroups to lectures that have
// not ended at now.
func (f *Facade) UpcomingLecturesForGroups(ctx context.Context, groups []string, now time.Time) ([]models.Lecture, error) {
	list, err := f.LecturesForGroups(ctx, groups)
	if err != nil {
		return nil, err
	}
	return FilterLectures(list, now, IsUpcoming), nil
}

// ListRooms returns every distinct room.
func (f *Facade) ListRooms(ctx context.Context) ([]string, error) {
	if f.agg != nil {
		rooms, err := f.agg.RoomSet(ctx)
		if err != nil {
			return nil, repoErr("aggregate rooms", err)
		}
		return NormalizeSet(rooms), nil
	}
	list, err := f.lectures.ListAll(ctx)
	if err != nil {
		return nil, repoErr("list lectures", err)
	}
	return DistinctRooms(list), nil
}

// ListFreeRooms returns all rooms minus those occupied by a lecture that is
// current at now.
func (f *Facade) ListFreeRooms(ctx context.Context, now time.Time) ([]string, error) {
	if f.agg != nil {
		all, err := f.agg.RoomSet(ctx)
		if err != nil {
			return nil, repoErr("aggregate rooms", err)
		}
		busy, err := f.agg.BusyRoomSet(ctx, now)
		if err != nil {
			return nil, repoErr("aggregate busy rooms", err)
		}
		return Difference(all, busy), nil
	}
	all, err := f.lectures.ListAll(ctx)
	if err != nil {
		return nil, repoErr("list lectures", err)
	}
	return FreeRooms(all, now), nil
}

// ListGroups returns every distinct group.
func (f *Facade) ListGroups(ctx context.Context) ([]string, error) {
	if f.agg != nil {
		groups, err := f.agg.GroupSet(ctx)
		if err != nil {
			return nil, repoErr("aggregate groups", err)
		}
		return NormalizeSet(groups), nil
	}
	list, err := f.lectures.ListAll(ctx)
	if err != nil {
		return nil, repoErr("list lectures", err)
	}
	return DistinctGroups(list), nil
}

// GroupLectures returns, per group, the distinct names of the lectures
// serving it, sorted by group.
func (f *Facade) GroupLectures(ctx context.Context) ([]GroupLectures, error) {
	if f.agg != nil {
		rows, err := f.agg.GroupLectureSets(ctx)
		if err != nil {
			return nil, repoErr("aggregate group lectures", err)
		}
		return NormalizeGroupLectures(rows), nil
	}
	list, err := f.lectures.ListAll(ctx)
	if err != nil {
		return nil, repoErr("list lectures", err)
	}
	return LecturesByGroup(list), nil
}

// ListActiveDeadlines returns deadlines with Deadline >= now - 1 day,
// sorted ascending.
func (f *Facade) ListActiveDeadlines(ctx context.Context, now time.Time) ([]DeadlineView, error) {
	return f.deadlines.ListActive(ctx, now)
}

// GetDeadline returns one deadline or ErrNotFound.
func (f *Facade) GetDeadline(ctx context.Context, id string) (DeadlineView, error) {
	return f.deadlines.Get(ctx, id)
}

// CreateDeadline validates and stores a new deadline.
func (f *Facade) CreateDeadline(ctx context.Context, in DeadlineInput) (DeadlineView, error) {
	return f.deadlines.Create(ctx, in)
}

// UpdateDeadline changes deadline, shortLectureName and group.
func (f *Facade) UpdateDeadline(ctx context.Context, id string, in DeadlineUpdate) (DeadlineView, error) {
	return f.deadlines.Update(ctx, id, in)
}

// DeleteDeadline removes a deadline; unknown ids succeed.
func (f *Facade) DeleteDeadline(ctx context.Context, id string) error {
	return f.deadlines.Delete(ctx, id)
}

// requireGroups drops blank entries and rejects an empty result.
func requireGroups(groups []string) ([]string, error) {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		var vErr ValidationError
		vErr.add("groups", "groups must be a non-empty list")
		return nil, &vErr
	}
	return NormalizeSet(out), nil
}

// servingAny keeps lectures whose groups intersect wanted.
func servingAny(lectures []models.Lecture, wanted []string) []models.Lecture {
	set := make(map[string]struct{}, len(wanted))
	for _, g := range wanted {
		set[g] = struct{}{}
	}
	out := make([]models.Lecture, 0, len(lectures))
	for _, l := range lectures {
		for _, g := range l.Groups {
			if _, ok := set[g]; ok {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

func sortedLectures(list []models.Lecture) []models.Lecture {
	if list == nil {
		return []models.Lecture{}
	}
	SortLectures(list)
	return list
}
