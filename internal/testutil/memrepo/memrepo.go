// Package memrepo provides in-memory lecture and deadline repositories for
// tests that exercise the schedule engine without a database.
package memrepo

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lectures is a read-only lecture repository over a fixed slice.
// Set Err to make every call fail.
type Lectures struct {
	Items []models.Lecture
	Err   error
}

// NewLectures returns a repository holding items.
func NewLectures(items ...models.Lecture) *Lectures {
	return &Lectures{Items: items}
}

func (r *Lectures) ListAll(ctx context.Context) ([]models.Lecture, error) {
	return r.filter(func(models.Lecture) bool { return true })
}

func (r *Lectures) GetByID(ctx context.Context, id string) (models.Lecture, error) {
	if r.Err != nil {
		return models.Lecture{}, r.Err
	}
	for _, l := range r.Items {
		if l.ID.Hex() == id {
			return l, nil
		}
	}
	return models.Lecture{}, schedule.ErrNotFound
}

func (r *Lectures) ListEndingFrom(ctx context.Context, t time.Time) ([]models.Lecture, error) {
	return r.filter(func(l models.Lecture) bool { return !l.EndTime.Before(t) })
}

func (r *Lectures) ListByGroups(ctx context.Context, groups []string) ([]models.Lecture, error) {
	set := make(map[string]bool, len(groups))
	for _, g := range groups {
		set[g] = true
	}
	return r.filter(func(l models.Lecture) bool {
		for _, g := range l.Groups {
			if set[g] {
				return true
			}
		}
		return false
	})
}

func (r *Lectures) ListCurrent(ctx context.Context, at time.Time) ([]models.Lecture, error) {
	return r.filter(func(l models.Lecture) bool { return schedule.IsCurrent(l, at) })
}

func (r *Lectures) filter(keep func(models.Lecture) bool) ([]models.Lecture, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Lecture
	for _, l := range r.Items {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// AggregatingLectures adds the schedule.Aggregator methods to Lectures,
// mimicking a store with native aggregation. Results are deliberately
// returned unsorted and with duplicates so callers must normalise.
type AggregatingLectures struct {
	*Lectures
	Calls int
}

func (r *AggregatingLectures) RoomSet(ctx context.Context) ([]string, error) {
	r.Calls++
	return r.rooms(func(models.Lecture) bool { return true })
}

func (r *AggregatingLectures) BusyRoomSet(ctx context.Context, at time.Time) ([]string, error) {
	r.Calls++
	return r.rooms(func(l models.Lecture) bool { return schedule.IsCurrent(l, at) })
}

func (r *AggregatingLectures) GroupSet(ctx context.Context) ([]string, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	var out []string
	for i := len(r.Items) - 1; i >= 0; i-- {
		out = append(out, r.Items[i].Groups...)
	}
	return out, nil
}

func (r *AggregatingLectures) GroupLectureSets(ctx context.Context) ([]schedule.GroupLectures, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	var out []schedule.GroupLectures
	for i := len(r.Items) - 1; i >= 0; i-- {
		l := r.Items[i]
		for _, g := range l.Groups {
			out = append(out, schedule.GroupLectures{Group: g, Lectures: []string{l.LectureName}})
		}
	}
	return out, nil
}

func (r *AggregatingLectures) rooms(keep func(models.Lecture) bool) ([]string, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []string
	for i := len(r.Items) - 1; i >= 0; i-- {
		if keep(r.Items[i]) {
			out = append(out, r.Items[i].Rooms...)
		}
	}
	return out, nil
}

// Deadlines is a mutable deadline repository safe for concurrent use.
// Set Err to make every call fail.
type Deadlines struct {
	mu    sync.Mutex
	items map[string]models.Deadline
	Err   error
}

// NewDeadlines returns a repository seeded with items.
func NewDeadlines(items ...models.Deadline) *Deadlines {
	r := &Deadlines{items: make(map[string]models.Deadline)}
	for _, d := range items {
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		r.items[d.ID.Hex()] = d
	}
	return r
}

// Len returns the number of stored deadlines.
func (r *Deadlines) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Deadlines) GetByID(ctx context.Context, id string) (models.Deadline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return models.Deadline{}, r.Err
	}
	d, ok := r.items[id]
	if !ok {
		return models.Deadline{}, schedule.ErrNotFound
	}
	return d, nil
}

func (r *Deadlines) ListFrom(ctx context.Context, from time.Time) ([]models.Deadline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Deadline
	for _, d := range r.items {
		if !d.Deadline.Before(from) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *Deadlines) Create(ctx context.Context, d models.Deadline) (models.Deadline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return models.Deadline{}, r.Err
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	r.items[d.ID.Hex()] = d
	return d, nil
}

func (r *Deadlines) Replace(ctx context.Context, d models.Deadline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[d.ID.Hex()]; !ok {
		return schedule.ErrNotFound
	}
	r.items[d.ID.Hex()] = d
	return nil
}

func (r *Deadlines) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.items, id)
	return nil
}
