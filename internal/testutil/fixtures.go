package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Lecture builds an in-memory lecture with a fresh id.
func Lecture(name string, start, end time.Time, rooms, groups []string) models.Lecture {
	return models.Lecture{
		ID:          primitive.NewObjectID(),
		LectureName: name,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		Rooms:       rooms,
		Groups:      groups,
	}
}

// Deadline builds an in-memory deadline with a fresh id.
func Deadline(info string, due time.Time, group string) models.Deadline {
	d := models.Deadline{
		ID:        primitive.NewObjectID(),
		Info:      info,
		Deadline:  due.UTC(),
		CreatedAt: ReferenceTime(),
		UpdatedAt: ReferenceTime(),
	}
	if group != "" {
		d.Group = &group
	}
	return d
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLecture inserts a lecture directly, the way the external feed does.
func (f *Fixtures) CreateLecture(ctx context.Context, name string, start, end time.Time, rooms, groups []string) models.Lecture {
	f.t.Helper()

	l := Lecture(name, start, end, rooms, groups)
	if _, err := f.db.Collection("lectures").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test lecture: %v", err)
	}
	return l
}

// CreateDeadline inserts a deadline directly, bypassing the service.
func (f *Fixtures) CreateDeadline(ctx context.Context, info string, due time.Time, group string) models.Deadline {
	f.t.Helper()

	d := Deadline(info, due, group)
	if _, err := f.db.Collection("deadlines").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test deadline: %v", err)
	}
	return d
}
