package metricsstore

import (
	"context"
	"time"

	deadlinestore "github.com/dalemusser/wuwapi/internal/app/store/deadlines"
	lecturestore "github.com/dalemusser/wuwapi/internal/app/store/lectures"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of collection totals exported as gauges.
type Counts struct {
	Lectures        int64
	Deadlines       int64
	ActiveDeadlines int64
}

// FetchCounts returns document totals for the schedule collections.
// Intentionally tolerant: on error it returns 0 for that counter.
// ActiveDeadlines counts deadlines still active at now.
func FetchCounts(ctx context.Context, db *mongo.Database, now time.Time) Counts {
	var out Counts

	if n, err := db.Collection(lecturestore.Collection).EstimatedDocumentCount(ctx); err == nil {
		out.Lectures = n
	}
	if n, err := db.Collection(deadlinestore.Collection).EstimatedDocumentCount(ctx); err == nil {
		out.Deadlines = n
	}

	active := bson.M{"deadline": bson.M{"$gte": schedule.ActiveCutoff(now.UTC())}}
	if n, err := db.Collection(deadlinestore.Collection).CountDocuments(ctx, active); err == nil {
		out.ActiveDeadlines = n
	}

	return out
}

// Gauges maps the counts to gauge names.
func (c Counts) Gauges() map[string]int64 {
	return map[string]int64{
		"lectures":         c.Lectures,
		"deadlines":        c.Deadlines,
		"active_deadlines": c.ActiveDeadlines,
	}
}
