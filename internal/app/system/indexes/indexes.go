// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Problems are collected per collection so one bad index does not hide another.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureLectures(ctx, db); err != nil {
		problems = append(problems, "lectures: "+err.Error())
	}
	if err := ensureDeadlines(ctx, db); err != nil {
		problems = append(problems, "deadlines: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

// Mongo/DocDB sometimes return IndexOptionsConflict when an index with the
// same keys already exists under a different name.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		// Collection does not exist yet; nothing to reconcile.
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func recreate(ctx context.Context, coll *mongo.Collection, oldName string, m mongo.IndexModel) error {
	if _, err := coll.Indexes().DropOne(ctx, oldName); err != nil {
		return fmt.Errorf("drop %s: %w", oldName, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig))

		ex, found := existing[sig]
		switch {
		case found && sameBoolPtr(unique, ex.Unique) && (name == "" || ex.Name == name):
			log.Debug("reusing existing index")
			continue

		case found:
			// Same keys but a different name or options: align with the
			// desired definition.
			if err := recreate(ctx, coll, ex.Name, m); err != nil {
				log.Warn("index recreate failed", zap.String("from", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
				continue
			}
			log.Info("index recreated",
				zap.String("from", ex.Name),
				zap.Duration("took", time.Since(start)))

		default:
			created, err := coll.Indexes().CreateOne(ctx, m)
			if err != nil && isOptionsConflictErr(err) {
				// Lost a race with another instance creating the same keys.
				if ex, ok := listExisting(ctx, coll)[sig]; ok && sameBoolPtr(unique, ex.Unique) {
					log.Info("reusing existing index (post-conflict)", zap.String("existing", ex.Name))
					continue
				}
			}
			if err != nil {
				log.Warn("index ensure failed", zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
				continue
			}
			log.Info("index ensured",
				zap.String("created_name", created),
				zap.Duration("took", time.Since(start)))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureLectures(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("lectures")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Default listing order.
		{
			Keys:    bson.D{{Key: "startTime", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_lectures_start_id"),
		},
		// Upcoming lectures: endTime >= now.
		{
			Keys:    bson.D{{Key: "endTime", Value: 1}},
			Options: options.Index().SetName("idx_lectures_end"),
		},
		// Free rooms: startTime <= now <= endTime.
		{
			Keys:    bson.D{{Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index().SetName("idx_lectures_start_end"),
		},
		// Multikey on the group list for lecturesForGroups.
		{
			Keys:    bson.D{{Key: "groups", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("idx_lectures_groups_start"),
		},
		{
			Keys:    bson.D{{Key: "rooms", Value: 1}},
			Options: options.Index().SetName("idx_lectures_rooms"),
		},
	})
}

func ensureDeadlines(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("deadlines")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Active deadlines: deadline >= now - 1 day, ascending.
		{
			Keys:    bson.D{{Key: "deadline", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_deadlines_deadline_id"),
		},
		{
			Keys:    bson.D{{Key: "group", Value: 1}, {Key: "deadline", Value: 1}},
			Options: options.Index().SetName("idx_deadlines_group_deadline"),
		},
	})
}
