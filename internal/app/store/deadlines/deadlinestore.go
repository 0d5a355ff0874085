// internal/app/store/deadlines/deadlinestore.go
package deadlinestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/models"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the deadline collection.
const Collection = "deadlines"

// Store persists deadlines. It implements schedule.DeadlineRepository.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByID returns schedule.ErrNotFound for unknown or malformed ids.
func (s *Store) GetByID(ctx context.Context, id string) (models.Deadline, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Deadline{}, schedule.ErrNotFound
	}
	var d models.Deadline
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deadline{}, schedule.ErrNotFound
		}
		return models.Deadline{}, err
	}
	return d, nil
}

// ListFrom returns deadlines due at or after from, earliest first.
func (s *Store) ListFrom(ctx context.Context, from time.Time) ([]models.Deadline, error) {
	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"deadline": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Deadline, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts d. A zero id is replaced by a fresh one.
func (s *Store) Create(ctx context.Context, d models.Deadline) (models.Deadline, error) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Deadline{}, err
	}
	return d, nil
}

// Replace overwrites the whole stored document.
func (s *Store) Replace(ctx context.Context, d models.Deadline) error {
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

// Delete removes a deadline. Unknown or malformed ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// Count returns the number of stored deadlines.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Clear removes every deadline and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
