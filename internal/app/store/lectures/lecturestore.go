// internal/app/store/lectures/lecturestore.go
package lecturestore

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

// Collection is the name of the lecture collection written by the feed.
const Collection = "lectures"

// Store reads lectures. It implements schedule.LectureRepository and
// schedule.Aggregator.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var byStart = options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}, {Key: "_id", Value: 1}})

func (s *Store) ListAll(ctx context.Context) ([]models.Lecture, error) {
	return s.find(ctx, bson.M{})
}

// GetByID returns schedule.ErrNotFound for unknown or malformed ids.
func (s *Store) GetByID(ctx context.Context, id string) (models.Lecture, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Lecture{}, schedule.ErrNotFound
	}
	var l models.Lecture
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Lecture{}, schedule.ErrNotFound
		}
		return models.Lecture{}, err
	}
	return l, nil
}

func (s *Store) ListEndingFrom(ctx context.Context, t time.Time) ([]models.Lecture, error) {
	return s.find(ctx, bson.M{"endTime": bson.M{"$gte": t}})
}

func (s *Store) ListByGroups(ctx context.Context, groups []string) ([]models.Lecture, error) {
	if len(groups) == 0 {
		return []models.Lecture{}, nil
	}
	return s.find(ctx, bson.M{"groups": bson.M{"$in": groups}})
}

func (s *Store) ListCurrent(ctx context.Context, at time.Time) ([]models.Lecture, error) {
	return s.find(ctx, currentAt(at))
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Lecture, error) {
	cur, err := s.c.Find(ctx, filter, byStart)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Lecture, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func currentAt(at time.Time) bson.M {
	return bson.M{
		"startTime": bson.M{"$lte": at},
		"endTime":   bson.M{"$gte": at},
	}
}

// RoomSet returns every room named by any lecture.
func (s *Store) RoomSet(ctx context.Context) ([]string, error) {
	return s.distinctSet(ctx, nil, "rooms")
}

// BusyRoomSet returns the rooms of lectures running at at.
func (s *Store) BusyRoomSet(ctx context.Context, at time.Time) ([]string, error) {
	return s.distinctSet(ctx, currentAt(at), "rooms")
}

// GroupSet returns every group named by any lecture.
func (s *Store) GroupSet(ctx context.Context) ([]string, error) {
	return s.distinctSet(ctx, nil, "groups")
}

// distinctSet unwinds an array field and collects its values into one set:
//
//	[{$match}, {$unwind: "$field"}, {$group: {_id: null, values: {$addToSet: "$field"}}}]
func (s *Store) distinctSet(ctx context.Context, match bson.M, field string) ([]string, error) {
	pipe := mongo.Pipeline{}
	if match != nil {
		pipe = append(pipe, bson.D{{Key: "$match", Value: match}})
	}
	pipe = append(pipe,
		bson.D{{Key: "$unwind", Value: "$" + field}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"values": bson.M{"$addToSet": "$" + field},
		}}},
	)

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Values []string `bson:"values"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return rows[0].Values, nil
}

// GroupLectureSets groups distinct lecture names by group.
func (s *Store) GroupLectureSets(ctx context.Context) ([]schedule.GroupLectures, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$groups"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$groups",
			"lectures": bson.M{"$addToSet": "$lectureName"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]schedule.GroupLectures, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Import inserts lectures as the external feed would, assigning ids where
// missing. It exists for seeding; the API never writes lectures.
func (s *Store) Import(ctx context.Context, lectures []models.Lecture) (int, error) {
	if len(lectures) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(lectures))
	for _, l := range lectures {
		if l.ID.IsZero() {
			l.ID = primitive.NewObjectID()
		}
		docs = append(docs, l)
	}
	res, err := s.c.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// Clear removes every lecture and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
