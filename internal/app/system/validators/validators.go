// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Validation actions passed to collMod.
const (
	actionError = "error"
	actionWarn  = "warn"
)

// EnsureAll creates the lectures and deadlines collections (if missing) and
// attaches JSON-Schema validators. Deadlines are written by this service and
// rejected when invalid. Lectures come from the external feed, so violations
// there are only logged by the server. On deployments without collMod
// support the validator step is skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M, action string) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if err := setValidator(ctx, db, coll, schema, action); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("lectures", lecturesSchema(), actionWarn)
	ensure("deadlines", deadlinesSchema(), actionError)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// created is true only if this call created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		zap.L().Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M, action string) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: action},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name), zap.String("action", action))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrorMatches(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank     = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	optionalText = bson.M{"bsonType": bson.A{"string", "null"}}
	stringList   = bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}}
)

func lecturesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"lectureName", "startTime", "endTime", "rooms", "groups"},
			"properties": bson.M{
				"lectureName": nonBlank,
				"shortName":   optionalText,
				"startTime":   bson.M{"bsonType": "date"},
				"endTime":     bson.M{"bsonType": "date"},
				"rooms":       stringList,
				"groups":      stringList,
				"docents":     stringList,
			},
		},
	}
}

func deadlinesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"info", "deadline"},
			"properties": bson.M{
				"info":             nonBlank,
				"deadline":         bson.M{"bsonType": "date"},
				"shortLectureName": optionalText,
				"group":            optionalText,
				"createdBy":        optionalText,
				"createdAt":        bson.M{"bsonType": "date"},
				"updatedAt":        bson.M{"bsonType": "date"},
			},
		},
	}
}
