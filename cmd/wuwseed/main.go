// Command wuwseed loads lectures and deadlines from a YAML file into the
// WUW database. Options follow the API's config conventions:
//
//	wuwseed --file timetable.yaml --replace
//	WUW_MONGO_URI=mongodb://db:27017 wuwseed --file timetable.yaml
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/wuwapi/internal/app/system/indexes"
	"github.com/dalemusser/wuwapi/internal/app/system/seed"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/dalemusser/wuwapi/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var seedKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wuw", Desc: "MongoDB database name"},
	{Name: "file", Default: "", Desc: "YAML seed file"},
	{Name: "replace", Default: false, Desc: "Empty both collections before loading"},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	_, values, err := config.LoadWithAppConfig(logger, "WUW", seedKeys)
	if err != nil {
		return err
	}
	uri := values.String("mongo_uri")
	if err := wafflemongo.ValidateURI(uri); err != nil {
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	path := values.String("file")
	if path == "" {
		return fmt.Errorf("--file is required")
	}

	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	file, err := seed.Load(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(values.String("mongo_database"))
	if err := validators.EnsureAll(ctx, db); err != nil {
		return err
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		return err
	}

	_, err = seed.Apply(ctx, db, file, values.Bool("replace"), time.Now(), logger)
	return err
}
