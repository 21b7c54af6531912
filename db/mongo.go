// Package db owns the MongoDB connection and the collection bootstrap the
// service runs at startup.
package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TasksCollection    = "tasks"
	ProjectsCollection = "projects"
)

// Connect opens a client for the given URI and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("database ping failed: %v", err)
	}
	return client, nil
}

// EnsureCollections creates the tasks and projects collections when missing
// and puts a unique index on each name field, so duplicate-name checks in
// the services are backed by the database as well.
func EnsureCollections(ctx context.Context, database *mongo.Database) error {
	existing, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %v", err)
	}

	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, name := range []string{TasksCollection, ProjectsCollection} {
		if !present[name] {
			if err := database.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("failed to create collection %s: %v", name, err)
			}
		}
		if err := createNameIndex(ctx, database.Collection(name)); err != nil {
			return err
		}
	}
	return nil
}

func createNameIndex(ctx context.Context, collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create unique index on %s name: %v", collection.Name(), err)
	}
	return nil
}
