package mongo

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the service queries against. Failures
// are logged, not fatal: the collections stay usable without them.
func EnsureIndexes(ctx context.Context, db Database, userCollection, jobCollection string) {
	userIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(userCollection).Indexes().CreateOne(ctx, userIdx); err != nil {
		log.Printf("mongo: create user email index: %v", err)
	}

	jobIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "model_name", Value: 1}, {Key: "started_at", Value: -1}},
	}
	if _, err := db.Collection(jobCollection).Indexes().CreateOne(ctx, jobIdx); err != nil {
		log.Printf("mongo: create training job index: %v", err)
	}
}
