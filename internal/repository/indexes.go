package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. The
// unique compound indexes on (classId, studentEmail) are what make the
// duplicate-selection and duplicate-enrollment checks race-safe: two
// concurrent inserts for the same pair cannot both succeed.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	pair := mongo.IndexModel{
		Keys:    bson.D{{Key: "classId", Value: 1}, {Key: "studentEmail", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := db.Collection("selectedClasses").Indexes().CreateOne(ctx, pair); err != nil {
		return err
	}
	if _, err := db.Collection("enrolledClasses").Indexes().CreateOne(ctx, pair); err != nil {
		return err
	}

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, unique); err != nil {
		return err
	}

	return nil
}
