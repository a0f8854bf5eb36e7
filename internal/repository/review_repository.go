package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

type ReviewRepo struct {
	collection *mongo.Collection
}

func NewReviewRepo(client *mongo.Client, dbName string) *ReviewRepo {
	return &ReviewRepo{
		collection: client.Database(dbName).Collection("reviews"),
	}
}

func (r *ReviewRepo) List(ctx context.Context) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
