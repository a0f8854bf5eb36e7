package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

type EnrollmentRepo struct {
	collection *mongo.Collection
}

func NewEnrollmentRepo(client *mongo.Client, dbName string) *EnrollmentRepo {
	return &EnrollmentRepo{
		collection: client.Database(dbName).Collection("enrolledClasses"),
	}
}

func (r *EnrollmentRepo) Insert(ctx context.Context, e models.EnrolledClass) (models.EnrolledClass, error) {
	e.ID = primitive.NewObjectID()
	if e.PaidAt.IsZero() {
		e.PaidAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.EnrolledClass{}, ErrDuplicate
		}
		return models.EnrolledClass{}, err
	}
	return e, nil
}

func (r *EnrollmentRepo) ExistsByPair(ctx context.Context, classID primitive.ObjectID, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"classId": classID, "studentEmail": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByStudent returns a student's enrollment history ordered by
// payment time, newest first unless ascending is requested.
func (r *EnrollmentRepo) ListByStudent(ctx context.Context, email string, ascending bool) ([]models.EnrolledClass, error) {
	order := -1
	if ascending {
		order = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: order}})

	cursor, err := r.collection.Find(ctx, bson.M{"studentEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var enrollments []models.EnrolledClass
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *EnrollmentRepo) CountByStudent(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"studentEmail": email})
}
