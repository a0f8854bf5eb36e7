package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

type ClassRepo struct {
	collection *mongo.Collection
}

func NewClassRepo(client *mongo.Client, dbName string) *ClassRepo {
	return &ClassRepo{
		collection: client.Database(dbName).Collection("classes"),
	}
}

func (r *ClassRepo) Insert(ctx context.Context, c models.ClassOffering) (models.ClassOffering, error) {
	c.ID = primitive.NewObjectID()
	c.Status = models.ClassPending
	c.EnrolledStudents = 0
	c.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return models.ClassOffering{}, err
	}
	return c, nil
}

func (r *ClassRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.ClassOffering, error) {
	var c models.ClassOffering
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ClassOffering{}, ErrNotFound
	}
	if err != nil {
		return models.ClassOffering{}, err
	}
	return c, nil
}

// ListApproved returns one page of approved classes, most-enrolled
// first. Sorting and paging happen in the database.
func (r *ClassRepo) ListApproved(ctx context.Context, skip, limit int64) ([]models.ClassOffering, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "EnrolledStudents", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"status": models.ClassApproved}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []models.ClassOffering
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassRepo) CountApproved(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": models.ClassApproved})
}

func (r *ClassRepo) ListByInstructor(ctx context.Context, email string) ([]models.ClassOffering, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"instructorEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []models.ClassOffering
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassRepo) ListAll(ctx context.Context) ([]models.ClassOffering, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []models.ClassOffering
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClassRepo) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"feedback": feedback}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeSeat moves one seat from available to enrolled. The filter
// requires at least one available seat, so the count can never go
// negative; a matched count of zero means the class is either gone or
// full.
func (r *ClassRepo) ConsumeSeat(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "availableSeats": bson.M{"$gte": 1}},
		bson.M{"$inc": bson.M{"availableSeats": -1, "EnrolledStudents": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, ferr := r.FindByID(ctx, id); errors.Is(ferr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrSeatsExhausted
	}
	return nil
}

// CountByStatus counts classes with the given status, scoped to one
// instructor when email is non-empty.
func (r *ClassRepo) CountByStatus(ctx context.Context, email string, status models.ClassStatus) (int64, error) {
	filter := bson.M{"status": status}
	if email != "" {
		filter["instructorEmail"] = email
	}
	return r.collection.CountDocuments(ctx, filter)
}

// CountByInstructor counts all classes, scoped to one instructor when
// email is non-empty.
func (r *ClassRepo) CountByInstructor(ctx context.Context, email string) (int64, error) {
	filter := bson.M{}
	if email != "" {
		filter["instructorEmail"] = email
	}
	return r.collection.CountDocuments(ctx, filter)
}

// SumEnrolled totals EnrolledStudents over approved classes, scoped to
// one instructor when email is non-empty. An empty aggregation result
// (no approved classes) yields zero rather than an error.
func (r *ClassRepo) SumEnrolled(ctx context.Context, email string) (int64, error) {
	match := bson.D{{Key: "status", Value: models.ClassApproved}}
	if email != "" {
		match = append(match, bson.E{Key: "instructorEmail", Value: email})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$EnrolledStudents"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
