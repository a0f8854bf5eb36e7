package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

type SelectionRepo struct {
	collection *mongo.Collection
}

func NewSelectionRepo(client *mongo.Client, dbName string) *SelectionRepo {
	return &SelectionRepo{
		collection: client.Database(dbName).Collection("selectedClasses"),
	}
}

// Insert adds a selection. The unique (classId, studentEmail) index
// turns a concurrent double-select into ErrDuplicate for the loser.
func (r *SelectionRepo) Insert(ctx context.Context, s models.SelectedClass) (models.SelectedClass, error) {
	s.ID = primitive.NewObjectID()
	s.SelectedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.SelectedClass{}, ErrDuplicate
		}
		return models.SelectedClass{}, err
	}
	return s, nil
}

func (r *SelectionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.SelectedClass, error) {
	var s models.SelectedClass
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SelectedClass{}, ErrNotFound
	}
	if err != nil {
		return models.SelectedClass{}, err
	}
	return s, nil
}

func (r *SelectionRepo) ExistsByPair(ctx context.Context, classID primitive.ObjectID, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"classId": classID, "studentEmail": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SelectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFilledUp downgrades the selection's visible status once the
// referenced class has no seats left.
func (r *SelectionRepo) MarkFilledUp(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.SelectionFilledUp}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SelectionRepo) ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studentEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var selections []models.SelectedClass
	if err := cursor.All(ctx, &selections); err != nil {
		return nil, err
	}
	return selections, nil
}

func (r *SelectionRepo) CountByStudent(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"studentEmail": email})
}
