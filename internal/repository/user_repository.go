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

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(client *mongo.Client, dbName string) *UserRepo {
	return &UserRepo{
		collection: client.Database(dbName).Collection("users"),
	}
}

// Upsert creates the user on first sign-in and is a no-op for the
// stored profile fields on later sign-ins. Role is only set when the
// document is first created; role changes go through SetRole.
func (r *UserRepo) Upsert(ctx context.Context, u models.User) (created bool, err error) {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":      u.Email,
			"name":       u.Name,
			"image":      u.Image,
			"gender":     u.Gender,
			"role":       models.RoleStudent,
			"created_at": now,
		},
		"$set": bson.M{"updated_at": now},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"email": u.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	// Tolerate legacy documents with mixed-case role values.
	if role, ok := models.ParseRole(string(u.Role)); ok {
		u.Role = role
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"role": role, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}

// instructorPipeline joins instructors with their approved classes.
// The lookup filters on status inside the sub-pipeline so denied and
// pending offerings never contribute to the totals.
func instructorPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "classes"},
			{Key: "let", Value: bson.D{{Key: "email", Value: "$email"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
						bson.D{{Key: "$eq", Value: bson.A{"$instructorEmail", "$$email"}}},
						bson.D{{Key: "$eq", Value: bson.A{"$status", models.ClassApproved}}},
					}}}},
				}}},
			}},
			{Key: "as", Value: "classes"},
		}}},
	}
}

// InstructorsWithApprovedClasses returns every instructor joined with
// their approved classes. Instructors with no approved classes are
// included with an empty join result.
func (r *UserRepo) InstructorsWithApprovedClasses(ctx context.Context) ([]models.InstructorWithClasses, error) {
	pipeline := instructorPipeline(bson.D{{Key: "role", Value: models.RoleInstructor}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var instructors []models.InstructorWithClasses
	if err := cursor.All(ctx, &instructors); err != nil {
		return nil, err
	}
	return instructors, nil
}

// InstructorWithApprovedClassesByID runs the same join for a single
// instructor identity.
func (r *UserRepo) InstructorWithApprovedClassesByID(ctx context.Context, id primitive.ObjectID) (models.InstructorWithClasses, error) {
	pipeline := instructorPipeline(bson.D{
		{Key: "_id", Value: id},
		{Key: "role", Value: models.RoleInstructor},
	})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.InstructorWithClasses{}, err
	}
	defer cursor.Close(ctx)

	var instructors []models.InstructorWithClasses
	if err := cursor.All(ctx, &instructors); err != nil {
		return models.InstructorWithClasses{}, err
	}
	if len(instructors) == 0 {
		return models.InstructorWithClasses{}, ErrNotFound
	}
	return instructors[0], nil
}
