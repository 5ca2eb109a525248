package repositories

import (
	"context"

	"fixmycity-be/config"
	"fixmycity-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUserRepository struct{}

// NewUserRepository returns the MongoDB-backed user store.
func NewUserRepository() UserRepository {
	return &mongoUserRepository{}
}

func (r *mongoUserRepository) collection() *mongo.Collection {
	return config.GetCollection("users")
}

func (r *mongoUserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	result, err := r.collection().InsertOne(ctx, user)
	if err != nil {
		// The unique email index is the backstop for registrations racing
		// past the pre-check.
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoUserRepository) FindCrews(ctx context.Context) ([]models.User, error) {
	findOptions := options.Find().SetProjection(bson.M{
		"_id":   1,
		"name":  1,
		"email": 1,
	})

	cursor, err := r.collection().Find(ctx, bson.M{"role": models.RoleCrew}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	crews := []models.User{}
	if err := cursor.All(ctx, &crews); err != nil {
		return nil, err
	}
	return crews, nil
}
