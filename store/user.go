package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shop/models"
)

// UserStore persists users in the "users" collection.
type UserStore struct {
	collection *mongo.Collection
}

// NewUserStore creates a UserStore on the given database.
func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{collection: database.Collection("users")}
}

// Insert stores a new user. A duplicate email returns ErrDuplicate.
func (s *UserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, translate(err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// FindByEmail looks a user up by exact email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// FindByID looks a user up by id.
func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}
