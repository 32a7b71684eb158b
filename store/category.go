package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop/models"
)

// CategoryStore persists categories in the "categories" collection.
type CategoryStore struct {
	collection *mongo.Collection
}

// NewCategoryStore creates a CategoryStore on the given database.
func NewCategoryStore(database *mongo.Database) *CategoryStore {
	return &CategoryStore{collection: database.Collection("categories")}
}

// Insert stores a new category. A duplicate name returns ErrDuplicate.
func (s *CategoryStore) Insert(ctx context.Context, category models.Category) (models.Category, error) {
	result, err := s.collection.InsertOne(ctx, category)
	if err != nil {
		return models.Category{}, translate(err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)
	return category, nil
}

// FindByID looks a category up by id.
func (s *CategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var category models.Category
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return models.Category{}, translate(err)
	}
	return category, nil
}

// List returns categories ordered by name. A non-empty name filters by
// case-insensitive substring.
func (s *CategoryStore) List(ctx context.Context, name string) ([]models.Category, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

// Rename updates a category's name and returns the updated document.
// A name already taken by another category returns ErrDuplicate.
func (s *CategoryStore) Rename(ctx context.Context, id primitive.ObjectID, name string, modified time.Time) (models.Category, error) {
	update := bson.M{"$set": bson.M{"name": name, "modified": modified}}

	var category models.Category
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&category)
	if err != nil {
		return models.Category{}, translate(err)
	}
	return category, nil
}

// Delete removes a category and returns the removed document, or
// ErrNotFound if no such category exists.
func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var category models.Category
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return models.Category{}, translate(err)
	}
	return category, nil
}
