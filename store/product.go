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

// ProductFilter narrows a product listing. Zero-valued fields add no
// predicate. The price range applies to the live discountPrice, and
// Category matches the stored category reference exactly.
type ProductFilter struct {
	Name        string
	Description string
	MinPrice    *float64
	MaxPrice    *float64
	Category    *primitive.ObjectID
}

// ProductStore persists products in the "products" collection.
type ProductStore struct {
	collection *mongo.Collection
}

// NewProductStore creates a ProductStore on the given database.
func NewProductStore(database *mongo.Database) *ProductStore {
	return &ProductStore{collection: database.Collection("products")}
}

// Insert stores a new product. A duplicate name returns ErrDuplicate.
func (s *ProductStore) Insert(ctx context.Context, product models.Product) (models.Product, error) {
	result, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, translate(err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

// FindByID looks a product up by id.
func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return models.Product{}, translate(err)
	}
	return product, nil
}

// List returns products matching the filter, ordered by name.
func (s *ProductStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := bson.M{}

	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Description != "" {
		query["description"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Description), Options: "i"}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["discountPrice"] = price
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}

	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, translate(err)
	}
	return products, nil
}

// SetDiscount updates a product's sale price and returns the updated
// document. Passing a nil percentage clears any stored percentage, keeping a
// single authoritative discount representation.
func (s *ProductStore) SetDiscount(ctx context.Context, id primitive.ObjectID, discountPrice float64, discountPercentage *int, modified time.Time) (models.Product, error) {
	set := bson.M{"discountPrice": discountPrice, "modified": modified}
	update := bson.M{"$set": set}
	if discountPercentage != nil {
		set["discountPercentage"] = *discountPercentage
	} else {
		update["$unset"] = bson.M{"discountPercentage": ""}
	}

	var product models.Product
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&product)
	if err != nil {
		return models.Product{}, translate(err)
	}
	return product, nil
}

// Delete removes a product and returns the removed document, or ErrNotFound
// if no such product exists. Orders are untouched: their lines hold copied
// values, not references.
func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return models.Product{}, translate(err)
	}
	return product, nil
}
