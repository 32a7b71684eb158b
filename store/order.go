package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop/models"
)

// OrderStore persists orders in the "orders" collection. Orders are written
// once and never updated in the current scope.
type OrderStore struct {
	collection *mongo.Collection
}

// NewOrderStore creates an OrderStore on the given database.
func NewOrderStore(database *mongo.Database) *OrderStore {
	return &OrderStore{collection: database.Collection("orders")}
}

// Insert stores a new order.
func (s *OrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, translate(err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return order, nil
}

// FindByID looks an order up by id.
func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return models.Order{}, translate(err)
	}
	return order, nil
}

// ListAll returns every order, newest first.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

// ListByUser returns the orders owned by the given user, newest first.
func (s *OrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"user": userID})
}

func (s *OrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "insert", Value: -1}}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate(err)
	}
	return orders, nil
}
