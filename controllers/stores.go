package controllers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/store"
)

// The controllers depend on these narrow store contracts rather than on the
// Mongo-backed implementations directly; tests substitute in-memory fakes.

// UserStore persists and resolves users.
type UserStore interface {
	Insert(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

// CategoryStore persists and resolves categories.
type CategoryStore interface {
	Insert(ctx context.Context, category models.Category) (models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	List(ctx context.Context, name string) ([]models.Category, error)
	Rename(ctx context.Context, id primitive.ObjectID, name string, modified time.Time) (models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Category, error)
}

// ProductStore persists and resolves products.
type ProductStore interface {
	Insert(ctx context.Context, product models.Product) (models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error)
	SetDiscount(ctx context.Context, id primitive.ObjectID, discountPrice float64, discountPercentage *int, modified time.Time) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Product, error)
}

// OrderStore persists and resolves orders.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// OrderMailer sends the post-placement confirmation.
type OrderMailer interface {
	SendOrderConfirmation(toEmail string, order models.Order) error
}
