package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusBooked    OrderStatus = "booked"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
)

// OrderLine is a value snapshot of a product taken at order time. It holds
// copies, not references, so later catalog changes never touch it.
type OrderLine struct {
	Price       float64 `bson:"price" json:"price"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Quantity    int     `bson:"quantity" json:"quantity"`
}

// Order is an immutable record of a placed order. Modify and User are
// internal fields withheld from every response.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Address    string             `bson:"address" json:"address"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Status     OrderStatus        `bson:"status" json:"status"`
	Products   []OrderLine        `bson:"products" json:"products"`
	Insert     time.Time          `bson:"insert" json:"insert"`
	Modify     *time.Time         `bson:"modify,omitempty" json:"-"`
	User       primitive.ObjectID `bson:"user" json:"-"`
}

// OrderLineRequest references a live product by id. Quantity is accepted as
// a number and rounded to the nearest integer downstream.
type OrderLineRequest struct {
	ID       string  `json:"id" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gte=1"`
}

// PlaceOrderRequest is the POST /api/orders payload. An omitted status
// defaults to booked.
type PlaceOrderRequest struct {
	Address  string             `json:"address" validate:"required,min=1,max=50"`
	Status   string             `json:"status" validate:"omitempty,oneof=booked shipped completed"`
	Products []OrderLineRequest `json:"products" validate:"required,min=1,dive"`
}

func (r PlaceOrderRequest) Validate() error {
	return checkStruct(r)
}
