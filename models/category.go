package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a product grouping managed by admins.
// CreatedBy is stored but never serialized to clients.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Insert    time.Time          `bson:"insert" json:"insert"`
	Modified  *time.Time         `bson:"modified,omitempty" json:"modified,omitempty"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"-"`
}

// CategoryRequest is the create/rename payload.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

func (r CategoryRequest) Validate() error {
	return checkStruct(r)
}
