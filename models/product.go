package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. DiscountPrice is always populated and is the
// live sale price; DiscountPercentage is only set while a percentage-based
// discount is the authoritative one.
type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice          float64            `bson:"basePrice" json:"basePrice"`
	DiscountPrice      float64            `bson:"discountPrice" json:"discountPrice"`
	DiscountPercentage *int               `bson:"discountPercentage,omitempty" json:"discountPercentage,omitempty"`
	Insert             time.Time          `bson:"insert" json:"insert"`
	Modified           *time.Time         `bson:"modified,omitempty" json:"modified,omitempty"`
	CreatedBy          primitive.ObjectID `bson:"createdBy" json:"-"`
	Category           primitive.ObjectID `bson:"category" json:"categoryId"`
}

// CreateProductRequest is the POST /api/products payload.
type CreateProductRequest struct {
	Name               string   `json:"name" validate:"required,min=1,max=50"`
	Description        string   `json:"description" validate:"omitempty,min=1,max=50"`
	BasePrice          *float64 `json:"basePrice" validate:"required,gte=0,lte=99999"`
	DiscountPrice      *float64 `json:"discountPrice" validate:"omitempty,gte=0"`
	DiscountPercentage *int     `json:"discountPercentage" validate:"omitempty,min=1,max=99"`
	CategoryID         string   `json:"categoryId" validate:"required"`
}

// Validate checks the tag rules plus the cross-field constraints: at most
// one way of specifying the discount, and an explicit discount price never
// above the base price.
func (r CreateProductRequest) Validate() (DiscountSpec, error) {
	if err := checkStruct(r); err != nil {
		return DiscountSpec{}, err
	}
	spec, err := NewDiscountSpec(r.DiscountPrice, r.DiscountPercentage)
	if err != nil {
		return DiscountSpec{}, err
	}
	if spec.Kind == DiscountExplicitPrice && spec.Price > *r.BasePrice {
		return DiscountSpec{}, errors.New("discountPrice must not exceed basePrice")
	}
	return spec, nil
}

// ApplyDiscountRequest is the PATCH /api/products/applyDiscount/:id payload.
// Exactly one of the two fields must be supplied.
type ApplyDiscountRequest struct {
	DiscountPrice      *float64 `json:"discountPrice" validate:"omitempty,gte=0"`
	DiscountPercentage *int     `json:"discountPercentage" validate:"omitempty,min=1,max=99"`
}

// Validate checks the request against the base price of the product being
// discounted.
func (r ApplyDiscountRequest) Validate(basePrice float64) (DiscountSpec, error) {
	if err := checkStruct(r); err != nil {
		return DiscountSpec{}, err
	}
	spec, err := NewDiscountSpec(r.DiscountPrice, r.DiscountPercentage)
	if err != nil {
		return DiscountSpec{}, err
	}
	if spec.Kind == DiscountNone {
		return DiscountSpec{}, errors.New("either discountPrice or discountPercentage is required")
	}
	if spec.Kind == DiscountExplicitPrice && spec.Price > basePrice {
		return DiscountSpec{}, errors.New("discountPrice must not exceed basePrice")
	}
	return spec, nil
}
