package models

import "errors"

// DiscountKind distinguishes the ways a discount can be specified.
type DiscountKind int

const (
	// DiscountNone means no discount was supplied; the sale price is the
	// base price.
	DiscountNone DiscountKind = iota
	// DiscountExplicitPrice means the sale price was given directly.
	DiscountExplicitPrice
	// DiscountPercentage means the sale price is derived from the base
	// price.
	DiscountPercentage
)

// ErrAmbiguousDiscount is returned when both a discount price and a discount
// percentage are supplied. At most one may be set.
var ErrAmbiguousDiscount = errors.New("discountPrice and discountPercentage are mutually exclusive")

// DiscountSpec is the tagged variant behind the two optional discount fields
// on product payloads. Building one rejects the both-set state, so code
// downstream never has to consider it.
type DiscountSpec struct {
	Kind       DiscountKind
	Price      float64
	Percentage int
}

// NewDiscountSpec folds the optional discountPrice/discountPercentage pair
// into a DiscountSpec.
func NewDiscountSpec(price *float64, percentage *int) (DiscountSpec, error) {
	switch {
	case price != nil && percentage != nil:
		return DiscountSpec{}, ErrAmbiguousDiscount
	case price != nil:
		return DiscountSpec{Kind: DiscountExplicitPrice, Price: *price}, nil
	case percentage != nil:
		return DiscountSpec{Kind: DiscountPercentage, Percentage: *percentage}, nil
	default:
		return DiscountSpec{Kind: DiscountNone}, nil
	}
}
