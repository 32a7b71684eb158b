package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/pricing"
	"go-shop/store"
)

// ProductController handles product CRUD and discount application.
type ProductController struct {
	products   ProductStore
	categories CategoryStore
	log        zerolog.Logger
}

// NewProductController creates a ProductController.
func NewProductController(products ProductStore, categories CategoryStore, log zerolog.Logger) *ProductController {
	return &ProductController{products: products, categories: categories, log: log}
}

// List handles GET /api/products. Supported query parameters: name and
// description (case-insensitive substring), minPrice/maxPrice (applied to
// the live sale price), categoryId (exact).
func (pc *ProductController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	products, err := pc.products.List(ctx, filter)
	if err != nil {
		pc.log.Error().Err(err).Msg("list products")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func parseProductFilter(r *http.Request) (store.ProductFilter, error) {
	query := r.URL.Query()
	filter := store.ProductFilter{
		Name:        query.Get("name"),
		Description: query.Get("description"),
	}

	if raw := query.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return store.ProductFilter{}, errors.New("Invalid minPrice.")
		}
		filter.MinPrice = &v
	}
	if raw := query.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return store.ProductFilter{}, errors.New("Invalid maxPrice.")
		}
		filter.MaxPrice = &v
	}
	if raw := query.Get("categoryId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return store.ProductFilter{}, errors.New("Invalid categoryId.")
		}
		filter.Category = &id
	}

	return filter, nil
}

// Get handles GET /api/products/{id}.
func (pc *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	product, err := pc.products.FindByID(ctx, id)
	if err != nil {
		respondStoreError(w, pc.log, err, "Product not found.", "Product name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products (admin). The category reference must
// resolve at creation time, and the sale price comes out of the pricing
// engine: derived from the percentage, taken from the explicit price, or
// defaulted to the base price.
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "No token provided", http.StatusUnauthorized)
		return
	}

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	spec, err := req.Validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		http.Error(w, "Invalid categoryId.", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if _, err := pc.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Category not found.", http.StatusBadRequest)
			return
		}
		pc.log.Error().Err(err).Msg("resolve category")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	basePrice := pricing.Round2(*req.BasePrice)
	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     basePrice,
		DiscountPrice: pricing.Compute(basePrice, spec),
		Insert:        time.Now().UTC(),
		CreatedBy:     principal.UserID,
		Category:      categoryID,
	}
	if spec.Kind == models.DiscountPercentage {
		pct := spec.Percentage
		product.DiscountPercentage = &pct
	}

	product, err = pc.products.Insert(ctx, product)
	if err != nil {
		respondStoreError(w, pc.log, err, "Product not found.", "Product name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// ApplyDiscount handles PATCH /api/products/applyDiscount/{id} (admin).
// Exactly one of discountPrice/discountPercentage must be supplied. A
// percentage recomputes the sale price from the current base price; an
// explicit price clears any stored percentage, so only one representation
// is ever live.
func (pc *ProductController) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	product, err := pc.products.FindByID(ctx, id)
	if err != nil {
		respondStoreError(w, pc.log, err, "Product not found.", "Product name is already used.")
		return
	}

	var req models.ApplyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	spec, err := req.Validate(product.BasePrice)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	newPrice := pricing.Compute(product.BasePrice, spec)
	var pct *int
	if spec.Kind == models.DiscountPercentage {
		pct = &spec.Percentage
	}

	product, err = pc.products.SetDiscount(ctx, id, newPrice, pct, time.Now().UTC())
	if err != nil {
		respondStoreError(w, pc.log, err, "Product not found.", "Product name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} (admin). Existing orders keep
// their snapshots; nothing cascades.
func (pc *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	product, err := pc.products.Delete(ctx, id)
	if err != nil {
		respondStoreError(w, pc.log, err, "Product not found.", "Product name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, product)
}
