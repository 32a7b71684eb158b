package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/middleware"
	"go-shop/models"
)

// CategoryController handles category CRUD. Reads are public; every
// mutation sits behind the admin middleware chain.
type CategoryController struct {
	categories CategoryStore
	log        zerolog.Logger
}

// NewCategoryController creates a CategoryController.
func NewCategoryController(categories CategoryStore, log zerolog.Logger) *CategoryController {
	return &CategoryController{categories: categories, log: log}
}

// List handles GET /api/categories with an optional case-insensitive name
// filter.
func (cc *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categories, err := cc.categories.List(ctx, r.URL.Query().Get("name"))
	if err != nil {
		cc.log.Error().Err(err).Msg("list categories")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// Get handles GET /api/categories/{id}.
func (cc *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	category, err := cc.categories.FindByID(ctx, id)
	if err != nil {
		respondStoreError(w, cc.log, err, "Category not found.", "Category name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories (admin).
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "No token provided", http.StatusUnauthorized)
		return
	}

	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	category, err := cc.categories.Insert(ctx, models.Category{
		Name:      req.Name,
		Insert:    time.Now().UTC(),
		CreatedBy: principal.UserID,
	})
	if err != nil {
		respondStoreError(w, cc.log, err, "Category not found.", "Category name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":   category.ID,
		"name": category.Name,
	})
}

// Update handles PUT /api/categories/{id} (admin). Renaming onto an
// existing name trips the same unique index as creation.
func (cc *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	category, err := cc.categories.Rename(ctx, id, req.Name, time.Now().UTC())
	if err != nil {
		respondStoreError(w, cc.log, err, "Category not found.", "Category name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id} (admin). The removed category
// is returned; a second delete answers 404.
func (cc *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	category, err := cc.categories.Delete(ctx, id)
	if err != nil {
		respondStoreError(w, cc.log, err, "Category not found.", "Category name is already used.")
		return
	}

	respondJSON(w, http.StatusOK, category)
}
