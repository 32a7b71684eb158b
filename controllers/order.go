package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/pricing"
	"go-shop/store"
)

// maxLineQuantity is the upper bound on a single order line; requests above
// it are clamped.
const maxLineQuantity = 100

// OrderController handles order placement and retrieval.
type OrderController struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
	mailer   OrderMailer
	log      zerolog.Logger
}

// NewOrderController creates an OrderController.
func NewOrderController(orders OrderStore, products ProductStore, users UserStore, mailer OrderMailer, log zerolog.Logger) *OrderController {
	return &OrderController{
		orders:   orders,
		products: products,
		users:    users,
		mailer:   mailer,
		log:      log,
	}
}

// List handles GET /api/orders. Admins see every order, everyone else only
// their own.
func (oc *OrderController) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "No token provided", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		orders []models.Order
		err    error
	)
	if principal.IsAdmin {
		orders, err = oc.orders.ListAll(ctx)
	} else {
		orders, err = oc.orders.ListByUser(ctx, principal.UserID)
	}
	if err != nil {
		oc.log.Error().Err(err).Msg("list orders")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}. Non-admins may only read orders they
// own; anyone else's answers 403.
func (oc *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "No token provided", http.StatusUnauthorized)
		return
	}

	id, _ := primitive.ObjectIDFromHex(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	order, err := oc.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Order not found.", http.StatusNotFound)
			return
		}
		oc.log.Error().Err(err).Msg("find order")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	if !principal.IsAdmin && order.User != principal.UserID {
		http.Error(w, "You do not have permission to access this resource", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create handles POST /api/orders. Every line is resolved against the live
// catalog before anything is written, so an unresolvable product id fails
// the whole request and leaves storage untouched. Each resolved line
// snapshots the product's current sale price, name and description; the
// snapshots stay frozen no matter what happens to the catalog afterwards.
func (oc *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "No token provided", http.StatusUnauthorized)
		return
	}

	var req models.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := models.OrderStatus(req.Status)
	if status == "" {
		status = models.StatusBooked
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	lines := make([]models.OrderLine, 0, len(req.Products))
	for _, lineReq := range req.Products {
		productID, err := primitive.ObjectIDFromHex(lineReq.ID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid product id %q", lineReq.ID), http.StatusBadRequest)
			return
		}

		product, err := oc.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, fmt.Sprintf("Product with id %s does not exist", lineReq.ID), http.StatusNotFound)
				return
			}
			oc.log.Error().Err(err).Msg("resolve product")
			http.Error(w, "Something failed", http.StatusInternalServerError)
			return
		}

		quantity := int(math.Round(lineReq.Quantity))
		if quantity > maxLineQuantity {
			quantity = maxLineQuantity
		}

		lines = append(lines, models.OrderLine{
			Price:       product.DiscountPrice,
			Name:        product.Name,
			Description: product.Description,
			Quantity:    quantity,
		})
	}

	order, err := oc.orders.Insert(ctx, models.Order{
		Address:    req.Address,
		TotalPrice: pricing.Total(lines),
		Status:     status,
		Products:   lines,
		Insert:     time.Now().UTC(),
		User:       principal.UserID,
	})
	if err != nil {
		oc.log.Error().Err(err).Msg("insert order")
		http.Error(w, "Something failed", http.StatusInternalServerError)
		return
	}

	go oc.sendConfirmation(principal.UserID, order)

	respondJSON(w, http.StatusOK, order)
}

// sendConfirmation emails the buyer after a successful placement. Failures
// are logged and otherwise ignored; the order already stands.
func (oc *OrderController) sendConfirmation(userID primitive.ObjectID, order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	user, err := oc.users.FindByID(ctx, userID)
	if err != nil {
		oc.log.Warn().Err(err).Str("order", order.ID.Hex()).Msg("confirmation mail: resolve user")
		return
	}
	if err := oc.mailer.SendOrderConfirmation(user.Email, order); err != nil {
		oc.log.Warn().Err(err).Str("order", order.ID.Hex()).Msg("confirmation mail")
	}
}
