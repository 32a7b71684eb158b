package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-shop/auth"
	"go-shop/controllers"
	"go-shop/middleware"
)

// Register wires every endpoint. Catalog reads are public; catalog
// mutations require an admin token and orders require any valid token.
func Register(router *mux.Router, tokens *auth.TokenService,
	userController *controllers.UserController,
	categoryController *controllers.CategoryController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController) {

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Users
	api.HandleFunc("/users", userController.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/authentication", userController.Authenticate).Methods(http.MethodPost)

	requireAuth := middleware.RequireAuth(tokens)

	// Categories: public reads
	api.HandleFunc("/categories", categoryController.List).Methods(http.MethodGet)
	api.Handle("/categories/{id}", middleware.RequireObjectID(http.HandlerFunc(categoryController.Get))).Methods(http.MethodGet)

	// Categories: admin mutations
	adminCategories := api.PathPrefix("/categories").Subrouter()
	adminCategories.Use(requireAuth, middleware.RequireAdmin)
	adminCategories.HandleFunc("", categoryController.Create).Methods(http.MethodPost)
	adminCategories.Handle("/{id}", middleware.RequireObjectID(http.HandlerFunc(categoryController.Update))).Methods(http.MethodPut)
	adminCategories.Handle("/{id}", middleware.RequireObjectID(http.HandlerFunc(categoryController.Delete))).Methods(http.MethodDelete)

	// Products: public reads
	api.HandleFunc("/products", productController.List).Methods(http.MethodGet)
	api.Handle("/products/{id}", middleware.RequireObjectID(http.HandlerFunc(productController.Get))).Methods(http.MethodGet)

	// Products: admin mutations
	adminProducts := api.PathPrefix("/products").Subrouter()
	adminProducts.Use(requireAuth, middleware.RequireAdmin)
	adminProducts.HandleFunc("", productController.Create).Methods(http.MethodPost)
	adminProducts.Handle("/applyDiscount/{id}", middleware.RequireObjectID(http.HandlerFunc(productController.ApplyDiscount))).Methods(http.MethodPatch)
	adminProducts.Handle("/{id}", middleware.RequireObjectID(http.HandlerFunc(productController.Delete))).Methods(http.MethodDelete)

	// Orders: any authenticated user
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(requireAuth)
	orders.HandleFunc("", orderController.List).Methods(http.MethodGet)
	orders.Handle("/{id}", middleware.RequireObjectID(http.HandlerFunc(orderController.Get))).Methods(http.MethodGet)
	orders.HandleFunc("", orderController.Create).Methods(http.MethodPost)
}
