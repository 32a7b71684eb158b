package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/auth"
	"go-shop/controllers"
	"go-shop/middleware"
	"go-shop/models"
	"go-shop/routes"
)

const testSecret = "test-secret"

// testEnv is a fully wired router over in-memory stores. Requests travel
// the same middleware chains as in production.
type testEnv struct {
	router     *mux.Router
	tokens     *auth.TokenService
	users      *memUserStore
	categories *memCategoryStore
	products   *memProductStore
	orders     *memOrderStore
}

func newTestEnv() *testEnv {
	log := zerolog.Nop()
	tokens := auth.NewTokenService(testSecret)

	users := newMemUserStore()
	categories := newMemCategoryStore()
	products := newMemProductStore()
	orders := newMemOrderStore()

	router := mux.NewRouter()
	routes.Register(router, tokens,
		controllers.NewUserController(users, tokens, log),
		controllers.NewCategoryController(categories, log),
		controllers.NewProductController(products, categories, log),
		controllers.NewOrderController(orders, products, users, noopMailer{}, log),
	)

	return &testEnv{
		router:     router,
		tokens:     tokens,
		users:      users,
		categories: categories,
		products:   products,
		orders:     orders,
	}
}

// newToken issues a token for a fresh user id.
func (e *testEnv) newToken(t *testing.T, isAdmin bool) (primitive.ObjectID, string) {
	t.Helper()
	userID := primitive.NewObjectID()
	token, err := e.tokens.Issue(userID, isAdmin)
	require.NoError(t, err)
	return userID, token
}

// do performs a request against the wired router.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func (e *testEnv) seedCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category, err := e.categories.Insert(context.Background(), models.Category{
		Name:      name,
		Insert:    time.Now().UTC(),
		CreatedBy: primitive.NewObjectID(),
	})
	require.NoError(t, err)
	return category
}

func (e *testEnv) seedProduct(t *testing.T, name string, basePrice, discountPrice float64, category primitive.ObjectID) models.Product {
	t.Helper()
	product, err := e.products.Insert(context.Background(), models.Product{
		Name:          name,
		BasePrice:     basePrice,
		DiscountPrice: discountPrice,
		Insert:        time.Now().UTC(),
		CreatedBy:     primitive.NewObjectID(),
		Category:      category,
	})
	require.NoError(t, err)
	return product
}
