package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
)

func TestPlaceOrderRequiresToken(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/orders", "", models.PlaceOrderRequest{Address: "somewhere"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrderTotal(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	first := env.seedProduct(t, "first", 10, 10, category.ID)
	second := env.seedProduct(t, "second", 20, 20, category.ID)
	third := env.seedProduct(t, "third", 30, 30, category.ID)
	_, token := env.newToken(t, false)

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address: "Baker Street 221b",
		Status:  "booked",
		Products: []models.OrderLineRequest{
			{ID: first.ID.Hex(), Quantity: 1},
			{ID: second.ID.Hex(), Quantity: 2},
			{ID: third.ID.Hex(), Quantity: 3},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	order := decodeBody[models.Order](t, rec)
	assert.Equal(t, 140.00, order.TotalPrice)
	assert.Len(t, order.Products, 3)
	assert.Equal(t, models.StatusBooked, order.Status)
	assert.False(t, order.Insert.IsZero())
}

func TestPlaceOrderIsAllOrNothing(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 100, 100, category.ID)
	_, token := env.newToken(t, false)
	missing := primitive.NewObjectID()

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address: "Baker Street 221b",
		Products: []models.OrderLineRequest{
			{ID: product.ID.Hex(), Quantity: 1},
			{ID: missing.Hex(), Quantity: 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), missing.Hex(), "the offending id is named")
	assert.Equal(t, 0, env.orders.count(), "no partial order persisted")
}

func TestPlaceOrderDefaultsStatusToBooked(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 100, 100, category.ID)
	_, token := env.newToken(t, false)

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Products: []models.OrderLineRequest{{ID: product.ID.Hex(), Quantity: 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusBooked, decodeBody[models.Order](t, rec).Status)
}

func TestPlaceOrderValidation(t *testing.T) {
	env := newTestEnv()
	_, token := env.newToken(t, false)

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address: "Baker Street 221b",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no lines")

	rec = env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Status:   "cancelled",
		Products: []models.OrderLineRequest{{ID: primitive.NewObjectID().Hex(), Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "status outside the enum")

	rec = env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Products: []models.OrderLineRequest{{ID: "not-hex", Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "malformed product id")
}

func TestPlaceOrderClampsQuantity(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 10, 10, category.ID)
	_, token := env.newToken(t, false)

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Products: []models.OrderLineRequest{{ID: product.ID.Hex(), Quantity: 250}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	order := decodeBody[models.Order](t, rec)
	assert.Equal(t, 100, order.Products[0].Quantity)
	assert.Equal(t, 1000.00, order.TotalPrice)
}

func TestPlaceOrderSnapshotSurvivesCatalogChanges(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 100, 80, category.ID)
	_, token := env.newToken(t, false)
	_, adminToken := env.newToken(t, true)

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Products: []models.OrderLineRequest{{ID: product.ID.Hex(), Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeBody[models.Order](t, rec)

	rec = env.do(t, http.MethodDelete, "/api/products/"+product.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/"+order.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decodeBody[models.Order](t, rec)
	assert.Equal(t, 80.00, fetched.Products[0].Price, "snapshot price is frozen")
	assert.Equal(t, "keyboard", fetched.Products[0].Name)
	assert.Equal(t, 160.00, fetched.TotalPrice)
}

func TestOrderVisibility(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 100, 100, category.ID)
	_, ownerToken := env.newToken(t, false)
	_, strangerToken := env.newToken(t, false)
	_, adminToken := env.newToken(t, true)

	rec := env.do(t, http.MethodPost, "/api/orders", ownerToken, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Products: []models.OrderLineRequest{{ID: product.ID.Hex(), Quantity: 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeBody[models.Order](t, rec)

	rec = env.do(t, http.MethodGet, "/api/orders/"+order.ID.Hex(), ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "owner")

	rec = env.do(t, http.MethodGet, "/api/orders/"+order.ID.Hex(), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "non-owner non-admin")

	rec = env.do(t, http.MethodGet, "/api/orders/"+order.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "admin")

	rec = env.do(t, http.MethodGet, "/api/orders/"+primitive.NewObjectID().Hex(), ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersScope(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 100, 100, category.ID)
	_, firstToken := env.newToken(t, false)
	_, secondToken := env.newToken(t, false)
	_, adminToken := env.newToken(t, true)

	place := func(token string) {
		rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
			Address:  "Baker Street 221b",
			Products: []models.OrderLineRequest{{ID: product.ID.Hex(), Quantity: 1}},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	place(firstToken)
	place(firstToken)
	place(secondToken)

	rec := env.do(t, http.MethodGet, "/api/orders", firstToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Order](t, rec), 2, "own orders only")

	rec = env.do(t, http.MethodGet, "/api/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Order](t, rec), 3, "admin sees all")
}

func TestOrderResponseWithholdsInternalFields(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "electronics")
	product := env.seedProduct(t, "keyboard", 100, 100, category.ID)
	_, token := env.newToken(t, false)

	rec := env.do(t, http.MethodPost, "/api/orders", token, models.PlaceOrderRequest{
		Address:  "Baker Street 221b",
		Products: []models.OrderLineRequest{{ID: product.ID.Hex(), Quantity: 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]interface{}](t, rec)
	assert.NotContains(t, body, "user")
	assert.NotContains(t, body, "modify")
}
