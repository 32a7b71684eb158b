package controllers_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/store"
)

// In-memory stores standing in for the Mongo-backed ones. They emulate the
// unique indexes so duplicate handling can be exercised without a database.

type memUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *memUserStore) Insert(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

type memCategoryStore struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]models.Category
}

func newMemCategoryStore() *memCategoryStore {
	return &memCategoryStore{categories: map[primitive.ObjectID]models.Category{}}
}

func (s *memCategoryStore) Insert(_ context.Context, category models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return models.Category{}, store.ErrDuplicate
		}
	}
	category.ID = primitive.NewObjectID()
	s.categories[category.ID] = category
	return category, nil
}

func (s *memCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	return category, nil
}

func (s *memCategoryStore) List(_ context.Context, name string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Category{}
	for _, category := range s.categories {
		if name != "" && !strings.Contains(strings.ToLower(category.Name), strings.ToLower(name)) {
			continue
		}
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memCategoryStore) Rename(_ context.Context, id primitive.ObjectID, name string, modified time.Time) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	for otherID, existing := range s.categories {
		if otherID != id && existing.Name == name {
			return models.Category{}, store.ErrDuplicate
		}
	}
	category.Name = name
	category.Modified = &modified
	s.categories[id] = category
	return category, nil
}

func (s *memCategoryStore) Delete(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, store.ErrNotFound
	}
	delete(s.categories, id)
	return category, nil
}

type memProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (s *memProductStore) Insert(_ context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.Name == product.Name {
			return models.Product{}, store.ErrDuplicate
		}
	}
	product.ID = primitive.NewObjectID()
	s.products[product.ID] = product
	return product, nil
}

func (s *memProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return product, nil
}

func (s *memProductStore) List(_ context.Context, filter store.ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, product := range s.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Description != "" && !strings.Contains(strings.ToLower(product.Description), strings.ToLower(filter.Description)) {
			continue
		}
		if filter.MinPrice != nil && product.DiscountPrice < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.DiscountPrice > *filter.MaxPrice {
			continue
		}
		if filter.Category != nil && product.Category != *filter.Category {
			continue
		}
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memProductStore) SetDiscount(_ context.Context, id primitive.ObjectID, discountPrice float64, discountPercentage *int, modified time.Time) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	product.DiscountPrice = discountPrice
	product.DiscountPercentage = discountPercentage
	product.Modified = &modified
	s.products[id] = product
	return product, nil
}

func (s *memProductStore) Delete(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	delete(s.products, id)
	return product, nil
}

type memOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (s *memOrderStore) Insert(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order
	return order, nil
}

func (s *memOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	return order, nil
}

func (s *memOrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, order := range s.orders {
		out = append(out, order)
	}
	return out, nil
}

func (s *memOrderStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, order := range s.orders {
		if order.User == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *memOrderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type noopMailer struct{}

func (noopMailer) SendOrderConfirmation(string, models.Order) error { return nil }
