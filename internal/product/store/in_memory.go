package store

import (
	"context"
	"sync"
	"time"

	"github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/google/uuid"
)

// inMemory implements ProductStore using an insertion-ordered slice.
type inMemory struct {
	mu       sync.RWMutex
	products []model.Product
	now      func() time.Time
	newID    func() string
}

// Option configures the in-memory store.
type Option func(*inMemory)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *inMemory) {
		s.now = now
	}
}

// WithIDGenerator overrides the generator used for product IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *inMemory) {
		s.newID = newID
	}
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore(opts ...Option) ProductStore {
	s := &inMemory{
		products: make([]model.Product, 0),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindAll retrieves all products in insertion order.
func (s *inMemory) FindAll(_ context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

// Create appends a new product and returns a copy of it.
func (s *inMemory) Create(_ context.Context, fields model.ProductFields) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.insert(fields)
	return &product, nil
}

// FindByKey retrieves a product by its ID or ProductID.
func (s *inMemory) FindByKey(_ context.Context, key string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	product := s.products[i]
	return &product, nil
}

// UpdateByKey merges patch into the product matching key.
func (s *inMemory) UpdateByKey(_ context.Context, key string, patch model.ProductPatch) (*model.Product, error) {
	if patch.IsEmpty() {
		return nil, errors.ErrNothingToUpdate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	patch.Apply(&s.products[i])
	product := s.products[i]
	return &product, nil
}

// DeleteByKey removes the product matching key and returns the removed record.
func (s *inMemory) DeleteByKey(_ context.Context, key string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	removed := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	return &removed, nil
}

// Seed inserts fields only when the store holds no products.
func (s *inMemory) Seed(_ context.Context, fields model.ProductFields) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) > 0 {
		return false, nil
	}
	s.insert(fields)
	return true, nil
}

// insert must be called with the write lock held.
func (s *inMemory) insert(fields model.ProductFields) model.Product {
	product := model.Product{
		ID:          s.newID(),
		ProductID:   fields.ProductID,
		Name:        fields.Name,
		Price:       fields.Price,
		Image:       fields.Image,
		Description: fields.Description,
		CreatedAt:   s.now().UTC(),
	}
	s.products = append(s.products, product)
	return product
}

// indexOf returns the position of the product matching key, or -1.
// Must be called with the lock held.
func (s *inMemory) indexOf(key string) int {
	for i := range s.products {
		if s.products[i].ID == key {
			return i
		}
	}
	// ProductID is not unique: the earliest inserted match wins.
	for i := range s.products {
		if s.products[i].ProductID == key {
			return i
		}
	}
	return -1
}
