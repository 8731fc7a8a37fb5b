// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/abgdnv/catalog/internal/product/model"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
//
// A key is either the generated ID of a product or its business ProductID.
// ID matches take precedence; among ProductID matches the earliest inserted record wins.
type ProductStore interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]model.Product, error)

	// Create adds a new product, assigning its ID and creation time.
	Create(ctx context.Context, fields model.ProductFields) (*model.Product, error)

	// FindByKey retrieves a single product by ID or ProductID.
	// Returns ErrProductNotFound if no product matches the key.
	FindByKey(ctx context.Context, key string) (*model.Product, error)

	// UpdateByKey merges the set fields of patch into the matching product.
	// Returns ErrNothingToUpdate if the patch is empty and ErrProductNotFound if no product matches the key.
	UpdateByKey(ctx context.Context, key string, patch model.ProductPatch) (*model.Product, error)

	// DeleteByKey removes the matching product and returns it.
	// Returns ErrProductNotFound if no product matches the key.
	DeleteByKey(ctx context.Context, key string) (*model.Product, error)

	// Seed inserts fields as a new product only if the store is empty.
	// Reports whether a product was inserted.
	Seed(ctx context.Context, fields model.ProductFields) (bool, error)
}

// SampleProduct returns the record seeded into an empty store at startup.
func SampleProduct() model.ProductFields {
	return model.ProductFields{
		ProductID:   "P001",
		Name:        "醤油ラーメン",
		Price:       800,
		Image:       "images/shoyu_ramen.jpg",
		Description: "当店自慢の醤油ベーススープに特製の中太麺が絡む一品",
	}
}
