package repositories

import (
	"context"

	"stationery/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update applies the non-nil fields of update and returns the
	// post-update record.
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	// Delete removes the product and returns the removed record.
	Delete(ctx context.Context, id string) (*models.Product, error)
	// DecrementStock subtracts quantity as a single conditional write:
	// it succeeds only if at least that many units are available, and it
	// clears the inStock flag when the remaining quantity reaches zero.
	DecrementStock(ctx context.Context, id string, quantity int) (*models.Product, error)
}
