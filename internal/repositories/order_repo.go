package repositories

import (
	"context"

	"stationery/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	// TotalRevenue sums quantity times the linked product's current price
	// across all orders. Orders whose product no longer exists contribute
	// nothing (inner-join semantics).
	TotalRevenue(ctx context.Context) (float64, error)
}
