package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "stationery/internal/errors"
	"stationery/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It holds a reference to the product repository so TotalRevenue can
// resolve each order's product, the way the database join does.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrOrderNotFound
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.ID] = *order
	return nil
}

// TotalRevenue sums quantity times current product price, skipping
// orders whose product no longer exists.
func (r *MockOrderRepository) TotalRevenue(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, order := range r.orders {
		product, err := r.products.GetByID(ctx, order.ProductID)
		if err != nil {
			continue
		}
		total += product.Price * float64(order.Quantity)
	}
	return total, nil
}
