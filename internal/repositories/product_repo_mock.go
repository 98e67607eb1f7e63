package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "stationery/internal/errors"
	"stationery/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update applies the non-nil fields of update to an existing product.
func (r *MockProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.InStock != nil {
		product.InStock = *update.InStock
	}
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID and returns the removed record.
func (r *MockProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	delete(r.products, id)
	return &product, nil
}

// DecrementStock checks and subtracts quantity under one lock, so
// concurrent callers cannot both pass the stock check.
func (r *MockProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	if product.Quantity < quantity {
		return nil, apperrors.ErrInsufficientStock
	}
	product.Quantity -= quantity
	product.InStock = product.Quantity > 0
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}
