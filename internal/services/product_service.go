package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"stationery/internal/models"
	"stationery/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
	}
}

// SearchProducts retrieves products matching the search term. An empty
// term returns all products.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return products, nil
	}
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesTerm(p, term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// matchesTerm reports whether term occurs, case-insensitively, in the
// product's name, brand, or category. Kept as an explicit predicate so
// search behaves the same on every store.
func matchesTerm(p models.Product, term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), t) ||
		strings.Contains(strings.ToLower(p.Brand), t) ||
		strings.Contains(strings.ToLower(p.Category), t)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.Brand = strings.TrimSpace(product.Brand)
	if err := s.validate.Struct(product); err != nil {
		return asValidationError(err)
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct validates the provided fields and applies a partial
// update, returning the post-update record.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	if update.Brand != nil {
		trimmed := strings.TrimSpace(*update.Brand)
		update.Brand = &trimmed
	}
	if err := s.validate.Struct(update); err != nil {
		return nil, asValidationError(err)
	}
	return s.repo.Update(ctx, id, update)
}

// DeleteProduct removes a product by its ID and returns the removed
// record.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Delete(ctx, id)
}
