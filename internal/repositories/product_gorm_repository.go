package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "stationery/internal/errors"
	"stationery/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := gormDB(ctx, r.db).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := gormDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := gormDB(ctx, r.db).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of update to an existing product and
// returns the post-update record.
func (r *GORMProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	db := gormDB(ctx, r.db)

	changes := updateChanges(update)
	if len(changes) > 0 {
		res := db.Model(&models.Product{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apperrors.ErrProductNotFound
		}
	}

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to reload product %s: %w", id, err)
	}
	return &product, nil
}

// updateChanges flattens a partial update into the column map GORM expects.
func updateChanges(update models.ProductUpdate) map[string]interface{} {
	changes := map[string]interface{}{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Brand != nil {
		changes["brand"] = *update.Brand
	}
	if update.Price != nil {
		changes["price"] = *update.Price
	}
	if update.Category != nil {
		changes["category"] = *update.Category
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Quantity != nil {
		changes["quantity"] = *update.Quantity
	}
	if update.InStock != nil {
		changes["in_stock"] = *update.InStock
	}
	return changes
}

// Delete removes a product by its ID and returns the removed record.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	db := gormDB(ctx, r.db)

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product for deletion %s: %w", id, err)
	}
	if err := db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return &product, nil
}

// DecrementStock subtracts quantity in one conditional UPDATE so two
// concurrent orders cannot both pass the stock check.
func (r *GORMProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	db := gormDB(ctx, r.db)

	res := db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", quantity),
			"in_stock": gorm.Expr("quantity - ? > 0", quantity),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to decrement stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check product %s: %w", id, err)
		}
		if count == 0 {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.ErrInsufficientStock
	}

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product %s: %w", id, err)
	}
	return &product, nil
}
