package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "stationery/internal/errors"
	"stationery/internal/models"
)

// MongoProductRepository is a mongo-driver implementation of
// ProductRepository backed by the "products" collection.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		coll: db.Collection("products"),
	}
}

// GetAll retrieves all products from the collection.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the collection.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product into the collection.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of update and returns the
// post-update document.
func (r *MongoProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Brand != nil {
		set["brand"] = *update.Brand
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.InStock != nil {
		set["inStock"] = *update.InStock
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &product, nil
}

// Delete removes a product by its ID and returns the removed document.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return &product, nil
}

// DecrementStock subtracts quantity with a single conditional
// FindOneAndUpdate. The filter requires enough stock, and the update
// pipeline recomputes the inStock flag from the decremented quantity.
func (r *MongoProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": quantity}}
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"quantity": bson.M{"$subtract": bson.A{"$quantity", quantity}},
		}},
		bson.M{"$set": bson.M{
			"inStock":   bson.M{"$gt": bson.A{"$quantity", 0}},
			"updatedAt": time.Now(),
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.coll.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&product)
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to decrement stock for product %s: %w", id, err)
	}

	// No match: either the product is missing or the stock is short.
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to check product %s: %w", id, err)
	}
	if count == 0 {
		return nil, apperrors.ErrProductNotFound
	}
	return nil, apperrors.ErrInsufficientStock
}
