package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "stationery/internal/errors"
	"stationery/internal/models"
	"stationery/internal/repositories"
	"stationery/pkg/rabbitmq"
)

// OrderService handles order placement and revenue reporting.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	tx          repositories.TxManager
	mqClient    *rabbitmq.Client
	validate    *validator.Validate
}

// NewOrderService creates a new OrderService. mqClient may be nil, in
// which case order events are not published.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, tx repositories.TxManager, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		tx:          tx,
		mqClient:    mqClient,
		validate:    validator.New(),
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// PlaceOrder validates the request, then runs the stock decrement and
// the order insert inside a single transaction. Failure kinds:
// ErrProductNotFound, ErrInsufficientStock, ErrPriceMismatch, or a
// ValidationError for schema violations.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.Order) (*models.Order, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	var placed *models.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity < req.Quantity {
			return apperrors.ErrInsufficientStock
		}
		if expected := product.Price * float64(req.Quantity); req.TotalPrice != expected {
			return apperrors.ErrPriceMismatch
		}

		// The decrement re-checks availability atomically, so a
		// concurrent order cannot oversell between the check above
		// and this write.
		if _, err := s.productRepo.DecrementStock(ctx, req.ProductID, req.Quantity); err != nil {
			return err
		}

		order := &models.Order{
			ID:         uuid.New().String(),
			Email:      req.Email,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
			TotalPrice: req.TotalPrice,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderCreated(placed)
	return placed, nil
}

// publishOrderCreated emits an order.created event. Publishing is best
// effort: a broker failure never fails a placed order.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":    order.ID,
		"email":      order.Email,
		"product":    order.ProductID,
		"quantity":   order.Quantity,
		"totalPrice": order.TotalPrice,
	})
	if err != nil {
		log.Printf("Failed to marshal order %s to JSON: %v", order.ID, err)
		return
	}
	if err := s.mqClient.Publish("order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// TotalRevenue sums quantity times current product price across all
// orders. Orders whose product has since been deleted are excluded;
// see the repository contract.
func (s *OrderService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.orderRepo.TotalRevenue(ctx)
}
