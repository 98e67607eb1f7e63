package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"stationery/internal/models"
	"stationery/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
// The revenue route is registered before the ID route so "revenue" is
// not captured as an order ID.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/revenue", h.HandleGetRevenue)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandlePlaceOrder places a new order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req models.Order
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   KindValidation,
		})
	}

	order, err := h.service.PlaceOrder(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order completed successfully",
		"data":    order,
	})
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetRevenue reports total revenue across all orders.
func (h *OrderHandler) HandleGetRevenue(c *fiber.Ctx) error {
	total, err := h.service.TotalRevenue(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Revenue calculated successfully",
		"data": fiber.Map{
			"totalRevenue": total,
		},
	})
}
