package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	apperrors "stationery/internal/errors"
)

// Machine-checkable error kinds exposed in response bodies.
const (
	KindValidation        = "VALIDATION_ERROR"
	KindProductNotFound   = "PRODUCT_NOT_FOUND"
	KindOrderNotFound     = "ORDER_NOT_FOUND"
	KindInsufficientStock = "INSUFFICIENT_STOCK"
	KindPriceMismatch     = "PRICE_MISMATCH"
	KindInternal          = "INTERNAL_ERROR"
)

// respondError maps service errors onto HTTP status codes. Every body
// carries a human-readable message and a machine-checkable kind.
// Unexpected failures are logged but never echoed to the client.
func respondError(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   KindValidation,
			"details": verr.Fields,
		})
	case errors.Is(err, apperrors.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   KindProductNotFound,
		})
	case errors.Is(err, apperrors.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
			"error":   KindOrderNotFound,
		})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Insufficient product in stock",
			"error":   KindInsufficientStock,
		})
	case errors.Is(err, apperrors.ErrPriceMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Total price does not match",
			"error":   KindPriceMismatch,
		})
	default:
		log.Printf("Unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   KindInternal,
		})
	}
}
