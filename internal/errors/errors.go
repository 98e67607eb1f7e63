// Package errors defines the failure kinds the API distinguishes so the
// HTTP layer can map them to status codes.
package errors

import (
	"errors"
	"strings"
)

var (
	// ErrProductNotFound is returned when a product identity does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order identity does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientStock is returned when an order requests more units
	// than the product has available.
	ErrInsufficientStock = errors.New("insufficient product in stock")
	// ErrPriceMismatch is returned when an order's total price does not
	// equal product price times quantity.
	ErrPriceMismatch = errors.New("total price does not match")
)

// FieldError describes a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the schema violations found in one payload.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
