package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "stationery/internal/errors"
)

// asValidationError converts validator output into the structured
// validation error the API reports. Non-validator errors pass through.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &apperrors.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Please enter a valid email address."
	case "oneof":
		return "Category must be one of Writing, Office Supplies, Art Supplies, Educational, or Technology."
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be negative.", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID.", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
