package handlers

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/dto"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationDetails converts validator errors into per-field detail so the
// caller can correct its input.
func validationDetails(err error) []dto.FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.FieldError{{Field: "body", Message: "invalid request body"}}
	}

	details := make([]dto.FieldError, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		var msg string
		switch e.Tag() {
		case "required":
			msg = field + " is required"
		case "email":
			msg = field + " must be a valid email address"
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		default:
			msg = field + " is invalid"
		}
		details = append(details, dto.FieldError{Field: field, Message: msg})
	}
	return details
}
