package rest

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/slidelab/pathclient/internal/domain"
)

// requestValidator checks the validate tags on create/update request
// structs before anything is sent to the backend.
var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct validation and converts failures into a
// domain ValidationError, one field error per violated tag.
func ValidateRequest(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return domain.NewValidationError("request", "not a validatable struct")
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		errs := make([]domain.FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, domain.FieldError{
				Field:   fe.Field(),
				Message: "failed " + fe.Tag(),
			})
		}
		return domain.NewValidationErrors(errs)
	}
	return err
}
