package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"auction-marketplace-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation over a request DTO and converts
// failures into the ValidationError kind so the error middleware can map them.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return apperror.NewValidation(strings.Join(messages, "; "))
	}
	return apperror.NewValidation(err.Error())
}
