package handler

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorItem is one entry in a validation error batch.
type ErrorItem struct {
	Error string `json:"error" example:"The Username is already in use"`
}

// ValidationErrorResponse carries all violations of a request body at once.
type ValidationErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// MessageResponse is the body for single-error and simple success responses.
type MessageResponse struct {
	Message string `json:"message" example:"Follow request sent"`
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	}
}

// fieldErrors expands a validator error into a batch, one item per violated
// field, so a form with several problems reports all of them in one round
// trip. State-machine errors stay single-message; only bodies batch.
func fieldErrors(err error) ([]ErrorItem, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	items := make([]ErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		items = append(items, ErrorItem{Error: fieldErrorMessage(fe)})
	}
	return items, true
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required field", fe.Field())
	case "email":
		return "Invalid data type in E-Mail. Expected string with a valid E-Mail format."
	case "alphaunicode":
		return fmt.Sprintf("Invalid data type in %s. Expected string without special characters or numbers.", fe.Field())
	case "username":
		return "Invalid data type in Username. Expected string without special characters."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "len", "numeric":
		return "Invalid phone number format. Expected a 10-digit number."
	default:
		return fmt.Sprintf("Invalid value in %s", fe.Field())
	}
}
