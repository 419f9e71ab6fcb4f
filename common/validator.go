package common

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a request struct against its `validate` tags and returns
// the typed validation errors so callers can report them to the user.
func Validate(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return err.(validator.ValidationErrors)
	}
	return nil
}
