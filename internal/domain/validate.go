package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages carried by the ValidationError values Validate returns.
const (
	MsgNameRequired      = "name required"
	MsgReadPageExceeds   = "readPage exceeds pageCount"
	MsgPageCountNegative = "pageCount must not be negative"
	MsgReadPageNegative  = "readPage must not be negative"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks p and returns the first violation as a *ValidationError.
// Violations are reported in field order, so a missing name always wins
// over page count problems.
func Validate(p Payload) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Message: messageFor(fe),
	}
}

func messageFor(fe validator.FieldError) string {
	switch {
	case fe.Field() == "name":
		return MsgNameRequired
	case fe.Tag() == "ltefield":
		return MsgReadPageExceeds
	case fe.Field() == "pageCount":
		return MsgPageCountNegative
	case fe.Field() == "readPage":
		return MsgReadPageNegative
	default:
		return fe.Field() + " is invalid"
	}
}
