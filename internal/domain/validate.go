package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

type selfValidating interface {
	Validate(verr *ValidationError)
}

// Check runs struct tag rules and, when v implements it, the record's own
// Validate method. It returns a *ValidationError or nil.
func Check(v any) error {
	verr := &ValidationError{}
	if err := structValidator().Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %T: %w", v, err)
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), describe(fe))
		}
	}
	if sv, ok := v.(selfValidating); ok {
		sv.Validate(verr)
	}
	return verr.OrNil()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex color"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gtefield":
		return "must be >= " + fe.Param()
	}
	return "failed " + fe.Tag()
}
