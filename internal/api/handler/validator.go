package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

// RequestValidator plugs validator/v10 into echo. All field failures of a
// request are folded into one *domain.ValidationError keyed by json names.
type RequestValidator struct {
	v *validator.Validate
}

func NewValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &RequestValidator{v: v}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	problems := make([]string, len(fields))
	for n, fe := range fields {
		problems[n] = describe(fe)
	}
	return domain.NewValidationError("", strings.Join(problems, "; "))
}

// ruleMessages covers the tags used by the request schemas.
var ruleMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"oneof":    "%s must be one of [%s]",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be %s or more",
}

func describe(fe validator.FieldError) string {
	if fe.Tag() == "min" {
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s", fe.Field(), fe.Param())
	}
	format, ok := ruleMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
	if strings.Count(format, "%s") == 1 {
		return fmt.Sprintf(format, fe.Field())
	}
	return fmt.Sprintf(format, fe.Field(), fe.Param())
}
