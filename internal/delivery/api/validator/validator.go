// Package validator adapts go-playground/validator to echo and adds the
// storefront's Indian address rules.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	domainerrors "lumera/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)

	// local@domain.tld with no whitespace, as the checkout form accepts it.
	simpleEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a validator reporting fields by their json names.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	mustRegister(validate, "notblank", validators.NotBlank)
	mustRegister(validate, "in_mobile", matches(mobilePattern))
	mustRegister(validate, "in_pincode", matches(pincodePattern))
	mustRegister(validate, "simple_email", matches(simpleEmailPattern))

	return &Validator{validate: validate}
}

func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(strings.TrimSpace(fl.Field().String()))
	}
}

// Validate returns a *domainerrors.ValidationError mapping each failed field to its rule.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldPath(fieldErr)] = rule(fieldErr)
	}

	return domainerrors.NewValidationError(fields)
}

// fieldPath drops the root struct name: "PaymentOrderRequest.address.pincode" -> "address.pincode".
func fieldPath(fieldErr validator.FieldError) string {
	_, path, found := strings.Cut(fieldErr.Namespace(), ".")
	if !found {
		return fieldErr.Field()
	}

	return path
}

func rule(fieldErr validator.FieldError) string {
	if fieldErr.Param() == "" {
		return fieldErr.Tag()
	}

	return fieldErr.Tag() + " " + fieldErr.Param()
}
