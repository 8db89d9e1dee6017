package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinNameLength  = 2
	MinPhoneDigits = 8
)

var fieldMessages = map[string]string{
	"name":         fmt.Sprintf("Name must be at least %d characters", MinNameLength),
	"phone":        fmt.Sprintf("Phone number must contain at least %d digits", MinPhoneDigits),
	"email":        "Email address is invalid",
	"message":      "Message is too long",
	"service":      "Service is required",
	"serviceSlug":  "Service is required",
	"quantity":     "Quantity must be between 1 and 32",
	"materialType": "Material must be standard or premium",
	"priceMin":     "Price range is invalid",
	"priceMax":     "Price range is invalid",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return CountDigits(fl.Field().String()) >= MinPhoneDigits
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}
	return v
}

// ValidateContact trims the request in place and checks its fields.
func ValidateContact(req *ContactRequest) error {
	req.normalize()
	return validateStruct(req)
}

func ValidateCallback(req *CallbackRequest) error {
	req.normalize()
	return validateStruct(req)
}

func ValidateEstimate(req *EstimateRequest) error {
	req.normalize()
	return validateStruct(req)
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		out.Fields[fe.Field()] = msg
	}
	return out
}

func digitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

func CountDigits(phone string) int {
	return len(digitsOnly(phone))
}

// NormalizePhoneNumber strips formatting and keeps an international prefix.
func NormalizePhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	cleaned := digitsOnly(phone)
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(phone, "+") {
		return "+" + cleaned
	}
	// 00 is the international call prefix in most of Europe
	if strings.HasPrefix(cleaned, "00") && len(cleaned) > 2 {
		return "+" + cleaned[2:]
	}
	return cleaned
}
