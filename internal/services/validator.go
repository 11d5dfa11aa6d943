package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phoneRegex limits phone numbers to digits, spaces, hyphens, plus signs and parentheses
var phoneRegex = regexp.MustCompile(`^[\d\s\-+()]+$`)

// validationMessages maps "<json field>.<rule>" to the message shown to the user
var validationMessages = map[string]string{
	"name.required": "Name is required",
	"name.min":      "Name must be at least 2 characters long",
	"name.max":      "Name cannot exceed 50 characters",

	"email.required": "Email is required",
	"email.email":    "Please provide a valid email address",

	"phone.required": "Phone number is required",
	"phone.phone":    "Please provide a valid phone number",
	"phone.min":      "Phone number must be at least 10 digits",
	"phone.max":      "Phone number cannot exceed 20 characters",

	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters long",
	"password.max":      "Password cannot exceed 100 characters",
}

// SchemaValidator checks request structs against their `validate` tags
type SchemaValidator struct {
	validate *validator.Validate
}

// NewSchemaValidator creates a validator with the custom rules registered
func NewSchemaValidator() *SchemaValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages can be looked up per form field
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	return &SchemaValidator{validate: v}
}

// Validate checks every field of schema and returns one message per rejected field,
// in field declaration order. A nil result means the input is accepted.
func (v *SchemaValidator) Validate(schema any) []string {
	err := v.validate.Struct(schema)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{"Invalid request"}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, messageFor(fe))
	}

	return messages
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
