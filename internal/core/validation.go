// internal/core/validation.go
package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrBadRequest marks input the handlers reject before touching storage.
var ErrBadRequest = errors.New("bad request")

// Checkbox values accepted as true: "y" is what a browser checkbox posts,
// "1" is what API callers send.
const (
	checkboxBrowserTrue = "y"
	checkboxAPITrue     = "1"
)

// ParseCheckbox converts a submitted checkbox value to a boolean.
// Any value other than the two accepted encodings, including absence, is false.
func ParseCheckbox(value string) bool {
	return value == checkboxBrowserTrue || value == checkboxAPITrue
}

// CafeForm carries the browser add-cafe form rules.
type CafeForm struct {
	Name        string `form:"name" validate:"required"`
	MapURL      string `form:"map_url" validate:"required,url"`
	ImgURL      string `form:"img_url" validate:"required,url"`
	Location    string `form:"location" validate:"required"`
	Seats       string `form:"seats" validate:"required"`
	CoffeePrice string `form:"coffee_price" validate:"required"`
}

var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the submitted form key rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCafeForm checks the form and returns a message per failing field, keyed by form key.
// A nil map means the form is valid.
func ValidateCafeForm(form CafeForm) map[string]string {
	form.Name = strings.TrimSpace(form.Name)
	form.Location = strings.TrimSpace(form.Location)
	form.Seats = strings.TrimSpace(form.Seats)
	form.CoffeePrice = strings.TrimSpace(form.CoffeePrice)

	err := formValidate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"form": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			fieldErrors[fe.Field()] = "This field is required."
		case "url":
			fieldErrors[fe.Field()] = "Invalid URL."
		default:
			fieldErrors[fe.Field()] = fmt.Sprintf("Failed on %s.", fe.Tag())
		}
	}
	return fieldErrors
}
