// api/models/cafe_models.go
package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"

	"github.com/Annany2002/cafe-api/internal/core"
	"github.com/Annany2002/cafe-api/internal/domain"
)

// --- Cafe Request Structs ---

// AddCafeRequest is the add-cafe form submission. Browsers post it from the HTML form,
// API callers post the same keys urlencoded, multipart or as JSON.
type AddCafeRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	MapURL      string `form:"map_url" json:"map_url" binding:"required"`
	ImgURL      string `form:"img_url" json:"img_url" binding:"required"`
	Location    string `form:"location" json:"location" binding:"required"`
	Seats       string `form:"seats" json:"seats" binding:"required"`
	CoffeePrice string `form:"coffee_price" json:"coffee_price" binding:"required"`

	// Checkbox values; see core.ParseCheckbox
	HasToilet    string `form:"has_toilet" json:"has_toilet"`
	HasWifi      string `form:"has_wifi" json:"has_wifi"`
	HasSockets   string `form:"has_sockets" json:"has_sockets"`
	CanTakeCalls string `form:"can_take_calls" json:"can_take_calls"`

	CSRFToken string `form:"csrf_token" json:"-"`
}

// RequiredFields lists the form keys an add-cafe submission must carry.
var RequiredFields = []string{"name", "map_url", "img_url", "location", "seats", "coffee_price"}

var cafeConverters = []copier.TypeConverter{
	{
		SrcType: copier.String,
		DstType: copier.Bool,
		Fn: func(src interface{}) (interface{}, error) {
			s, _ := src.(string)
			return core.ParseCheckbox(s), nil
		},
	},
	{
		SrcType: copier.String,
		DstType: (*string)(nil),
		Fn: func(src interface{}) (interface{}, error) {
			s, _ := src.(string)
			return &s, nil
		},
	},
}

// ToCafe maps the submission onto a new, unsaved cafe.
// Every checkbox is read from its own key.
func (r AddCafeRequest) ToCafe() (*domain.Cafe, error) {
	var cafe domain.Cafe
	if err := copier.CopyWithOption(&cafe, &r, copier.Option{Converters: cafeConverters}); err != nil {
		return nil, err
	}
	return &cafe, nil
}

// Form returns the fields checked by the browser form rules.
func (r AddCafeRequest) Form() core.CafeForm {
	return core.CafeForm{
		Name:        r.Name,
		MapURL:      r.MapURL,
		ImgURL:      r.ImgURL,
		Location:    r.Location,
		Seats:       r.Seats,
		CoffeePrice: r.CoffeePrice,
	}
}

// MissingFields converts binding validation errors into the offending form keys.
// It returns nil when err is not a validation error.
func MissingFields(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	reqType := reflect.TypeOf(AddCafeRequest{})
	keys := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		key := fe.Field()
		if field, ok := reqType.FieldByName(fe.StructField()); ok {
			if tag := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]; tag != "" {
				key = tag
			}
		}
		keys = append(keys, key)
	}
	return keys
}

// --- Response Structs ---

// Envelope keys used by the JSON responses.
const (
	EnvelopeError    = "error"
	EnvelopeResponse = "response"
)

// Envelope builds a {outer: {key: message}} body, e.g. {"error": {"Not Found": "..."}}.
func Envelope(outer, key, message string) map[string]map[string]string {
	return map[string]map[string]string{outer: {key: message}}
}

// CafeListResponse wraps a list of cafes.
type CafeListResponse struct {
	Cafes []domain.Cafe `json:"cafes"`
}

// CafePageResponse is the JSON form of the paginated home listing.
type CafePageResponse struct {
	Cafes []domain.Cafe `json:"cafes"`
	core.Pagination
}
