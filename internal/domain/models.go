// internal/domain/models.go
package domain

import "strings"

// Cafe is the sole persisted entity: a place to work from, with amenity flags and a coffee price.
// JSON keys match the column names of the cafe table.
type Cafe struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	MapURL       string  `json:"map_url"`
	ImgURL       string  `json:"img_url"`
	Location     string  `json:"location"`
	Seats        string  `json:"seats"`
	HasToilet    bool    `json:"has_toilet"`
	HasWifi      bool    `json:"has_wifi"`
	HasSockets   bool    `json:"has_sockets"`
	CanTakeCalls bool    `json:"can_take_calls"`
	CoffeePrice  *string `json:"coffee_price"`
}

// CafeColumns is the statically declared column list of the cafe table, in scan order.
// Fields() returns the destinations in the same order.
var CafeColumns = []string{
	"id",
	"name",
	"map_url",
	"img_url",
	"location",
	"seats",
	"has_toilet",
	"has_wifi",
	"has_sockets",
	"can_take_calls",
	"coffee_price",
}

// SelectColumns returns CafeColumns joined for use in a SELECT clause.
func SelectColumns() string {
	return strings.Join(CafeColumns, ", ")
}

// Fields returns pointers to the struct fields matching CafeColumns.
func (c *Cafe) Fields() []any {
	return []any{
		&c.ID,
		&c.Name,
		&c.MapURL,
		&c.ImgURL,
		&c.Location,
		&c.Seats,
		&c.HasToilet,
		&c.HasWifi,
		&c.HasSockets,
		&c.CanTakeCalls,
		&c.CoffeePrice,
	}
}

// Price returns the coffee price or an empty string when unset.
func (c Cafe) Price() string {
	if c.CoffeePrice == nil {
		return ""
	}
	return *c.CoffeePrice
}
