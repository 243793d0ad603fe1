// internal/core/validation_test.go
package core

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCheckbox(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"browser checkbox", "y", true},
		{"api true", "1", true},
		{"absent", "", false},
		{"api false", "0", false},
		{"literal true", "true", false},
		{"uppercase Y", "Y", false},
		{"on", "on", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCheckbox(tc.input)
			if got != tc.want {
				t.Errorf("ParseCheckbox(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}

func validForm() CafeForm {
	return CafeForm{
		Name:        "Science Gallery London",
		MapURL:      "https://g.page/scigallerylon",
		ImgURL:      "https://atlondonbridge.com/wp-content/uploads/2019/02/Pano_9758_9761-Edit-190918_LTS_Science_Gallery-Medium-Crop-V2.jpg",
		Location:    "London Bridge",
		Seats:       "50+",
		CoffeePrice: "£2.40",
	}
}

func TestValidateCafeForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, ValidateCafeForm(validForm()))
	})

	t.Run("missing fields", func(t *testing.T) {
		form := validForm()
		form.Name = "   "
		form.Seats = ""
		errs := ValidateCafeForm(form)
		assert.Equal(t, "This field is required.", errs["name"])
		assert.Equal(t, "This field is required.", errs["seats"])
		assert.Len(t, errs, 2)
	})

	t.Run("bad urls", func(t *testing.T) {
		form := validForm()
		form.MapURL = "not a url"
		form.ImgURL = "www.example.com/no-scheme.png"
		errs := ValidateCafeForm(form)
		assert.Equal(t, "Invalid URL.", errs["map_url"])
		assert.Equal(t, "Invalid URL.", errs["img_url"])
	})
}

func TestParsePage(t *testing.T) {
	testCases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{" 2 ", 2},
	}
	for _, tc := range testCases {
		q := url.Values{}
		if tc.raw != "" {
			q.Set("page", tc.raw)
		}
		assert.Equal(t, tc.want, ParsePage(q), "page=%q", tc.raw)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 10, p.Offset())
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PrevNum())
	assert.Equal(t, 3, p.NextNum())
	assert.False(t, p.OutOfRange())

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext())

	assert.True(t, NewPagination(4, 10, 25).OutOfRange())

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.Pages)
	assert.False(t, empty.OutOfRange())
	assert.False(t, empty.HasNext())
	assert.True(t, NewPagination(2, 10, 0).OutOfRange())
}
