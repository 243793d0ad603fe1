package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{CafesPage, AddCafePage, "header", "footer"} {
		assert.NotNil(t, tmpl.Lookup(name), "template %q is defined", name)
	}
}

func TestAddCafePageRendersFieldErrors(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	data := map[string]any{
		"Title":     "Add a café",
		"Location":  "",
		"Success":   "",
		"Error":     "",
		"CSRFToken": "token-123",
		"Form":      map[string]string{"Name": "Blue Bottle", "MapURL": "maps", "ImgURL": "", "Location": "", "Seats": "", "CoffeePrice": ""},
		"Errors":    map[string]string{"map_url": "Invalid URL."},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, AddCafePage, data))
	out := buf.String()
	assert.Contains(t, out, `value="token-123"`)
	assert.Contains(t, out, `value="Blue Bottle"`)
	assert.Contains(t, out, "Invalid URL.")
}
