// api/handlers/add_cafe_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Annany2002/cafe-api/api/models"
	"github.com/Annany2002/cafe-api/api/web"
	"github.com/Annany2002/cafe-api/internal/auth"
	"github.com/Annany2002/cafe-api/internal/core"
	"github.com/Annany2002/cafe-api/internal/storage"
)

const (
	msgCafeAdded        = "Café successfully added!"
	msgCafeAddedAPI     = "Successfully added the new cafe."
	msgDuplicateName    = "A café with that name already exists."
	msgFormExpired      = "The form has expired or is invalid. Please try again."
	msgFormUnreadable   = "The submitted form could not be read."
	msgFormInvalid      = "Please correct the highlighted fields."
	msgMissingFieldsAPI = "Missing required field(s): %s."
)

// addCafePage is the data of the add_cafe.html template.
type addCafePage struct {
	Title     string
	Location  string
	Form      models.AddCafeRequest
	Errors    map[string]string
	Success   string
	Error     string
	CSRFToken string
}

// renderAddForm renders the add form with a fresh CSRF token.
// Flash messages live in the rendered page only, so the form is never answered with a redirect.
func (h *CafeHandler) renderAddForm(c *gin.Context, status int, page addCafePage) {
	token, err := auth.GenerateCSRFToken(h.Cfg.SessionSecret, h.Cfg.CSRFExpiration)
	if err != nil {
		fail(c, models.EnvelopeError, err, "")
		return
	}
	page.Title = "Add a café"
	page.CSRFToken = token
	page.Form.CSRFToken = ""
	c.HTML(status, web.AddCafePage, page)
}

// AddCafeForm serves the empty add form to browsers and the list of required keys to API callers.
func (h *CafeHandler) AddCafeForm(c *gin.Context) {
	if isBrowserCall(c) {
		h.renderAddForm(c, http.StatusOK, addCafePage{})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"required": models.RequiredFields,
		"optional": []string{"has_toilet", "has_wifi", "has_sockets", "can_take_calls"},
	})
}

// AddCafe creates a cafe from a form submission.
//
// Browser submissions must carry a valid CSRF token and pass the form rules
// (URL-shaped map_url/img_url); failures re-render the form with inline errors.
// API submissions only need the required keys to be present.
func (h *CafeHandler) AddCafe(c *gin.Context) {
	var req models.AddCafeRequest
	// Binding validation errors still leave req populated
	bindErr := c.ShouldBind(&req)
	browser := isBrowserCall(c)

	if browser {
		var validationErrs validator.ValidationErrors
		if bindErr != nil && !errors.As(bindErr, &validationErrs) {
			_ = c.Error(fmt.Errorf("%w: %v", core.ErrBadRequest, bindErr))
			h.renderAddForm(c, http.StatusBadRequest, addCafePage{Form: req, Error: msgFormUnreadable})
			return
		}
		if err := auth.ValidateCSRFToken(req.CSRFToken, h.Cfg.SessionSecret); err != nil {
			_ = c.Error(err)
			h.renderAddForm(c, http.StatusBadRequest, addCafePage{Form: req, Error: msgFormExpired})
			return
		}
		if fieldErrs := core.ValidateCafeForm(req.Form()); fieldErrs != nil {
			_ = c.Error(fmt.Errorf("%w: invalid add-cafe form: %v", core.ErrBadRequest, fieldErrs))
			h.renderAddForm(c, http.StatusBadRequest, addCafePage{Form: req, Errors: fieldErrs, Error: msgFormInvalid})
			return
		}
	} else if bindErr != nil {
		message := msgFormUnreadable
		if missing := models.MissingFields(bindErr); len(missing) > 0 {
			message = fmt.Sprintf(msgMissingFieldsAPI, strings.Join(missing, ", "))
		}
		fail(c, models.EnvelopeError, fmt.Errorf("%w: %v", core.ErrBadRequest, bindErr), message)
		return
	}

	cafe, err := req.ToCafe()
	if err != nil {
		h.addFailed(c, browser, req, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := storage.CafeNameExists(ctx, h.DB, cafe.Name)
	if err != nil {
		h.addFailed(c, browser, req, err)
		return
	}
	if exists {
		h.addFailed(c, browser, req, fmt.Errorf("%w: %q", storage.ErrCafeExists, cafe.Name))
		return
	}

	// The UNIQUE constraint still catches a concurrent insert of the same name
	id, err := storage.InsertCafe(ctx, h.DB, cafe)
	if err != nil {
		h.addFailed(c, browser, req, err)
		return
	}

	customLog.Printf("Handler: Added cafe %d (%q)", id, cafe.Name)
	if browser {
		h.renderAddForm(c, http.StatusOK, addCafePage{Success: msgCafeAdded})
		return
	}
	c.JSON(http.StatusOK, models.Envelope(models.EnvelopeResponse, "success", msgCafeAddedAPI))
}

// addFailed answers a rejected or failed insert in the caller's format.
func (h *CafeHandler) addFailed(c *gin.Context, browser bool, req models.AddCafeRequest, err error) {
	message := ""
	if errors.Is(err, storage.ErrCafeExists) {
		message = msgDuplicateName
	}
	if !browser {
		fail(c, models.EnvelopeError, err, message)
		return
	}

	_ = c.Error(err)
	status := http.StatusInternalServerError
	if message != "" {
		status = http.StatusConflict
	} else {
		message = "Sorry, the café could not be saved. Please try again."
	}
	h.renderAddForm(c, status, addCafePage{Form: req, Error: message})
}
