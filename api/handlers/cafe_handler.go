// api/handlers/cafe_handler.go
package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Annany2002/cafe-api/api/middleware"
	"github.com/Annany2002/cafe-api/api/models"
	"github.com/Annany2002/cafe-api/api/web"
	"github.com/Annany2002/cafe-api/config"
	"github.com/Annany2002/cafe-api/internal/auth"
	"github.com/Annany2002/cafe-api/internal/core"
	"github.com/Annany2002/cafe-api/internal/domain"
	"github.com/Annany2002/cafe-api/internal/logger"
	"github.com/Annany2002/cafe-api/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// User-facing messages.
const (
	msgLocationNotFoundAPI  = "Sorry, we don't have a cafe at that location."
	msgLocationNotFoundHTML = "Sorry, we couldn't find a cafe at that location. Try to be more specific or search for different locations."
	msgCafeIDNotFound       = "Sorry, a cafe with that id was not found in the database."
	msgEmptyTable           = "Sorry, there are no cafes in the database yet."
	msgPageNotFound         = "Sorry, that page does not exist."
	msgMissingPrice         = "The new_price query parameter is required."
	msgDeleted              = "Successfully removed the cafe from the database."
)

// CafeHandler holds dependencies for the cafe handlers.
type CafeHandler struct {
	DB   *sql.DB        // Cafe DB connection pool
	Cfg  *config.Config // Application configuration
	Keys *auth.APIKeyVerifier
}

// NewCafeHandler creates a new CafeHandler. The admin api key is hashed once here.
func NewCafeHandler(db *sql.DB, cfg *config.Config) (*CafeHandler, error) {
	keys, err := auth.NewAPIKeyVerifier(cfg.APIKey, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &CafeHandler{
		DB:   db,
		Cfg:  cfg,
		Keys: keys,
	}, nil
}

// cafesPage is the data of the cafes.html template.
type cafesPage struct {
	Title      string
	Location   string
	NotFound   string
	Cafes      []domain.Cafe
	Pagination *core.Pagination
}

// fail attaches err to the context and writes the JSON envelope for it.
func fail(c *gin.Context, envelope string, err error, message string) {
	status, key := middleware.StatusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		message = "An unexpected internal server error occurred."
	}
	c.AbortWithStatusJSON(status, models.Envelope(envelope, key, message))
}

// Home lists cafes one page at a time.
func (h *CafeHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := storage.CountCafes(ctx, h.DB)
	if err != nil {
		fail(c, models.EnvelopeError, err, "")
		return
	}

	page := core.NewPagination(core.ParsePage(c.Request.URL.Query()), h.Cfg.PageSize, total)
	if page.OutOfRange() {
		err := fmt.Errorf("%w: page %d of %d", storage.ErrCafeNotFound, page.Page, page.Pages)
		if isBrowserCall(c) {
			_ = c.Error(err)
			c.HTML(http.StatusNotFound, web.CafesPage, cafesPage{Title: "All Cafés", NotFound: msgPageNotFound})
			return
		}
		fail(c, models.EnvelopeError, err, msgPageNotFound)
		return
	}

	cafes, err := storage.ListCafesPage(ctx, h.DB, page.PerPage, page.Offset())
	if err != nil {
		fail(c, models.EnvelopeError, err, "")
		return
	}

	customLog.Debugf("Handler: Listing page %d/%d (%d cafes)", page.Page, page.Pages, len(cafes))
	if isBrowserCall(c) {
		c.HTML(http.StatusOK, web.CafesPage, cafesPage{Title: "All Cafés", Cafes: cafes, Pagination: &page})
		return
	}
	c.JSON(http.StatusOK, models.CafePageResponse{Cafes: cafes, Pagination: page})
}

// GetAll returns every cafe without pagination.
func (h *CafeHandler) GetAll(c *gin.Context) {
	cafes, err := storage.ListCafes(c.Request.Context(), h.DB)
	if err != nil {
		fail(c, models.EnvelopeError, err, "")
		return
	}
	c.JSON(http.StatusOK, models.CafeListResponse{Cafes: cafes})
}

// GetRandom returns one cafe picked uniformly at random.
func (h *CafeHandler) GetRandom(c *gin.Context) {
	cafe, err := storage.RandomCafe(c.Request.Context(), h.DB)
	if err != nil {
		fail(c, models.EnvelopeError, err, msgEmptyTable)
		return
	}
	c.JSON(http.StatusOK, cafe)
}

// Search returns the cafes whose location equals the loc query parameter.
func (h *CafeHandler) Search(c *gin.Context) {
	location := c.Query("loc")

	cafes, err := storage.FindCafesByLocation(c.Request.Context(), h.DB, location)
	if err != nil {
		fail(c, models.EnvelopeError, err, "")
		return
	}

	browser := isBrowserCall(c)
	if len(cafes) == 0 {
		if browser {
			c.HTML(http.StatusOK, web.CafesPage, cafesPage{
				Title:    "Search",
				Location: location,
				NotFound: msgLocationNotFoundHTML,
			})
			return
		}
		fail(c, models.EnvelopeError, fmt.Errorf("%w: location %q", storage.ErrCafeNotFound, location), msgLocationNotFoundAPI)
		return
	}

	customLog.Debugf("Handler: Search for location %q matched %d cafes", location, len(cafes))
	if browser {
		c.HTML(http.StatusOK, web.CafesPage, cafesPage{Title: "Search", Location: location, Cafes: cafes})
		return
	}
	c.JSON(http.StatusOK, models.CafeListResponse{Cafes: cafes})
}

// UpdatePrice sets the coffee price of one cafe to the new_price query parameter, verbatim.
func (h *CafeHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseCafeID(c)
	if !ok {
		fail(c, models.EnvelopeResponse, fmt.Errorf("%w: id %q", storage.ErrCafeNotFound, c.Param("id")), msgCafeIDNotFound)
		return
	}

	newPrice, present := c.GetQuery("new_price")
	if !present {
		fail(c, models.EnvelopeResponse, fmt.Errorf("%w: new_price missing", core.ErrBadRequest), msgMissingPrice)
		return
	}

	if err := storage.UpdateCoffeePrice(c.Request.Context(), h.DB, id, newPrice); err != nil {
		fail(c, models.EnvelopeResponse, err, msgCafeIDNotFound)
		return
	}

	customLog.Printf("Handler: Updated coffee price of cafe %d to %q", id, newPrice)
	c.JSON(http.StatusOK, models.Envelope(models.EnvelopeResponse, "success",
		fmt.Sprintf("Successfully updated coffee price to %s.", newPrice)))
}

// RemoveCafe deletes one cafe. It must be routed behind middleware.APIKeyMiddleware.
func (h *CafeHandler) RemoveCafe(c *gin.Context) {
	id, ok := parseCafeID(c)
	if !ok {
		fail(c, models.EnvelopeResponse, fmt.Errorf("%w: id %q", storage.ErrCafeNotFound, c.Param("id")), msgCafeIDNotFound)
		return
	}

	if err := storage.DeleteCafe(c.Request.Context(), h.DB, id); err != nil {
		fail(c, models.EnvelopeResponse, err, msgCafeIDNotFound)
		return
	}

	customLog.Printf("Handler: Removed cafe %d", id)
	c.JSON(http.StatusOK, models.Envelope(models.EnvelopeResponse, "Success", msgDeleted))
}

// Ping reports whether the database is reachable.
func (h *CafeHandler) Ping(c *gin.Context) {
	if err := h.DB.PingContext(c.Request.Context()); err != nil {
		customLog.Warnf("DB Ping error during /ping request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "pong, but DB connection error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
