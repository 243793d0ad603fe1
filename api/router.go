// api/router.go
package api

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/cafe-api/api/handlers"
	"github.com/Annany2002/cafe-api/api/middleware"
	"github.com/Annany2002/cafe-api/api/web"
	"github.com/Annany2002/cafe-api/config"
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(db *sql.DB, cfg *config.Config) (*gin.Engine, error) {
	router := gin.Default() // Includes Logger and Recovery

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	router.Use(middleware.CORS(cfg))
	// Runs after Logger/Recovery but wraps every handler
	router.Use(middleware.ErrorHandler())

	cafeHandler, err := handlers.NewCafeHandler(db, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cafe handler: %w", err)
	}

	// Only requests that write to the table are rate limited
	limiter := middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow))

	router.GET("/ping", cafeHandler.Ping)

	// --- Reads ---
	router.GET("/", cafeHandler.Home)
	router.GET("/all", cafeHandler.GetAll)
	router.GET("/random", cafeHandler.GetRandom)
	router.GET("/search", cafeHandler.Search)

	// --- Writes ---
	router.GET("/add", cafeHandler.AddCafeForm)
	router.POST("/add", limiter, cafeHandler.AddCafe)
	router.PATCH("/update-price/:id", limiter, cafeHandler.UpdatePrice)
	router.DELETE("/remove-cafe/:id", limiter, middleware.APIKeyMiddleware(cafeHandler.Keys), cafeHandler.RemoveCafe)

	return router, nil
}
