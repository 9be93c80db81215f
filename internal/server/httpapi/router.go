package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterOptions configures the parts of the router that depend on the
// composition.
type RouterOptions struct {
	Secret []byte
	// FilesRoot, when set, is served under /files/ (local object backend).
	FilesRoot string
	// DB answers /healthz.
	DB Pinger
}

// NewRouter registers all routes on a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	r.MaxMultipartMemory = maxRequestBody

	r.GET("/healthz", healthz(opts.DB))

	if opts.FilesRoot != "" {
		r.Static("/files", opts.FilesRoot)
	}

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limitBody(maxRequestBody), h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/refresh", h.refresh)
	}

	protected := api.Group("")
	protected.Use(Authenticate(opts.Secret))
	{
		protected.GET("/profile", h.getProfile)
		protected.PUT("/profile", limitBody(maxRequestBody), h.updateProfile)

		protected.GET("/meals", h.listMeals)
		protected.POST("/meals", limitBody(maxRequestBody), h.createMeal)
		protected.GET("/meals/:id", h.getMeal)
		protected.PUT("/meals/:id", limitBody(maxRequestBody), h.updateMeal)
		protected.DELETE("/meals/:id", h.deleteMeal)
	}

	return r
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
