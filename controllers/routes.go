package controllers

import (
	"net/http"
	"sort"

	"github.com/Deinys/SmartHome-Backend/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with every route of the API.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(h.logger))
	r.Use(cors.New(h.corsConfig()))

	r.GET("/", h.Sitemap(r))
	r.GET("/healthz", h.Health)

	// Public routes
	r.POST("/populate", h.Populate)
	r.POST("/validate", h.Validate)

	limited := r.Group("/")
	limited.Use(middlewares.RateLimit(h.limiter, "auth", h.authLimit))
	limited.POST("/signup", h.Signup)
	limited.POST("/login", h.Login)

	// Protected routes using auth middleware
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(h.tokens, h.revoked))
	auth.POST("/logout", h.Logout)
	auth.GET("/user", h.ListUsers)
	auth.GET("/user/:id", h.GetUser)
	auth.PUT("/user/:id", h.UpdateUser)
	auth.DELETE("/user/:id", h.DeleteUser)
	auth.GET("/entries", h.ListEntries)
	auth.GET("/entries/export", h.ExportEntries)
	auth.GET("/entries/:device_name", h.ListEntries)
	auth.POST("/create", h.CreateEntry)
	auth.GET("/ws", h.HandleWebSocket)

	return r
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.RequestIDHeader},
		AllowCredentials: true,
	}
	for _, origin := range h.origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = h.origins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	return cfg
}

// Sitemap lists every registered route.
func (h *Handler) Sitemap(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := make([]string, 0)
		for _, ri := range r.Routes() {
			routes = append(routes, ri.Method+" "+ri.Path)
		}
		sort.Strings(routes)
		c.JSON(http.StatusOK, gin.H{"routes": routes})
	}
}

func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
