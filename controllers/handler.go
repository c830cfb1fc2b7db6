// Package controllers exposes the domain operations over HTTP with gin.
package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Deinys/SmartHome-Backend/ratelimit"
	"github.com/Deinys/SmartHome-Backend/revocation"
	"github.com/Deinys/SmartHome-Backend/services"
	"github.com/Deinys/SmartHome-Backend/stream"
	"github.com/Deinys/SmartHome-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const defaultAuthLimit = 10

type Options struct {
	Service   *services.Service
	DB        *gorm.DB
	Tokens    *utils.Tokens
	Revoked   revocation.Store
	Hub       *stream.Hub
	Limiter   ratelimit.Limiter
	AuthLimit int
	SeedCount int
	Origins   []string
	Logger    *slog.Logger
}

type Handler struct {
	svc       *services.Service
	db        *gorm.DB
	tokens    *utils.Tokens
	revoked   revocation.Store
	hub       *stream.Hub
	limiter   ratelimit.Limiter
	authLimit int
	seedCount int
	origins   []string
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		svc:       opts.Service,
		db:        opts.DB,
		tokens:    opts.Tokens,
		revoked:   opts.Revoked,
		hub:       opts.Hub,
		limiter:   opts.Limiter,
		authLimit: opts.AuthLimit,
		seedCount: opts.SeedCount,
		origins:   opts.Origins,
		logger:    opts.Logger,
	}
	if h.revoked == nil {
		h.revoked = revocation.NewMemory()
	}
	if h.hub == nil {
		h.hub = stream.NewHub()
	}
	if h.limiter == nil {
		h.limiter = ratelimit.NewInMemory(time.Minute)
	}
	if h.authLimit <= 0 {
		h.authLimit = defaultAuthLimit
	}
	if h.seedCount <= 0 {
		h.seedCount = services.DefaultSeedCount
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the status mapped from err's kind. Storage failures are
// logged and hidden from the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
