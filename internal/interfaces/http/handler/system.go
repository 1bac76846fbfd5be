package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shipkaro/backend/internal/infrastructure/persistence"
	"github.com/shipkaro/backend/internal/interfaces/http/dto"
)

// SystemHandler exposes health and metadata endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
	started time.Time
}

func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/ping", h.Ping)
		system.GET("/info", h.Info)
		system.GET("/health", h.Health)
	}
}

// Ping is a liveness probe
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}

// Info returns application metadata
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, gin.H{
		"name":        h.appName,
		"environment": h.env,
		"uptime":      time.Since(h.started).Round(time.Second).String(),
	})
}

// Health is a readiness probe that verifies the database connection
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "database unavailable", getRequestID(c)))
			return
		}
	}
	h.Success(c, gin.H{"status": "healthy"})
}
