package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mikeboe/research-agent/pkg/research"
)

type Handler struct {
	Service *Service
	Logs    *MemoryLogHandler
}

func NewHandler(s *Service, logs *MemoryLogHandler) *Handler {
	return &Handler{Service: s, Logs: logs}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID())

	api := r.Group("/api")
	{
		api.POST("/research", h.startResearch)
		api.GET("/history", h.getHistory)
		api.GET("/status", h.getStatus)
		api.GET("/logs", h.getLogs)
	}
}

// RequestID attaches a generated ID to each request so log lines from
// concurrent research runs can be told apart.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (h *Handler) startResearch(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.Service.RunResearch(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, research.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.History())
}

func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Status())
}

func (h *Handler) getLogs(c *gin.Context) {
	entries := h.Logs.Recent(100)
	if entries == nil {
		entries = []LogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
