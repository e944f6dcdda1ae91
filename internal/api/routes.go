package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/internal/websocket"
)

// InitRoutes initializes the page, API and streaming routes
func InitRoutes(e *echo.Echo, h *Handler, ws *websocket.Handler, logger *zap.Logger) error {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		logger.Error("Failed to parse page templates", zap.Error(err))
		return err
	}
	e.Renderer = renderer

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "bhasha-server",
		})
	})

	// Translator page
	e.GET("/", h.index)
	e.POST("/translate", h.translateForm)
	e.GET("/audio/:id", h.audio)

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.POST("/translate", h.translate)
	v1.POST("/transcribe", h.transcribe)
	v1.GET("/languages", h.languages)

	// Streaming transcription for the record button
	e.GET("/ws/transcribe", ws.HandleTranscribe)

	return nil
}
