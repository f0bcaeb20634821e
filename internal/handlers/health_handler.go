package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
)

type HealthHandler struct {
	provider string
}

func NewHealthHandler(provider string) *HealthHandler {
	return &HealthHandler{provider: provider}
}

func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.SendString("Resume Screener API is running")
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:   "healthy",
		Provider: h.provider,
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
}
