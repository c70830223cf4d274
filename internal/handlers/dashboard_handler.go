package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type dashboardService interface {
	BuildDashboard(ctx context.Context, userID int64, now time.Time) (*models.Dashboard, error)
}

type DashboardHandler struct {
	service dashboardService
}

func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dashboard, err := h.service.BuildDashboard(c.Context(), userID, time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(dashboard)
}
