package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type profileReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type tutorialLister interface {
	ListByCreator(ctx context.Context, creatorID int64) ([]models.Tutorial, error)
}

type ProfileHandler struct {
	userRepo     profileReader
	tutorialRepo tutorialLister
}

func NewProfileHandler(userRepo profileReader, tutorialRepo tutorialLister) *ProfileHandler {
	return &ProfileHandler{
		userRepo:     userRepo,
		tutorialRepo: tutorialRepo,
	}
}

// GetPublicProfile returns another user's public profile with the tutorials
// they have published.
func (h *ProfileHandler) GetPublicProfile(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profileID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.userRepo.GetByID(c.Context(), profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load profile"})
	}

	tutorials, err := h.tutorialRepo.ListByCreator(c.Context(), profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load tutorials"})
	}

	return c.JSON(fiber.Map{
		"profile":        user.Public(),
		"tutorials":      tutorials,
		"is_own_profile": viewerID == profileID,
	})
}
