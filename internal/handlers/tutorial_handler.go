package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

const defaultThumbnail = "/images/rabit.jpg"

type tutorialStore interface {
	Create(ctx context.Context, tutorial *models.Tutorial) error
	GetByID(ctx context.Context, id int64) (*models.Tutorial, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]models.Tutorial, error)
	LogWatch(ctx context.Context, watcherID, tutorialID int64) error
}

type TutorialHandler struct {
	tutorialRepo tutorialStore
}

type createTutorialRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type"`
	VideoURL    string `json:"video_url"`
	Notes       string `json:"notes"`
	Thumbnail   string `json:"thumbnail"`
}

func NewTutorialHandler(tutorialRepo tutorialStore) *TutorialHandler {
	return &TutorialHandler{tutorialRepo: tutorialRepo}
}

func (h *TutorialHandler) CreateTutorial(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createTutorialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.ContentType != models.TutorialVideo && req.ContentType != models.TutorialNotes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid content type"})
	}

	tutorial := &models.Tutorial{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		Thumbnail:   req.Thumbnail,
	}
	if tutorial.Thumbnail == "" {
		tutorial.Thumbnail = defaultThumbnail
	}
	if req.ContentType == models.TutorialVideo {
		tutorial.VideoURL = &req.VideoURL
	} else {
		tutorial.Notes = &req.Notes
	}

	if err := h.tutorialRepo.Create(c.Context(), tutorial); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create tutorial"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tutorial": tutorial})
}

func (h *TutorialHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	tutorials, err := h.tutorialRepo.ListByCreator(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list tutorials"})
	}

	return c.JSON(fiber.Map{"tutorials": tutorials})
}

// GetTutorial returns a tutorial and records the view. A failed watch log
// does not block the response.
func (h *TutorialHandler) GetTutorial(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	tutorialID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutorial id"})
	}

	tutorial, err := h.tutorialRepo.GetByID(c.Context(), tutorialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutorial not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load tutorial"})
	}

	if err := h.tutorialRepo.LogWatch(c.Context(), userID, tutorialID); err != nil {
		log.Printf("failed to log tutorial watch: %v", err)
	}

	return c.JSON(fiber.Map{"tutorial": tutorial})
}
