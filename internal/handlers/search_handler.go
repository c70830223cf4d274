package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

const searchResultLimit = 25

type userSearcher interface {
	SearchByNameOrSkill(ctx context.Context, term string, limit int) ([]models.PublicProfile, error)
}

type tutorialSearcher interface {
	SearchByTitleOrDescription(ctx context.Context, term string, limit int) ([]models.Tutorial, error)
}

type SearchHandler struct {
	userRepo     userSearcher
	tutorialRepo tutorialSearcher
}

func NewSearchHandler(userRepo userSearcher, tutorialRepo tutorialSearcher) *SearchHandler {
	return &SearchHandler{
		userRepo:     userRepo,
		tutorialRepo: tutorialRepo,
	}
}

// Search runs a case-insensitive substring search over user names/skills and
// tutorial titles/descriptions. An empty term returns empty result sets.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	term := strings.ToLower(strings.TrimSpace(c.Query("query")))

	users := make([]models.PublicProfile, 0)
	tutorials := make([]models.Tutorial, 0)

	if term != "" {
		var err error
		users, err = h.userRepo.SearchByNameOrSkill(c.Context(), term, searchResultLimit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to search users"})
		}

		tutorials, err = h.tutorialRepo.SearchByTitleOrDescription(c.Context(), term, searchResultLimit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to search tutorials"})
		}
	}

	return c.JSON(fiber.Map{
		"users":     users,
		"tutorials": tutorials,
		"query":     term,
	})
}
