package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type stubDashboardService struct {
	dashboard  *models.Dashboard
	err        error
	lastUserID int64
}

func (s *stubDashboardService) BuildDashboard(_ context.Context, userID int64, _ time.Time) (*models.Dashboard, error) {
	s.lastUserID = userID
	return s.dashboard, s.err
}

func TestGetDashboardReturnsSignals(t *testing.T) {
	service := &stubDashboardService{
		dashboard: &models.Dashboard{
			Signals: models.ActivitySignals{
				MatchCount:           4,
				PendingRequestCount:  1,
				UnreadMessageCount:   3,
				NewMatchesLast7d:     2,
				UnreadMessagesLast3d: 1,
				Highlight:            "You have 2 new matches",
			},
		},
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", models.RoleMentor)
		return c.Next()
	})
	app.Get("/api/v1/dashboard", NewDashboardHandler(service).GetDashboard)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 {
		t.Fatalf("expected user 42, got %d", service.lastUserID)
	}

	var body models.Dashboard
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Signals.Highlight != "You have 2 new matches" {
		t.Fatalf("unexpected highlight: %q", body.Signals.Highlight)
	}
	if body.Signals.MatchCount != 4 {
		t.Fatalf("unexpected match count: %d", body.Signals.MatchCount)
	}
}

func TestGetDashboardRequiresAuthContext(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/dashboard", NewDashboardHandler(&stubDashboardService{}).GetDashboard)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
