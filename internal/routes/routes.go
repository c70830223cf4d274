package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Smilemka07/QuickLeap/internal/config"
	"github.com/Smilemka07/QuickLeap/internal/handlers"
	"github.com/Smilemka07/QuickLeap/internal/middleware"
	"github.com/Smilemka07/QuickLeap/internal/repository"
	"github.com/Smilemka07/QuickLeap/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	tutorialRepo := repository.NewTutorialRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	chatService := services.NewChatService(db, matchRepo, messageRepo)
	chatHandler := handlers.NewChatHandler(chatService)
	dashboardService := services.NewDashboardService(matchRepo, messageRepo, requestRepo, tutorialRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	matchService := services.NewMatchService(db, requestRepo, matchRepo, userRepo)
	requestHandler := handlers.NewRequestHandler(matchService)
	tutorialHandler := handlers.NewTutorialHandler(tutorialRepo)
	searchHandler := handlers.NewSearchHandler(userRepo, tutorialRepo)
	profileHandler := handlers.NewProfileHandler(userRepo, tutorialRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	protected.Get("/dashboard", dashboardHandler.GetDashboard)

	protected.Get("/conversations", chatHandler.ListConversations)

	matches := protected.Group("/matches")
	matches.Get("/:id/messages", chatHandler.GetThread)
	matches.Post("/:id/messages", chatHandler.SendMessage)

	requests := protected.Group("/requests")
	requests.Post("", requestHandler.SendRequest)
	requests.Get("/incoming", requestHandler.ListIncoming)
	requests.Post("/:id/accept", requestHandler.Accept)
	requests.Post("/:id/decline", requestHandler.Decline)

	tutorials := protected.Group("/tutorials")
	tutorials.Post("", tutorialHandler.CreateTutorial)
	tutorials.Get("/mine", tutorialHandler.ListMine)
	tutorials.Get("/:id", tutorialHandler.GetTutorial)

	protected.Get("/search", searchHandler.Search)
	protected.Get("/users/:id", profileHandler.GetPublicProfile)
}
