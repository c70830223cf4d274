package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Smilemka07/QuickLeap/internal/models"
	"github.com/Smilemka07/QuickLeap/internal/services"
)

type matchRequestService interface {
	SendRequest(ctx context.Context, senderID, receiverID int64) (*models.MatchRequest, error)
	ListIncoming(ctx context.Context, receiverID int64) ([]models.IncomingRequest, error)
	Accept(ctx context.Context, receiverID, requestID int64) (*models.Match, error)
	Decline(ctx context.Context, receiverID, requestID int64) error
}

type RequestHandler struct {
	service matchRequestService
}

type sendRequestRequest struct {
	ReceiverID int64 `json:"receiver_id"`
}

func NewRequestHandler(service matchRequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) SendRequest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req sendRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	request, err := h.service.SendRequest(c.Context(), userID, req.ReceiverID)
	if err != nil {
		return mapRequestError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request})
}

func (h *RequestHandler) ListIncoming(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	requests, err := h.service.ListIncoming(c.Context(), userID)
	if err != nil {
		return mapRequestError(c, err)
	}

	return c.JSON(fiber.Map{"requests": requests})
}

func (h *RequestHandler) Accept(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	match, err := h.service.Accept(c.Context(), userID, requestID)
	if err != nil {
		return mapRequestError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"match": match})
}

func (h *RequestHandler) Decline(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	if err := h.service.Decline(c.Context(), userID, requestID); err != nil {
		return mapRequestError(c, err)
	}

	return c.JSON(fiber.Map{"status": "declined"})
}

func mapRequestError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrAlreadyMatched):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already matched"})
	case errors.Is(err, services.ErrDuplicateRequest):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Request already pending"})
	case errors.Is(err, services.ErrRequestClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Request already handled"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process match request"})
	}
}
