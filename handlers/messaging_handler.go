package handlers

import (
	"errors"

	"github.com/amelbk/stagelink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type MessagingHandler struct {
	svc *services.MessagingService
}

func NewMessagingHandler(svc *services.MessagingService) *MessagingHandler {
	return &MessagingHandler{svc: svc}
}

func (h *MessagingHandler) GetInbox(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	summaries, err := h.svc.ListInbox(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load inbox"})
	}

	return c.JSON(summaries)
}

// GetThread returns the transcript with the given user and, as a side effect,
// marks the inbound unread messages as read.
func (h *MessagingHandler) GetThread(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	identity, messages, err := h.svc.GetThread(userID, otherID)
	if err != nil {
		return messagingError(c, err)
	}

	return c.JSON(fiber.Map{
		"other_user": identity,
		"messages":   messages,
	})
}

func (h *MessagingHandler) SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	recipientID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	type Request struct {
		Body string `json:"body"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	message, err := h.svc.SendMessage(userID, recipientID, req.Body)
	if err != nil {
		return messagingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func messagingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidParticipants),
		errors.Is(err, services.ErrEmptyBody),
		errors.Is(err, services.ErrBodyTooLong):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownUser):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}
