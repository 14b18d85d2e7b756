package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/service"
)

// ChatHandler handles learner chat with the assistant.
type ChatHandler struct {
	assistant *service.AssistantService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(assistant *service.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// Register sets up chat routes behind requireAuth.
func (h *ChatHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	chat := router.Group("/chat", requireAuth)
	chat.Post("/", h.Chat)
	chat.Get("/probe", h.Probe)
}

// Chat answers a message, optionally about a roadmap node. The reply is
// always present: backend failures produce canned guidance.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
		NodeID  string `json:"nodeId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request")
	}
	if strings.TrimSpace(body.Message) == "" {
		return failure(c, fiber.StatusBadRequest, "message is required")
	}

	question := domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.ChatRoleUser,
		Content:   body.Message,
		Timestamp: time.Now(),
		NodeID:    body.NodeID,
	}
	reply := h.assistant.Chat(c.Context(), body.Message, body.NodeID)

	return success(c, fiber.StatusOK, fiber.Map{
		"question": question,
		"reply":    reply,
	})
}

// Probe checks that the assistant backend answers.
func (h *ChatHandler) Probe(c fiber.Ctx) error {
	return success(c, fiber.StatusOK, h.assistant.Probe(c.Context()))
}
