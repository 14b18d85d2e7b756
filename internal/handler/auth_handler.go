package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	audit       middleware.AuditWriter
}

// NewAuthHandler creates a new auth handler. audit may be nil.
func NewAuthHandler(authService *service.AuthService, audit middleware.AuditWriter) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit}
}

// Register sets up auth routes. requireAuth guards /me and /logout.
func (h *AuthHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/signup", h.Signup)
	auth.Get("/me", requireAuth, h.Me)
	auth.Post("/logout", requireAuth, h.Logout)
}

// Login exchanges an email and password for a credential.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request")
	}

	res, err := h.authService.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return failWith(c, err)
	}

	h.record(c, domain.AuditActionLogin, res.User.ID, nil)
	return success(c, fiber.StatusOK, res)
}

// Signup creates an identity and returns a credential for it.
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request")
	}

	res, err := h.authService.Signup(c.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		return failWith(c, err)
	}

	h.record(c, domain.AuditActionSignup, res.User.ID, nil)
	return success(c, fiber.StatusCreated, res)
}

// Me returns the identity named by the bearer credential. Web clients call
// it on load to rehydrate a stored credential.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	user := middleware.GetUser(c)
	h.record(c, domain.AuditActionRehydrate, user.ID, nil)
	return success(c, fiber.StatusOK, user)
}

// Logout is stateless on the server: the client discards its credential.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	user := middleware.GetUser(c)
	h.record(c, domain.AuditActionLogout, user.ID, nil)
	return success(c, fiber.StatusOK, nil)
}

func (h *AuthHandler) record(c fiber.Ctx, action, userID string, details map[string]any) {
	recordAudit(h.audit, c, action, userID, details)
}

func recordAudit(w middleware.AuditWriter, c fiber.Ctx, action, userID string, details map[string]any) {
	if w == nil {
		return
	}
	_ = w.WriteAudit(context.Background(), domain.AuditEvent{
		Action:    action,
		UserID:    userID,
		Resource:  strings.Clone(c.Path()),
		Details:   details,
		IP:        strings.Clone(c.IP()),
		UserAgent: strings.Clone(c.Get("User-Agent")),
		CreatedAt: time.Now(),
	})
}
