package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/service"
)

// RoadmapHandler serves roadmap content. Completion flags are filled in
// when the caller is signed in.
type RoadmapHandler struct {
	roadmap *service.RoadmapService
}

// NewRoadmapHandler creates a new roadmap handler.
func NewRoadmapHandler(roadmap *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmap: roadmap}
}

// Register sets up roadmap routes behind optionalAuth.
func (h *RoadmapHandler) Register(router fiber.Router, optionalAuth fiber.Handler) {
	roadmap := router.Group("/roadmap", optionalAuth)
	roadmap.Get("/", h.List)
	roadmap.Get("/mindmap", h.MindMap)
	roadmap.Get("/:id", h.Get)
}

// List returns nodes, optionally filtered by ?category= and ?difficulty=.
func (h *RoadmapHandler) List(c fiber.Ctx) error {
	filter := domain.NodeFilter{
		Category:   domain.NodeCategory(c.Query("category")),
		Difficulty: domain.Difficulty(c.Query("difficulty")),
	}
	nodes := h.roadmap.Nodes(c.Context(), clientID(c), filter)
	return success(c, fiber.StatusOK, fiber.Map{
		"nodes": nodes,
		"count": len(nodes),
	})
}

func (h *RoadmapHandler) Get(c fiber.Ctx) error {
	node, err := h.roadmap.Node(c.Context(), clientID(c), c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}
	return success(c, fiber.StatusOK, node)
}

func (h *RoadmapHandler) MindMap(c fiber.Ctx) error {
	return success(c, fiber.StatusOK, h.roadmap.MindMap(c.Context(), clientID(c)))
}

// clientID namespaces progress by the signed-in identity, or "" when
// anonymous.
func clientID(c fiber.Ctx) string {
	if u := middleware.GetUser(c); u != nil {
		return u.ID
	}
	return ""
}
