package inspect

import (
	"errors"
	"net/url"

	"netbox-sync/core/logger"
	"netbox-sync/core/schema"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inspect feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inspect routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inspect")
	group.Get("/types", h.HandleTypes)
	group.Get("/objects/:type", h.HandleObjects)
	group.Get("/objects/:type/:name", h.HandleObject)
	group.Get("/plan", h.HandlePlan)
}

// HandleTypes lists the registered object types with their object counts.
func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.Types())
}

// HandleObjects returns all objects of a type.
func (h *Handler) HandleObjects(c *fiber.Ctx) error {
	t := schema.ObjectType(c.Params("type"))

	objects, err := h.service.Objects(t)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(objects)
}

// HandleObject returns a single object by display name, e.g. "web01 (dc1)".
func (h *Handler) HandleObject(c *fiber.Ctx) error {
	t := schema.ObjectType(c.Params("type"))
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid object name"})
	}

	obj, err := h.service.Object(t, name)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(obj)
}

// HandlePlan returns the reconcile plan for the loaded inventory.
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	plan, err := h.service.Plan()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, schema.ErrUnknownType) || errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.service.logger, c).Error("Inspect request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
