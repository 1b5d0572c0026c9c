package inspect

import (
	"netbox-sync/core/inventory"
	"netbox-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the inspect feature over a loaded inventory.
func NewFeature(inv *inventory.Inventory, plans *reconcile.PlanCache, logger *zap.Logger) *Feature {
	svc := NewService(inv, plans, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inspect"
}

// IsEnabled reports whether an inventory is available.
func (f *Feature) IsEnabled() bool {
	return f.service.inv != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
