package inspect

import (
	"errors"
	"fmt"

	"netbox-sync/core/inventory"
	"netbox-sync/core/reconcile"
	"netbox-sync/core/schema"

	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown objects.
var ErrNotFound = errors.New("object not found")

// TypeInfo describes a registered object type.
type TypeInfo struct {
	Type         schema.ObjectType   `json:"type"`
	Name         string              `json:"name"`
	APIPath      string              `json:"api_path"`
	Prune        bool                `json:"prune"`
	Dependencies []schema.ObjectType `json:"dependencies"`
	Count        int                 `json:"count"`
}

// Service answers read-only queries against a loaded inventory.
type Service struct {
	inv    *inventory.Inventory
	plans  *reconcile.PlanCache
	logger *zap.Logger
}

// NewService creates a new inspect service.
func NewService(inv *inventory.Inventory, plans *reconcile.PlanCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{inv: inv, plans: plans, logger: logger}
}

// Types lists the registered types in dependency order.
func (s *Service) Types() []TypeInfo {
	reg := s.inv.Registry()
	counts := s.inv.Counts()

	out := make([]TypeInfo, 0, len(reg.Types()))
	for _, t := range reg.Types() {
		sc := reg.MustLookup(t)
		deps := reg.Dependencies(t)
		if deps == nil {
			deps = []schema.ObjectType{}
		}
		out = append(out, TypeInfo{
			Type:         t,
			Name:         sc.Name,
			APIPath:      sc.APIPath,
			Prune:        sc.Prune,
			Dependencies: deps,
			Count:        counts[t],
		})
	}
	return out
}

// Objects returns the serialized entities of a type.
func (s *Service) Objects(t schema.ObjectType) ([]map[string]any, error) {
	if _, err := s.inv.Registry().Get(t); err != nil {
		return nil, err
	}

	entities := s.inv.All(t)
	out := make([]map[string]any, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ToMap())
	}
	return out, nil
}

// Object returns one serialized entity, looked up by display name.
func (s *Service) Object(t schema.ObjectType, name string) (map[string]any, error) {
	if _, err := s.inv.Registry().Get(t); err != nil {
		return nil, err
	}

	e := s.inv.Find(t, name)
	if e == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, t, name)
	}
	return e.ToMap(), nil
}

// Plan returns the current reconcile plan, built at most once per cache lifetime.
func (s *Service) Plan() (*reconcile.ReconcilePlan, error) {
	if s.plans == nil {
		return reconcile.BuildPlan(s.inv), nil
	}
	return s.plans.Get()
}
