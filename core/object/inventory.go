package object

import (
	"fmt"
	"sort"
	"strings"

	"netbox-sync/core/schema"
	"netbox-sync/core/utils"
)

// Source is the collaborator that produced an entity's data.
type Source interface {
	// Name returns the configured name of the source.
	Name() string
}

// Inventory is the registry owning all entities of a reconciliation pass.
// GetOrCreate must be idempotent: asking twice for the same natural key
// returns the same entity.
type Inventory interface {
	// GetOrCreate finds an entity by data and updates it, or creates it.
	GetOrCreate(t schema.ObjectType, data map[string]any, source Source) (*Entity, error)

	// FindByData finds an entity by natural key without creating it.
	FindByData(t schema.ObjectType, key map[string]any) *Entity

	// FindByRemoteID finds an entity by its remote id.
	FindByRemoteID(t schema.ObjectType, id int) *Entity
}

// Unresolved is a reference that has not been resolved to an entity yet.
// Key holds the lookup data, e.g. {"id": 3} or a nested remote object.
type Unresolved struct {
	Key map[string]any
}

// String renders the most descriptive field of the lookup key.
func (u Unresolved) String() string {
	for _, field := range []string{"address", "name", "display", "vid", "model", "slug"} {
		if v, ok := u.Key[field]; ok && v != nil {
			return utils.ToString(v)
		}
	}
	if v, ok := u.Key["id"]; ok {
		return fmt.Sprintf("id=%v", v)
	}

	keys := make([]string, 0, len(u.Key))
	for k := range u.Key {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, u.Key[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// lookupKey turns a raw reference value into lookup data.
func lookupKey(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case Unresolved:
		return v.Key, v.Key != nil
	case *Entity, *Collection:
		return nil, false
	}
	if id, ok := utils.ToInt(value); ok {
		return map[string]any{"id": id}, true
	}
	if m, ok := utils.ToMap(value); ok {
		return m, true
	}
	return nil, false
}
