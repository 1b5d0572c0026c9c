package object

import (
	"errors"
	"fmt"

	"netbox-sync/core/schema"
	"netbox-sync/core/utils"

	"go.uber.org/zap"
)

// compileVLANs builds the replacement member list of a VLAN list attribute.
// Maps are get-or-created with the given source, bare integers are taken as
// VLAN ids. Duplicates are dropped.
func (e *Entity) compileVLANs(member schema.ObjectType, value any, source Source) (*Collection, error) {
	var items []any
	switch v := value.(type) {
	case *Collection:
		for _, item := range v.Items() {
			items = append(items, item)
		}
	default:
		list, ok := utils.ToSlice(value)
		if !ok {
			return nil, fmt.Errorf("%w: value for %s list must be a list", ErrInvalidArgument, member)
		}
		items = list
	}

	if source == nil {
		source = e.source
	}

	next := NewCollection(member)
	for _, item := range items {
		var vlan *Entity
		switch v := item.(type) {
		case *Entity:
			vlan = v
		default:
			key, ok := utils.ToMap(item)
			if !ok {
				id, isInt := utils.ToInt(item)
				if !isInt {
					zap.L().Error("Unable to parse provided VLAN data", zap.String("value", fmt.Sprintf("%v", item)))
					continue
				}
				key = map[string]any{"vid": id}
			}

			created, err := e.inv.GetOrCreate(member, key, source)
			if err != nil {
				if errors.Is(err, ErrInvalidDiscriminator) {
					return nil, err
				}
				zap.L().Error("Unable to parse provided VLAN data", zap.Error(err))
				continue
			}
			vlan = created
		}

		next.Append(vlan)
	}
	return next, nil
}
