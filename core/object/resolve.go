package object

import (
	"fmt"

	"netbox-sync/core/schema"
	"netbox-sync/core/utils"

	"go.uber.org/zap"
)

// ResolveRelations replaces raw reference values by entity handles looked up
// in the inventory. Values that can't be found are logged and kept, so a
// later call may resolve them once the referenced entity exists.
//
// It never creates entities. The only error returned is
// ErrInvalidDiscriminator.
func (e *Entity) ResolveRelations() error {
	for _, attr := range e.schema.Attributes {
		d := attr.Descriptor
		if !d.IsReference() {
			continue
		}
		value := e.attrs[attr.Name]
		if value == nil {
			continue
		}

		switch d.Kind {
		case schema.KindReferenceList:
			e.attrs[attr.Name] = e.resolveList(attr.Name, d.Target, value)

		case schema.KindReference:
			e.attrs[attr.Name] = e.resolveReference(attr.Name, d.Target, value)

		case schema.KindPolymorphic:
			disc := utils.ToString(e.attrs[d.Discriminator])
			target, ok := d.Relation.TypeFor(disc)
			if !ok {
				zap.L().Error("Invalid polymorphic discriminator",
					zap.String("object_type", e.schema.Name),
					zap.String("object", e.DisplayName(false)),
					zap.String("attribute", d.Discriminator),
					zap.String("value", disc))
				return fmt.Errorf("%w: %s %q %s=%q", ErrInvalidDiscriminator,
					e.schema.Name, e.DisplayName(false), d.Discriminator, disc)
			}

			if key, ok := lookupKey(value); ok && len(key) == 1 {
				if id, ok := utils.ToInt(key["id"]); ok {
					if handle := e.inv.FindByRemoteID(target, id); handle != nil {
						value = handle
					}
				}
			}
			e.attrs[attr.Name] = e.resolveReference(attr.Name, target, value)
		}
	}
	return nil
}

func (e *Entity) resolveReference(name string, target schema.ObjectType, value any) any {
	if handle, ok := value.(*Entity); ok {
		return handle
	}

	key, ok := lookupKey(value)
	if ok {
		if handle := e.inv.FindByData(target, key); handle != nil {
			return handle
		}
	}

	zap.L().Error("Problems resolving relation",
		zap.String("object_type", e.schema.Name),
		zap.String("object", e.DisplayName(false)),
		zap.String("attribute", name),
		zap.String("value", render(schema.Reference(target), value)))

	if ok {
		if _, isUnresolved := value.(Unresolved); !isUnresolved {
			return Unresolved{Key: key}
		}
	}
	return value
}

func (e *Entity) resolveList(name string, member schema.ObjectType, value any) *Collection {
	if c, ok := value.(*Collection); ok && c.Member() == member {
		return c
	}

	resolved := NewCollection(member)
	items, ok := utils.ToSlice(value)
	if !ok {
		if c, isCollection := value.(*Collection); isCollection {
			items = make([]any, 0, c.Len())
			for _, item := range c.Items() {
				items = append(items, item)
			}
		} else {
			items = []any{value}
		}
	}

	for _, item := range items {
		if handle, ok := item.(*Entity); ok && handle.Type() == member {
			resolved.Append(handle)
			continue
		}

		var found *Entity
		if key, ok := lookupKey(item); ok {
			found = e.inv.FindByData(member, key)
		}
		if found == nil {
			zap.L().Error("Problems resolving relation",
				zap.String("object_type", e.schema.Name),
				zap.String("object", e.DisplayName(false)),
				zap.String("attribute", name),
				zap.String("value", fmt.Sprintf("%v", item)))
			continue
		}
		resolved.Append(found)
	}
	return resolved
}
