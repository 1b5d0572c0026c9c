package object

import (
	"fmt"
	"net/netip"

	"netbox-sync/core/schema"
	"netbox-sync/core/utils"

	"go.uber.org/zap"
)

// Entity is one schema bound record of a remote object type.
type Entity struct {
	schema   *schema.Schema
	inv      Inventory
	remoteID int
	isNew    bool
	attrs    map[string]any
	changed  []string
	unset    []string
	source   Source
}

// New creates an entity of the given schema and applies data to it.
// With fromRemote set the data is trusted as confirmed remote state.
func New(inv Inventory, sc *schema.Schema, data map[string]any, fromRemote bool, source Source) (*Entity, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: schema is required", ErrInvalidArgument)
	}

	e := &Entity{
		schema: sc,
		inv:    inv,
		isNew:  true,
		attrs:  make(map[string]any, len(sc.Attributes)),
	}
	for _, attr := range sc.Attributes {
		if attr.Descriptor.Kind == schema.KindReferenceList {
			e.attrs[attr.Name] = NewCollection(attr.Descriptor.Target)
		}
	}

	if err := e.Update(data, fromRemote, source); err != nil {
		return nil, err
	}
	return e, nil
}

// Type returns the object type of the entity.
func (e *Entity) Type() schema.ObjectType {
	return e.schema.Type
}

// Schema returns the schema the entity is bound to.
func (e *Entity) Schema() *schema.Schema {
	return e.schema
}

// RemoteID returns the remote id, 0 if the entity was never created remotely.
func (e *Entity) RemoteID() int {
	return e.remoteID
}

// IsNew reports whether the entity is not known to exist remotely.
func (e *Entity) IsNew() bool {
	return e.isNew
}

// Source returns the source that first produced the entity, if any.
func (e *Entity) Source() Source {
	return e.source
}

// Get returns the current value of an attribute.
func (e *Entity) Get(name string) any {
	return e.attrs[name]
}

// Attributes returns a shallow copy of the attribute map.
func (e *Entity) Attributes() map[string]any {
	out := make(map[string]any, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// Changed returns the attributes changed since the entity was loaded, in
// the order they changed. Names may repeat.
func (e *Entity) Changed() []string {
	out := make([]string, len(e.changed))
	copy(out, e.changed)
	return out
}

// PendingUnset returns the attributes marked for remote deletion.
func (e *Entity) PendingUnset() []string {
	out := make([]string, len(e.unset))
	copy(out, e.unset)
	return out
}

// RemoteReference returns the remote id. It reports false while the entity
// has not been created remotely.
func (e *Entity) RemoteReference() (int, bool) {
	if e.remoteID == 0 {
		return 0, false
	}
	return e.remoteID, true
}

// Unset marks an attribute for deletion on the remote side. The flush stage
// applies unsets before any other update of the entity.
func (e *Entity) Unset(name string) error {
	if !e.schema.Has(name) {
		zap.L().Error("Found undefined data model key",
			zap.String("attribute", name),
			zap.String("object_type", e.schema.Name))
		return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, e.schema.Type, name)
	}

	for _, n := range e.unset {
		if n == name {
			return nil
		}
	}

	zap.L().Info("Setting attribute to None",
		zap.String("object_type", e.schema.Name),
		zap.String("object", e.DisplayName(false)),
		zap.String("attribute", name))
	e.unset = append(e.unset, name)
	return nil
}

// Confirm records that the entity's state was written remotely under id.
func (e *Entity) Confirm(id int) {
	e.remoteID = id
	e.isNew = false
	e.changed = nil
	e.unset = nil
}

// Payload returns the remote representation of the named attributes.
// References to entities that don't exist remotely yet are left out and
// reported in missing.
func (e *Entity) Payload(names []string) (payload map[string]any, missing []string) {
	payload = make(map[string]any, len(names))
	for _, name := range names {
		value, ok := e.attrs[name]
		if !ok || value == nil {
			continue
		}

		ref, ok := remoteValue(value)
		if !ok {
			missing = append(missing, name)
			continue
		}
		payload[name] = ref
	}
	return payload, missing
}

func remoteValue(value any) (any, bool) {
	switch v := value.(type) {
	case *Entity:
		id, ok := v.RemoteReference()
		return id, ok
	case *Collection:
		return v.RemoteReference()
	case Unresolved:
		id, ok := utils.ToInt(v.Key["id"])
		return id, ok
	case netip.Prefix:
		return v.String(), true
	case map[string]any:
		if choice, ok := v["value"]; ok {
			return choice, true
		}
		return v, true
	default:
		return v, true
	}
}

// String returns the entity as indented JSON.
func (e *Entity) String() string {
	return e.JSON()
}

// Repr returns a short debug representation, e.g. "<site 'dc1'>".
func (e *Entity) Repr() string {
	return fmt.Sprintf("<%s '%s'>", e.schema.Name, e.DisplayName(false))
}
