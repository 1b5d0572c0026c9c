package inventory

import (
	"errors"
	"fmt"

	"netbox-sync/core/object"
	"netbox-sync/core/schema"
	"netbox-sync/core/slug"
	"netbox-sync/core/utils"

	"github.com/hashicorp/go-memdb"
	"go.uber.org/zap"
)

const remoteIDTable = "remote_ids"

type remoteRecord struct {
	Type     string
	RemoteID int
	Entity   *object.Entity
}

func remoteIDSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			remoteIDTable: {
				Name: remoteIDTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:   "id",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "Type"},
								&memdb.IntFieldIndex{Field: "RemoteID"},
							},
						},
					},
					"type": {
						Name:    "type",
						Indexer: &memdb.StringFieldIndex{Field: "Type"},
					},
				},
			},
		},
	}
}

// Inventory is the in-memory registry of all entities of a pass.
type Inventory struct {
	registry *schema.Registry
	objects  map[schema.ObjectType][]*object.Entity
	ids      *memdb.MemDB
	logger   *zap.Logger
}

// New creates an empty inventory for the types of reg.
func New(reg *schema.Registry, logger *zap.Logger) (*Inventory, error) {
	if reg == nil {
		reg = schema.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ids, err := memdb.NewMemDB(remoteIDSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to create remote id index: %w", err)
	}

	return &Inventory{
		registry: reg,
		objects:  make(map[schema.ObjectType][]*object.Entity),
		ids:      ids,
		logger:   logger,
	}, nil
}

// Registry returns the schema registry the inventory was built for.
func (inv *Inventory) Registry() *schema.Registry {
	return inv.registry
}

// GetOrCreate finds the entity matching data and updates it, or creates and
// registers a new one.
func (inv *Inventory) GetOrCreate(t schema.ObjectType, data map[string]any, source object.Source) (*object.Entity, error) {
	sc, err := inv.registry.Get(t)
	if err != nil {
		return nil, err
	}

	if existing := inv.FindByData(t, data); existing != nil {
		if err := existing.Update(data, false, source); err != nil {
			return existing, err
		}
		return existing, nil
	}

	e, err := object.New(inv, sc, data, false, source)
	if err != nil {
		return nil, err
	}
	if err := inv.add(e); err != nil {
		return nil, err
	}

	inv.logger.Debug("Created new object",
		zap.String("object_type", sc.Name),
		zap.String("object", e.DisplayName(true)))
	return e, nil
}

// Hydrate registers confirmed remote data. Data for an already known remote id
// replaces the stored state of that entity.
func (inv *Inventory) Hydrate(t schema.ObjectType, data map[string]any) (*object.Entity, error) {
	sc, err := inv.registry.Get(t)
	if err != nil {
		return nil, err
	}

	id, ok := utils.ToInt(data["id"])
	if !ok || id <= 0 {
		return nil, fmt.Errorf("%w: remote %s data without id", object.ErrInvalidArgument, sc.Name)
	}

	if existing := inv.FindByRemoteID(t, id); existing != nil {
		return existing, existing.Update(data, true, nil)
	}

	e, err := object.New(inv, sc, data, true, nil)
	if err != nil {
		return nil, err
	}
	if err := inv.add(e); err != nil {
		return nil, err
	}
	return e, nil
}

// FindByData looks up an entity by natural key without creating it.
func (inv *Inventory) FindByData(t schema.ObjectType, key map[string]any) *object.Entity {
	if len(key) == 0 {
		return nil
	}
	sc, ok := inv.registry.Lookup(t)
	if !ok {
		return nil
	}

	if raw, ok := key["id"]; ok && raw != nil {
		id, ok := utils.ToInt(raw)
		if !ok {
			return nil
		}
		return inv.FindByRemoteID(t, id)
	}

	if sc.HasSlug() {
		if s, ok := key[schema.AttrSlug].(string); ok && s != "" {
			return inv.findBySlug(t, s)
		}
	}

	if name := object.DisplayNameOf(sc, key, true); name != "" {
		var matches []*object.Entity
		for _, e := range inv.objects[t] {
			if e.DisplayName(true) == name {
				matches = append(matches, e)
			}
		}
		if len(matches) > 1 {
			inv.logger.Warn("Found multiple objects for the same key, using the first one",
				zap.String("object_type", sc.Name),
				zap.String("object", name),
				zap.Int("count", len(matches)))
		}
		if len(matches) > 0 {
			return matches[0]
		}
	}

	if sc.HasSlug() {
		if name, ok := key[sc.PrimaryKey].(string); ok && name != "" {
			d, _ := sc.Descriptor(schema.AttrSlug)
			if s, err := slug.Format(name, d.MaxLen); err == nil {
				return inv.findBySlug(t, s)
			}
		}
	}
	return nil
}

func (inv *Inventory) findBySlug(t schema.ObjectType, s string) *object.Entity {
	for _, e := range inv.objects[t] {
		if current, ok := e.Get(schema.AttrSlug).(string); ok && current == s {
			return e
		}
	}
	return nil
}

// FindByRemoteID looks up an entity by its remote id.
func (inv *Inventory) FindByRemoteID(t schema.ObjectType, id int) *object.Entity {
	if id <= 0 {
		return nil
	}

	txn := inv.ids.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(remoteIDTable, "id", string(t), id)
	if err != nil {
		inv.logger.Error("Remote id lookup failed", zap.String("object_type", string(t)), zap.Int("id", id), zap.Error(err))
		return nil
	}
	if raw == nil {
		return nil
	}
	return raw.(*remoteRecord).Entity
}

// AssignRemoteID confirms that e was written remotely under id.
func (inv *Inventory) AssignRemoteID(e *object.Entity, id int) error {
	if e == nil || id <= 0 {
		return fmt.Errorf("%w: entity and positive id required", object.ErrInvalidArgument)
	}
	e.Confirm(id)
	return inv.index(e)
}

// ResolveAll resolves relations of every entity in dependency order. It stops
// only on an invalid polymorphic discriminator.
func (inv *Inventory) ResolveAll() error {
	for _, t := range inv.registry.Types() {
		for _, e := range inv.objects[t] {
			if err := e.ResolveRelations(); err != nil {
				if errors.Is(err, object.ErrInvalidDiscriminator) {
					return err
				}
				inv.logger.Error("Failed to resolve relations", zap.String("object", e.DisplayName(true)), zap.Error(err))
			}
		}
	}
	return nil
}

// All returns the entities of type t in insertion order.
func (inv *Inventory) All(t schema.ObjectType) []*object.Entity {
	out := make([]*object.Entity, len(inv.objects[t]))
	copy(out, inv.objects[t])
	return out
}

// Find returns the entity of type t with the given display name. Both the
// plain and the secondary key form are accepted.
func (inv *Inventory) Find(t schema.ObjectType, name string) *object.Entity {
	for _, e := range inv.objects[t] {
		if e.DisplayName(false) == name || e.DisplayName(true) == name {
			return e
		}
	}
	return nil
}

// Counts returns the number of entities per type.
func (inv *Inventory) Counts() map[schema.ObjectType]int {
	out := make(map[schema.ObjectType]int, len(inv.objects))
	for t, list := range inv.objects {
		out[t] = len(list)
	}
	return out
}

// IndexedIDs returns the number of indexed remote ids of type t.
func (inv *Inventory) IndexedIDs(t schema.ObjectType) int {
	txn := inv.ids.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(remoteIDTable, "type", string(t))
	if err != nil {
		return 0
	}
	n := 0
	for raw := it.Next(); raw != nil; raw = it.Next() {
		n++
	}
	return n
}

func (inv *Inventory) add(e *object.Entity) error {
	inv.objects[e.Type()] = append(inv.objects[e.Type()], e)
	if e.RemoteID() > 0 {
		return inv.index(e)
	}
	return nil
}

func (inv *Inventory) index(e *object.Entity) error {
	txn := inv.ids.Txn(true)
	if err := txn.Insert(remoteIDTable, &remoteRecord{
		Type:     string(e.Type()),
		RemoteID: e.RemoteID(),
		Entity:   e,
	}); err != nil {
		txn.Abort()
		return fmt.Errorf("failed to index %s id %d: %w", e.Type(), e.RemoteID(), err)
	}
	txn.Commit()
	return nil
}
