package object

import (
	"sort"
	"strings"

	"netbox-sync/core/schema"
)

// Collection is an ordered, de-duplicated list of entities of one type.
type Collection struct {
	member schema.ObjectType
	items  []*Entity
}

// NewCollection returns an empty collection for the given member type.
func NewCollection(member schema.ObjectType, items ...*Entity) *Collection {
	c := &Collection{member: member}
	for _, e := range items {
		c.Append(e)
	}
	return c
}

// Member returns the member type of the collection.
func (c *Collection) Member() schema.ObjectType {
	return c.member
}

// Append adds e unless it is nil, of another type or already present.
// It reports whether e was added.
func (c *Collection) Append(e *Entity) bool {
	if e == nil || e.Type() != c.member || c.Contains(e) {
		return false
	}
	c.items = append(c.items, e)
	return true
}

// Contains reports whether e is a member.
func (c *Collection) Contains(e *Entity) bool {
	for _, item := range c.items {
		if item == e {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns the members in insertion order.
func (c *Collection) Items() []*Entity {
	out := make([]*Entity, len(c.items))
	copy(out, c.items)
	return out
}

// Names returns the sorted display names of all members.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.items))
	for _, e := range c.items {
		names = append(names, e.DisplayName(false))
	}
	sort.Strings(names)
	return names
}

// DisplayName renders the sorted member names, e.g. "[a, b]".
func (c *Collection) DisplayName() string {
	return "[" + strings.Join(c.Names(), ", ") + "]"
}

// RemoteReference returns the remote representation of the collection: tags
// as a list of {"name": ...} objects, everything else as a list of ids. It
// reports false while any member has not been created remotely.
func (c *Collection) RemoteReference() (any, bool) {
	if c.member == schema.Tag {
		refs := make([]map[string]any, 0, len(c.items))
		for _, e := range c.items {
			if _, ok := e.RemoteReference(); !ok {
				return nil, false
			}
			refs = append(refs, map[string]any{"name": e.DisplayName(false)})
		}
		return refs, true
	}

	ids := make([]int, 0, len(c.items))
	for _, e := range c.items {
		id, ok := e.RemoteReference()
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
