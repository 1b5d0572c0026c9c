package schema

import (
	"fmt"
	"sync"
)

// Registry holds the schemas of all object types.
type Registry struct {
	schemas map[ObjectType]*Schema
	ordered []ObjectType
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry of all declared object types.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(declarations()...)
	})
	return defaultRegistry
}

// NewRegistry builds a registry from a set of schemas. It panics if a schema
// references a type that is not part of the set or if the references form a cycle.
func NewRegistry(schemas ...*Schema) *Registry {
	r := &Registry{schemas: make(map[ObjectType]*Schema, len(schemas))}
	for _, s := range schemas {
		if _, dup := r.schemas[s.Type]; dup {
			panic(fmt.Sprintf("schema: type %s registered twice", s.Type))
		}
		r.schemas[s.Type] = s
	}

	for _, s := range schemas {
		for _, attr := range s.Attributes {
			for _, t := range attr.Descriptor.Targets() {
				if _, ok := r.schemas[t]; !ok {
					panic(fmt.Sprintf("schema %s.%s: unknown target type %s", s.Type, attr.Name, t))
				}
			}
		}
	}

	r.ordered = r.sortByDependency(schemas)
	return r
}

// sortByDependency orders types depth first in declaration order.
func (r *Registry) sortByDependency(schemas []*Schema) []ObjectType {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[ObjectType]int, len(schemas))
	ordered := make([]ObjectType, 0, len(schemas))

	var visit func(t ObjectType)
	visit = func(t ObjectType) {
		switch state[t] {
		case done:
			return
		case visiting:
			panic(fmt.Sprintf("schema: dependency cycle through %s", t))
		}
		state[t] = visiting
		for _, dep := range r.schemas[t].Dependencies() {
			visit(dep)
		}
		state[t] = done
		ordered = append(ordered, t)
	}

	for _, s := range schemas {
		visit(s.Type)
	}
	return ordered
}

// Lookup returns the schema of an object type.
func (r *Registry) Lookup(t ObjectType) (*Schema, bool) {
	s, ok := r.schemas[t]
	return s, ok
}

// MustLookup returns the schema of an object type or panics.
func (r *Registry) MustLookup(t ObjectType) *Schema {
	s, ok := r.schemas[t]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownType, t))
	}
	return s
}

// Get is like Lookup but returns ErrUnknownType.
func (r *Registry) Get(t ObjectType) (*Schema, error) {
	s, ok := r.schemas[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	return s, nil
}

// Types returns all object types, each after the types it depends on.
func (r *Registry) Types() []ObjectType {
	out := make([]ObjectType, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Dependencies returns the direct dependencies of an object type.
func (r *Registry) Dependencies(t ObjectType) []ObjectType {
	s, ok := r.schemas[t]
	if !ok {
		return nil
	}
	return s.Dependencies()
}
