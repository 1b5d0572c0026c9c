package schema

import (
	"errors"
	"fmt"
)

// ObjectType identifies a remote object type.
type ObjectType string

const (
	Tag            ObjectType = "tag"
	Tenant         ObjectType = "tenant"
	Site           ObjectType = "site"
	VRF            ObjectType = "vrf"
	VLAN           ObjectType = "vlan"
	Prefix         ObjectType = "prefix"
	Manufacturer   ObjectType = "manufacturer"
	DeviceType     ObjectType = "device_type"
	Platform       ObjectType = "platform"
	ClusterType    ObjectType = "cluster_type"
	ClusterGroup   ObjectType = "cluster_group"
	DeviceRole     ObjectType = "device_role"
	Cluster        ObjectType = "cluster"
	Device         ObjectType = "device"
	VirtualMachine ObjectType = "virtual_machine"
	VMInterface    ObjectType = "vm_interface"
	Interface      ObjectType = "interface"
	IPAddress      ObjectType = "ip_address"
)

// Attribute names with special meaning to the object model.
const (
	AttrSlug = "slug"
	AttrTags = "tags"
	AttrName = "name"
	AttrSite = "site"
)

// ErrUnknownType is returned when an object type is not registered.
var ErrUnknownType = errors.New("schema: unknown object type")

// Attribute binds a descriptor to an attribute name.
type Attribute struct {
	Name       string
	Descriptor Descriptor
}

// Schema is the static declaration of one object type.
type Schema struct {
	// Type is the object type tag.
	Type ObjectType

	// Name is the human readable type name used in log messages.
	Name string

	// APIPath is the remote resource path of the type.
	APIPath string

	// PrimaryKey is the attribute identifying an object besides its remote id.
	PrimaryKey string

	// SecondaryKey optionally disambiguates objects sharing a primary key.
	SecondaryKey string

	// EnforceSecondaryKey always adds the secondary key to display names.
	EnforceSecondaryKey bool

	// Prune marks objects of this type as deletion candidates once no source references them.
	Prune bool

	// SiteScoped types are identified by primary key and site, and keep
	// their name once set.
	SiteScoped bool

	// CreateUnsupported types can only be read from remote data.
	CreateUnsupported bool

	// Attributes is the ordered attribute table.
	Attributes []Attribute

	index map[string]int
}

func newSchema(s Schema) *Schema {
	s.index = make(map[string]int, len(s.Attributes))
	for i, attr := range s.Attributes {
		if _, dup := s.index[attr.Name]; dup {
			panic(fmt.Sprintf("schema %s: duplicate attribute %q", s.Type, attr.Name))
		}
		s.index[attr.Name] = i
	}
	if _, ok := s.index[s.PrimaryKey]; !ok {
		panic(fmt.Sprintf("schema %s: primary key %q is not an attribute", s.Type, s.PrimaryKey))
	}
	return &s
}

// Descriptor returns the descriptor of an attribute.
func (s *Schema) Descriptor(name string) (Descriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.Attributes[i].Descriptor, true
}

// Has reports whether name is an attribute of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// HasSlug reports whether the type carries a slug attribute.
func (s *Schema) HasSlug() bool {
	return s.Has(AttrSlug)
}

// HasTags reports whether the type carries a tag list.
func (s *Schema) HasTags() bool {
	d, ok := s.Descriptor(AttrTags)
	return ok && d.Kind == KindReferenceList && d.Target == Tag
}

// Names returns the attribute names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Attributes))
	for i, attr := range s.Attributes {
		names[i] = attr.Name
	}
	return names
}

// Dependencies returns the object types this type references, excluding
// deferred references. The result is in attribute order without duplicates.
func (s *Schema) Dependencies() []ObjectType {
	var deps []ObjectType
	seen := make(map[ObjectType]struct{})
	for _, attr := range s.Attributes {
		if attr.Descriptor.Deferred {
			continue
		}
		for _, t := range attr.Descriptor.Targets() {
			if t == s.Type {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			deps = append(deps, t)
		}
	}
	return deps
}

// Describe renders the attribute table for diagnostics.
func (s *Schema) Describe() map[string]string {
	out := make(map[string]string, len(s.Attributes))
	for _, attr := range s.Attributes {
		out[attr.Name] = attr.Descriptor.String()
	}
	return out
}
