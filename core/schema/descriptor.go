package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the constraint family of a Descriptor.
type Kind int

const (
	KindBoundedString Kind = iota
	KindFreeString
	KindBool
	KindInteger
	KindFloat
	KindChoice
	KindNetwork
	KindReference
	KindReferenceList
	KindPolymorphic
)

var kindNames = map[Kind]string{
	KindBoundedString: "bounded_string",
	KindFreeString:    "string",
	KindBool:          "bool",
	KindInteger:       "integer",
	KindFloat:         "float",
	KindChoice:        "choice",
	KindNetwork:       "network",
	KindReference:     "reference",
	KindReferenceList: "reference_list",
	KindPolymorphic:   "polymorphic",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ListPolicy controls how a new value of a reference list is combined with the
// current one.
type ListPolicy int

const (
	// PolicyMerge unions the new members with the current ones (tags).
	PolicyMerge ListPolicy = iota
	// PolicyReplace replaces the current members wholesale (VLANs).
	PolicyReplace
)

// Descriptor describes the constraint attached to one attribute.
type Descriptor struct {
	// Kind is the constraint family.
	Kind Kind

	// MaxLen is the maximum length of a bounded string.
	MaxLen int

	// Choices is the allowed literal set of a choice attribute.
	Choices []string

	// Target is the referenced object type (or member type of a list).
	Target ObjectType

	// Policy selects merge or replace semantics for reference lists.
	Policy ListPolicy

	// CompareField is the key of a raw unresolved value used for change comparison.
	CompareField string

	// Deferred marks references that may point forward (cyclic) and
	// therefore don't count as dependencies.
	Deferred bool

	// Discriminator is the attribute selecting the target type of a polymorphic reference.
	Discriminator string

	// Relation maps discriminator values to object types.
	Relation *Relation
}

// BoundedString returns a string descriptor truncated to maxLen.
func BoundedString(maxLen int) Descriptor {
	return Descriptor{Kind: KindBoundedString, MaxLen: maxLen}
}

// FreeString returns an unconstrained string descriptor.
func FreeString() Descriptor {
	return Descriptor{Kind: KindFreeString}
}

// Bool returns a boolean descriptor.
func Bool() Descriptor {
	return Descriptor{Kind: KindBool}
}

// Integer returns an integer descriptor.
func Integer() Descriptor {
	return Descriptor{Kind: KindInteger}
}

// Float returns a float descriptor.
func Float() Descriptor {
	return Descriptor{Kind: KindFloat}
}

// Choice returns a descriptor accepting only the given literals.
func Choice(values ...string) Descriptor {
	return Descriptor{Kind: KindChoice, Choices: values}
}

// Network returns an IP prefix descriptor.
func Network() Descriptor {
	return Descriptor{Kind: KindNetwork}
}

// Reference returns a single reference to an object of type t.
func Reference(t ObjectType) Descriptor {
	return Descriptor{Kind: KindReference, Target: t}
}

// AddressReference returns a deferred reference to an address object. While
// unresolved it is compared by its "address" field.
func AddressReference(t ObjectType) Descriptor {
	return Descriptor{Kind: KindReference, Target: t, CompareField: "address", Deferred: true}
}

// TagList returns a merged list of tags.
func TagList() Descriptor {
	return Descriptor{Kind: KindReferenceList, Target: Tag, Policy: PolicyMerge}
}

// VLANList returns a replaced list of VLANs.
func VLANList() Descriptor {
	return Descriptor{Kind: KindReferenceList, Target: VLAN, Policy: PolicyReplace}
}

// Polymorphic returns a reference whose type is selected by the current value
// of the discriminator attribute through rel.
func Polymorphic(discriminator string, rel *Relation) Descriptor {
	return Descriptor{Kind: KindPolymorphic, Discriminator: discriminator, Relation: rel}
}

// IsReference reports whether values of this descriptor point to other objects.
func (d Descriptor) IsReference() bool {
	switch d.Kind {
	case KindReference, KindReferenceList, KindPolymorphic:
		return true
	}
	return false
}

// IsNumeric reports whether the descriptor is an integer or float.
func (d Descriptor) IsNumeric() bool {
	return d.Kind == KindInteger || d.Kind == KindFloat
}

// Allows reports whether s is one of the descriptor's choices.
func (d Descriptor) Allows(s string) bool {
	for _, c := range d.Choices {
		if c == s {
			return true
		}
	}
	return false
}

// Targets returns the object types this descriptor may reference.
func (d Descriptor) Targets() []ObjectType {
	switch d.Kind {
	case KindReference, KindReferenceList:
		return []ObjectType{d.Target}
	case KindPolymorphic:
		if d.Relation != nil {
			return d.Relation.Types()
		}
	}
	return nil
}

// String renders the descriptor for diagnostics.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindBoundedString:
		return fmt.Sprintf("string(%d)", d.MaxLen)
	case KindChoice:
		return "choice[" + strings.Join(d.Choices, ",") + "]"
	case KindReference:
		return "ref(" + string(d.Target) + ")"
	case KindReferenceList:
		return "list(" + string(d.Target) + ")"
	case KindPolymorphic:
		return "ref(" + d.Discriminator + ")"
	default:
		return d.Kind.String()
	}
}

// Relation is the lookup table of a polymorphic reference. The discriminator
// attribute's choice set is derived from the same table, so both always agree.
type Relation struct {
	byName map[string]ObjectType
	byType map[ObjectType]string
}

// NewRelation builds a relation from discriminator value to object type.
func NewRelation(m map[string]ObjectType) *Relation {
	r := &Relation{
		byName: make(map[string]ObjectType, len(m)),
		byType: make(map[ObjectType]string, len(m)),
	}
	for name, t := range m {
		r.byName[name] = t
		r.byType[t] = name
	}
	return r
}

// TypeFor returns the object type selected by a discriminator value.
func (r *Relation) TypeFor(name string) (ObjectType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// NameFor returns the discriminator value for an object type.
func (r *Relation) NameFor(t ObjectType) (string, bool) {
	name, ok := r.byType[t]
	return name, ok
}

// Names returns the known discriminator values, sorted.
func (r *Relation) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the referenced object types ordered by discriminator value.
func (r *Relation) Types() []ObjectType {
	names := r.Names()
	types := make([]ObjectType, 0, len(names))
	for _, name := range names {
		types = append(types, r.byName[name])
	}
	return types
}

// Discriminator returns the choice descriptor for the discriminator attribute.
func (r *Relation) Discriminator() Descriptor {
	return Choice(r.Names()...)
}
