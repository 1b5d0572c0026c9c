package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(types []ObjectType, t ObjectType) int {
	for i, v := range types {
		if v == t {
			return i
		}
	}
	return -1
}

func TestDefault_AllTypesRegistered(t *testing.T) {
	reg := Default()
	all := []ObjectType{
		Tag, Tenant, Site, VRF, VLAN, Prefix, Manufacturer, DeviceType, Platform,
		ClusterType, ClusterGroup, DeviceRole, Cluster, Device, VirtualMachine,
		VMInterface, Interface, IPAddress,
	}

	types := reg.Types()
	assert.Len(t, types, len(all))
	for _, typ := range all {
		s, ok := reg.Lookup(typ)
		require.True(t, ok, "missing %s", typ)
		assert.NotEmpty(t, s.APIPath)
		assert.True(t, s.Has(s.PrimaryKey))
	}
}

func TestDefault_DependencyOrder(t *testing.T) {
	reg := Default()
	types := reg.Types()

	for _, typ := range types {
		for _, dep := range reg.Dependencies(typ) {
			assert.Less(t, indexOf(types, dep), indexOf(types, typ), "%s must come before %s", dep, typ)
		}
	}

	// primary IPs are deferred and must not pull addresses before devices
	assert.Less(t, indexOf(types, Device), indexOf(types, IPAddress))
	assert.NotContains(t, reg.Dependencies(Device), IPAddress)
	assert.ElementsMatch(t,
		[]ObjectType{Interface, VMInterface, Tag, Tenant, VRF},
		reg.Dependencies(IPAddress))
}

func TestRegistry_Get(t *testing.T) {
	reg := Default()

	s, err := reg.Get(VLAN)
	require.NoError(t, err)
	assert.Equal(t, "vid", s.PrimaryKey)
	assert.True(t, s.SiteScoped)

	_, err = reg.Get("bogus")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Panics(t, func() { reg.MustLookup("bogus") })
}

func TestNewRegistry_Panics(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		assert.Panics(t, func() {
			NewRegistry(newSchema(Schema{
				Type: Site, PrimaryKey: "name",
				Attributes: []Attribute{{"name", FreeString()}, {"tenant", Reference(Tenant)}},
			}))
		})
	})

	t.Run("cycle", func(t *testing.T) {
		assert.Panics(t, func() {
			NewRegistry(
				newSchema(Schema{Type: "a", PrimaryKey: "name",
					Attributes: []Attribute{{"name", FreeString()}, {"b", Reference("b")}}}),
				newSchema(Schema{Type: "b", PrimaryKey: "name",
					Attributes: []Attribute{{"name", FreeString()}, {"a", Reference("a")}}}),
			)
		})
	})

	t.Run("missing primary key", func(t *testing.T) {
		assert.Panics(t, func() {
			newSchema(Schema{Type: "x", PrimaryKey: "name"})
		})
	})
}

func TestSchema_Helpers(t *testing.T) {
	reg := Default()

	site := reg.MustLookup(Site)
	assert.True(t, site.HasSlug())
	assert.True(t, site.HasTags())
	assert.Equal(t, []string{"name", "slug", "comments", "tenant", "tags"}, site.Names())
	assert.Equal(t, "string(50)", site.Describe()["name"])
	assert.Equal(t, "ref(tenant)", site.Describe()["tenant"])

	vrf := reg.MustLookup(VRF)
	assert.False(t, vrf.HasSlug())

	d, ok := reg.MustLookup(Interface).Descriptor("tagged_vlans")
	require.True(t, ok)
	assert.Equal(t, PolicyReplace, d.Policy)
	assert.Equal(t, VLAN, d.Target)

	_, ok = site.Descriptor("bogus")
	assert.False(t, ok)
}

func TestAssignedObjectRelation(t *testing.T) {
	ip := Default().MustLookup(IPAddress)

	disc, ok := ip.Descriptor("assigned_object_type")
	require.True(t, ok)
	assert.Equal(t, KindChoice, disc.Kind)
	assert.ElementsMatch(t, AssignedObjectRelation.Names(), disc.Choices)

	poly, ok := ip.Descriptor("assigned_object_id")
	require.True(t, ok)
	assert.Same(t, AssignedObjectRelation, poly.Relation)

	typ, ok := AssignedObjectRelation.TypeFor("dcim.interface")
	assert.True(t, ok)
	assert.Equal(t, Interface, typ)

	name, ok := AssignedObjectRelation.NameFor(VMInterface)
	assert.True(t, ok)
	assert.Equal(t, "virtualization.vminterface", name)

	_, ok = AssignedObjectRelation.TypeFor("dcim.frontport")
	assert.False(t, ok)
}

func TestDescriptor_String(t *testing.T) {
	assert.Equal(t, "choice[a,b]", Choice("a", "b").String())
	assert.Equal(t, "list(tag)", TagList().String())
	assert.Equal(t, "float", Float().String())
	assert.Equal(t, "ref(assigned_object_type)", Polymorphic("assigned_object_type", AssignedObjectRelation).String())
	assert.True(t, AddressReference(IPAddress).Deferred)
	assert.True(t, Integer().IsNumeric())
	assert.False(t, Bool().IsReference())
}
