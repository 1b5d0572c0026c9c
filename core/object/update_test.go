package object_test

import (
	"net/netip"
	"strings"
	"testing"

	"netbox-sync/core/object"
	"netbox-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresSchema(t *testing.T) {
	_, err := object.New(newInventory(t), nil, nil, false, src)
	assert.ErrorIs(t, err, object.ErrInvalidArgument)
}

func TestUpdate_Idempotent(t *testing.T) {
	inv := newInventory(t)
	data := map[string]any{"name": "DC 1", "comments": "main\r\nsite"}

	site, err := inv.GetOrCreate(schema.Site, data, src)
	require.NoError(t, err)
	first := site.Changed()
	assert.Equal(t, []string{"name", "slug", "comments"}, first)

	again, err := inv.GetOrCreate(schema.Site, data, src)
	require.NoError(t, err)
	assert.Same(t, site, again)
	assert.Equal(t, first, site.Changed())

	require.NoError(t, site.Update(data, false, src))
	assert.Equal(t, first, site.Changed())
}

func TestUpdate_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		typ   schema.ObjectType
		data  map[string]any
		key   string
		want  any
		isNil bool
	}{
		{"TruncatesBoundedString", schema.Tenant, map[string]any{"name": strings.Repeat("x", 40)}, "name", strings.Repeat("x", 30), false},
		{"FormatsGivenSlug", schema.Site, map[string]any{"name": "x", "slug": "Custom Slug!"}, "slug", "custom-slug", false},
		{"DerivesSlug", schema.Site, map[string]any{"name": "My Site, East."}, "slug", "my-site--east-", false},
		{"RejectsNonString", schema.Site, map[string]any{"name": "x", "comments": 12}, "comments", nil, true},
		{"AcceptsChoice", schema.Device, map[string]any{"name": "web01", "status": "active"}, "status", "active", false},
		{"RejectsChoice", schema.Device, map[string]any{"name": "web01", "status": "bogus"}, "status", nil, true},
		{"RejectsNonBool", schema.DeviceRole, map[string]any{"name": "srv", "vm_role": "yes"}, "vm_role", nil, true},
		{"AcceptsBool", schema.DeviceRole, map[string]any{"name": "srv", "vm_role": true}, "vm_role", true, false},
		{"IntegerFromIntegralFloat", schema.VirtualMachine, map[string]any{"name": "vm1", "memory": 2048.0}, "memory", 2048, false},
		{"RejectsFractionalInteger", schema.VirtualMachine, map[string]any{"name": "vm1", "memory": 1.5}, "memory", nil, true},
		{"FloatFromInteger", schema.VirtualMachine, map[string]any{"name": "vm1", "vcpus": 4}, "vcpus", 4.0, false},
		{"SkipsNil", schema.Site, map[string]any{"name": "x", "comments": nil}, "comments", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInventory(t)
			e, err := inv.GetOrCreate(tt.typ, tt.data, src)
			require.NoError(t, err)

			if tt.isNil {
				assert.Nil(t, e.Get(tt.key))
				assert.NotContains(t, e.Changed(), tt.key)
				return
			}
			assert.Equal(t, tt.want, e.Get(tt.key))
		})
	}
}

func TestUpdate_NumericTolerance(t *testing.T) {
	inv := newInventory(t)
	vm, err := inv.Hydrate(schema.VirtualMachine, map[string]any{"id": 1, "name": "vm1", "vcpus": 4})
	require.NoError(t, err)

	require.NoError(t, vm.Update(map[string]any{"vcpus": 4.0}, false, src))
	assert.Empty(t, vm.Changed())

	require.NoError(t, vm.Update(map[string]any{"vcpus": 6.0}, false, src))
	assert.Equal(t, []string{"vcpus"}, vm.Changed())
}

func TestUpdate_UnknownKey(t *testing.T) {
	logs := observeLogs(t)
	inv := newInventory(t)

	tenant, err := inv.GetOrCreate(schema.Tenant, map[string]any{"bogus": 1, "name": "x"}, src)
	require.NoError(t, err)

	assert.Equal(t, "x", tenant.Get("name"))
	_, stored := tenant.Attributes()["bogus"]
	assert.False(t, stored)

	entries := logs.FilterMessage("Found undefined data model key").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bogus", entries[0].ContextMap()["attribute"])
}

func TestUpdate_ChangeRecord(t *testing.T) {
	logs := observeLogs(t)
	inv := newInventory(t)

	tenant, err := inv.Hydrate(schema.Tenant, map[string]any{"id": 1, "name": "acme", "description": "old"})
	require.NoError(t, err)
	assert.False(t, tenant.IsNew())

	require.NoError(t, tenant.Update(map[string]any{"description": "new\nline"}, false, src))
	assert.Equal(t, []string{"description"}, tenant.Changed())
	assert.Equal(t, src, tenant.Source())

	entries := logs.FilterMessage("Attribute changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "old", fields["from"])
	assert.Equal(t, "new line", fields["to"])
}

func TestUpdate_NewEntityDoesNotLogChanges(t *testing.T) {
	logs := observeLogs(t)
	inv := newInventory(t)

	_, err := inv.GetOrCreate(schema.Tenant, map[string]any{"name": "acme"}, src)
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("Attribute changed").Len())
}

func TestUpdate_CreatesReferences(t *testing.T) {
	inv := newInventory(t)

	device, err := inv.GetOrCreate(schema.Device, map[string]any{
		"name": "web01",
		"site": map[string]any{"name": "dc1"},
	}, src)
	require.NoError(t, err)

	site, ok := device.Get("site").(*object.Entity)
	require.True(t, ok)
	assert.Equal(t, schema.Site, site.Type())
	assert.Equal(t, src, site.Source())
	assert.Same(t, site, inv.FindByData(schema.Site, map[string]any{"name": "dc1"}))
}

func TestUpdate_RejectsWrongReferenceType(t *testing.T) {
	inv := newInventory(t)
	tenant, err := inv.GetOrCreate(schema.Tenant, map[string]any{"name": "acme"}, src)
	require.NoError(t, err)

	device, err := inv.GetOrCreate(schema.Device, map[string]any{"name": "web01", "site": tenant}, src)
	require.NoError(t, err)
	assert.Nil(t, device.Get("site"))
}

func TestUpdate_SiteScopedNameIsKept(t *testing.T) {
	inv := newInventory(t)
	vlan, err := inv.GetOrCreate(schema.VLAN, map[string]any{"vid": 100, "name": "mgmt"}, src)
	require.NoError(t, err)

	require.NoError(t, vlan.Update(map[string]any{"vid": 100, "name": "renamed"}, false, src))
	assert.Equal(t, "mgmt", vlan.Get("name"))
}

func TestUpdate_Polymorphic(t *testing.T) {
	inv := newInventory(t)

	ip, err := inv.GetOrCreate(schema.IPAddress, map[string]any{
		"address":              "10.0.0.1/24",
		"assigned_object_type": "dcim.interface",
		"assigned_object_id": map[string]any{
			"name":   "eth0",
			"device": map[string]any{"name": "web01"},
		},
	}, src)
	require.NoError(t, err)

	iface, ok := ip.Get("assigned_object_id").(*object.Entity)
	require.True(t, ok)
	assert.Equal(t, schema.Interface, iface.Type())
	assert.Equal(t, "eth0 (web01)", iface.DisplayName(false))
	assert.Contains(t, ip.Changed(), "assigned_object_id")
	assert.Contains(t, ip.Changed(), "assigned_object_type")
}

func TestUpdate_PolymorphicHandleSetsDiscriminator(t *testing.T) {
	inv := newInventory(t)
	vm, err := inv.GetOrCreate(schema.VirtualMachine, map[string]any{"name": "vm1"}, src)
	require.NoError(t, err)
	iface, err := inv.GetOrCreate(schema.VMInterface, map[string]any{"name": "eth0", "virtual_machine": vm}, src)
	require.NoError(t, err)

	ip, err := inv.GetOrCreate(schema.IPAddress, map[string]any{"address": "10.0.0.2/24", "assigned_object_id": iface}, src)
	require.NoError(t, err)

	assert.Equal(t, "virtualization.vminterface", ip.Get("assigned_object_type"))
	assert.Same(t, iface, ip.Get("assigned_object_id"))
}

func TestUpdate_InvalidDiscriminator(t *testing.T) {
	inv := newInventory(t)

	_, err := inv.GetOrCreate(schema.IPAddress, map[string]any{
		"address":              "10.0.0.3/24",
		"assigned_object_type": "dcim.bogus",
		"assigned_object_id":   map[string]any{"name": "eth0"},
	}, src)
	assert.ErrorIs(t, err, object.ErrInvalidDiscriminator)
}

func TestUpdate_Networks(t *testing.T) {
	inv := newInventory(t)

	prefix, err := inv.Hydrate(schema.Prefix, map[string]any{"id": 1, "prefix": "10.0.0.0/24"})
	require.NoError(t, err)
	assert.Equal(t, netip.MustParsePrefix("10.0.0.0/24"), prefix.Get("prefix"))

	_, err = inv.Hydrate(schema.Prefix, map[string]any{"id": 2, "prefix": "not-a-network"})
	assert.ErrorIs(t, err, object.ErrMalformedPrimaryKey)

	_, err = inv.GetOrCreate(schema.Prefix, map[string]any{"prefix": "10.1.0.0/24"}, src)
	assert.ErrorIs(t, err, object.ErrCreateUnsupported)
}

func TestUpdate_RemoteReplacesState(t *testing.T) {
	inv := newInventory(t)

	site, err := inv.Hydrate(schema.Site, map[string]any{
		"id":     1,
		"name":   "dc1",
		"slug":   "dc1",
		"tenant": map[string]any{"id": 7, "name": "acme"},
		"bogus":  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, site.RemoteID())
	assert.Empty(t, site.Changed())
	assert.Equal(t, object.Unresolved{Key: map[string]any{"id": 7, "name": "acme"}}, site.Get("tenant"))
	_, stored := site.Attributes()["bogus"]
	assert.False(t, stored)

	tenant, err := inv.Hydrate(schema.Tenant, map[string]any{"id": 7, "name": "acme"})
	require.NoError(t, err)
	require.NoError(t, inv.ResolveAll())
	assert.Same(t, tenant, site.Get("tenant"))
}

func TestUpdate_UnresolvedAddressComparison(t *testing.T) {
	inv := newInventory(t)
	device, err := inv.Hydrate(schema.Device, map[string]any{
		"id":          1,
		"name":        "web01",
		"primary_ip4": map[string]any{"id": 9, "address": "10.0.0.1/24"},
	})
	require.NoError(t, err)

	ip, err := inv.GetOrCreate(schema.IPAddress, map[string]any{"address": "10.0.0.1/24"}, src)
	require.NoError(t, err)

	require.NoError(t, device.Update(map[string]any{"primary_ip4": ip}, false, src))
	assert.Empty(t, device.Changed())
}
