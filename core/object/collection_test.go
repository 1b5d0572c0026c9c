package object_test

import (
	"encoding/json"
	"testing"

	"netbox-sync/core/object"
	"netbox-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection(t *testing.T) {
	inv := newInventory(t)
	b, err := inv.GetOrCreate(schema.Tag, map[string]any{"name": "b"}, nil)
	require.NoError(t, err)
	a, err := inv.GetOrCreate(schema.Tag, map[string]any{"name": "a"}, nil)
	require.NoError(t, err)
	tenant, err := inv.GetOrCreate(schema.Tenant, map[string]any{"name": "acme"}, nil)
	require.NoError(t, err)

	c := object.NewCollection(schema.Tag, b, a)
	assert.False(t, c.Append(a))
	assert.False(t, c.Append(tenant))
	assert.False(t, c.Append(nil))
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(a))
	assert.Equal(t, []*object.Entity{b, a}, c.Items())
	assert.Equal(t, []string{"a", "b"}, c.Names())
	assert.Equal(t, "[a, b]", c.DisplayName())

	_, ok := c.RemoteReference()
	assert.False(t, ok)

	require.NoError(t, inv.AssignRemoteID(a, 1))
	require.NoError(t, inv.AssignRemoteID(b, 2))
	ref, ok := c.RemoteReference()
	require.True(t, ok)
	assert.Equal(t, []map[string]any{{"name": "b"}, {"name": "a"}}, ref)
}

func TestCollection_RemoteReferenceIDs(t *testing.T) {
	inv := newInventory(t)
	vlan, err := inv.Hydrate(schema.VLAN, map[string]any{"id": 12, "vid": 10})
	require.NoError(t, err)

	ref, ok := object.NewCollection(schema.VLAN, vlan).RemoteReference()
	require.True(t, ok)
	assert.Equal(t, []int{12}, ref)
}

func TestUnresolvedString(t *testing.T) {
	tests := []struct {
		name string
		key  map[string]any
		want string
	}{
		{"Address", map[string]any{"id": 1, "address": "10.0.0.1/24"}, "10.0.0.1/24"},
		{"Name", map[string]any{"id": 1, "name": "dc1"}, "dc1"},
		{"ID", map[string]any{"id": 4}, "id=4"},
		{"Other", map[string]any{"b": 2, "a": 1}, "{a=1 b=2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, object.Unresolved{Key: tt.key}.String())
		})
	}
}

func TestToMap(t *testing.T) {
	inv := newInventory(t)
	site, err := inv.GetOrCreate(schema.Site, map[string]any{
		"name":   "dc1",
		"tenant": map[string]any{"name": "acme"},
		"tags":   []any{"a"},
	}, src)
	require.NoError(t, err)
	require.NoError(t, site.Unset("comments"))

	m := site.ToMap()
	assert.Equal(t, "site", m["type"])
	assert.Equal(t, "dcim/sites", m["api_path"])
	assert.Equal(t, "dc1", m["display_name"])
	assert.Equal(t, true, m["is_new"])
	assert.Equal(t, "vcenter01", m["source"])
	assert.Equal(t, []string{"comments"}, m["unset"])

	data := m["data"].(map[string]any)
	assert.Equal(t, "<tenant 'acme'>", data["tenant"])
	assert.Equal(t, []string{"<tag 'a'>"}, data["tags"])
	assert.Equal(t, "ref(tenant)", m["schema"].(map[string]string)["tenant"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(site.String()), &decoded))
	assert.Equal(t, "dc1", decoded["display_name"])
	assert.Equal(t, "<site 'dc1'>", site.Repr())
}
