package snapshot

import (
	"context"
	"testing"

	"netbox-sync/core/database"
	"netbox-sync/core/inventory"
	"netbox-sync/core/object"
	"netbox-sync/core/reconcile"
	"netbox-sync/core/schema"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type testSource string

func (s testSource) Name() string { return string(s) }

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store, err := NewStore(db, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	store, err := NewStore(db, nil)
	require.NoError(t, err)
	return store, mock
}

func newInventory(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.New(schema.Default(), zap.NewNop())
	require.NoError(t, err)
	return inv
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil, nil)
	assert.Error(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	src := testSource("inventory.yaml")

	inv := newInventory(t)
	site, err := inv.GetOrCreate(schema.Site, map[string]any{"name": "dc1", "tenant": map[string]any{"name": "acme"}}, src)
	require.NoError(t, err)
	site.AddTags("prod")

	ip, err := inv.GetOrCreate(schema.IPAddress, map[string]any{
		"address":              "10.0.0.1/24",
		"assigned_object_type": "dcim.interface",
		"assigned_object_id":   map[string]any{"name": "eth0", "device": map[string]any{"name": "web01", "site": site}},
	}, src)
	require.NoError(t, err)

	device := inv.FindByData(schema.Device, map[string]any{"name": "web01", "site": site})
	require.NotNil(t, device)
	require.NoError(t, device.Update(map[string]any{"primary_ip4": ip, "status": "active"}, false, src))

	iface := inv.FindByData(schema.Interface, map[string]any{"name": "eth0", "device": device})
	require.NotNil(t, iface)
	require.NoError(t, iface.Update(map[string]any{
		"mode":         "tagged",
		"tagged_vlans": []any{map[string]any{"vid": 10, "name": "users", "site": site}},
	}, false, src))

	plan, executed, err := reconcile.PlanAndApply(ctx, inv, store, reconcile.ReconcileOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 7, plan.Summary.Creates)
	assert.Equal(t, 8, executed)

	loaded := newInventory(t)
	count, err := store.HydrateInventory(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	dev := loaded.FindByRemoteID(schema.Device, device.RemoteID())
	require.NotNil(t, dev)
	assert.Equal(t, "web01 (dc1)", dev.DisplayName(true))
	assert.Equal(t, "active", dev.Get("status"))

	primary, ok := dev.Get("primary_ip4").(*object.Entity)
	require.True(t, ok)
	assert.Same(t, loaded.FindByRemoteID(schema.IPAddress, ip.RemoteID()), primary)

	assigned, ok := primary.Get("assigned_object_id").(*object.Entity)
	require.True(t, ok)
	assert.Equal(t, schema.Interface, assigned.Type())
	assert.Equal(t, "eth0 (web01)", assigned.DisplayName(true))

	vlans, ok := assigned.Get("tagged_vlans").(*object.Collection)
	require.True(t, ok)
	assert.Equal(t, 1, vlans.Len())

	loadedSite := loaded.FindByRemoteID(schema.Site, site.RemoteID())
	require.NotNil(t, loadedSite)
	assert.Equal(t, []string{"prod"}, loadedSite.TagNames())
	tenant, ok := loadedSite.Get("tenant").(*object.Entity)
	require.True(t, ok)
	assert.Equal(t, "acme", tenant.DisplayName(false))

	assert.Empty(t, reconcile.BuildPlan(loaded).Actions)
}

func TestStore_UpdateAndUnset(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	sc := schema.Default().MustLookup(schema.Tenant)

	id, err := store.Create(ctx, sc, map[string]any{"name": "acme", "slug": "acme", "comments": "x"})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, sc, id, map[string]any{"description": "main"}))
	require.NoError(t, store.Unset(ctx, sc, id, []string{"comments"}))

	data, err := store.Load(ctx, schema.Default())
	require.NoError(t, err)
	require.Len(t, data[schema.Tenant], 1)
	assert.Equal(t, map[string]any{
		"id":          id,
		"name":        "acme",
		"slug":        "acme",
		"comments":    nil,
		"description": "main",
	}, data[schema.Tenant][0])
	assert.Empty(t, data[schema.Site])

	err = store.Update(ctx, sc, id+100, map[string]any{"name": "other"})
	assert.ErrorIs(t, err, ErrNotFound)

	site := schema.Default().MustLookup(schema.Site)
	err = store.Unset(ctx, site, id, []string{"tenant"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Verify(t *testing.T) {
	t.Run("Migrated", func(t *testing.T) {
		assert.NoError(t, setupStore(t).Verify())
	})

	t.Run("MissingColumns", func(t *testing.T) {
		store, mock := setupMockStore(t)
		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
			AddRow("object_type", "varchar(32)", "NO", "MUL", nil, "").
			AddRow("data", "text", "NO", "", nil, "")
		mock.ExpectQuery("SHOW COLUMNS FROM `snapshot_records`").WillReturnRows(rows)

		err := store.Verify()
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Contains(t, err.Error(), "created_at, updated_at")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_CreateFails(t *testing.T) {
	store, mock := setupMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `snapshot_records`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	id, err := store.Create(context.Background(), schema.Default().MustLookup(schema.Tag), map[string]any{"name": "prod"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadFails(t *testing.T) {
	store, mock := setupMockStore(t)
	mock.MatchExpectationsInOrder(false)
	for range schema.Default().Types() {
		mock.ExpectQuery("SELECT \\* FROM `snapshot_records`").WillReturnError(assert.AnError)
	}

	_, err := store.Load(context.Background(), schema.Default())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, store.db.Create(&Record{ObjectType: string(schema.Tag), Data: "{not json"}).Error)

	_, err := store.HydrateInventory(ctx, newInventory(t))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode tag record")
}
