package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"netbox-sync/core/database"
	"netbox-sync/core/inventory"
	"netbox-sync/core/schema"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrSchemaMismatch is returned by Verify when the records table is incomplete.
var ErrSchemaMismatch = errors.New("snapshot table schema mismatch")

// Store mirrors remote state in a gorm database.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a snapshot store.
func NewStore(db *gorm.DB, logger *zap.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}, nil
}

// Migrate creates or updates the records table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate snapshot table: %w", err)
	}
	return nil
}

// Verify checks that the records table carries every column the store reads.
func (s *Store) Verify() error {
	missing, err := database.MissingColumns(s.db, TableName, requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

// Load reads the records of every registered type, one query per type run
// concurrently. Each mapping carries its remote id under "id".
func (s *Store) Load(ctx context.Context, reg *schema.Registry) (map[schema.ObjectType][]map[string]any, error) {
	var (
		mu  sync.Mutex
		out = make(map[schema.ObjectType][]map[string]any)
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range reg.Types() {
		t := t
		g.Go(func() error {
			var records []Record
			if err := s.db.WithContext(ctx).Where("object_type = ?", string(t)).Order("id").Find(&records).Error; err != nil {
				return fmt.Errorf("failed to load %s records: %w", t, err)
			}

			items := make([]map[string]any, 0, len(records))
			for _, r := range records {
				data, err := decode(r)
				if err != nil {
					return err
				}
				items = append(items, data)
			}

			mu.Lock()
			out[t] = items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// HydrateInventory loads the snapshot into inv in dependency order and
// resolves every relation. It returns the number of hydrated objects.
func (s *Store) HydrateInventory(ctx context.Context, inv *inventory.Inventory) (int, error) {
	reg := inv.Registry()
	data, err := s.Load(ctx, reg)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, t := range reg.Types() {
		for _, item := range data[t] {
			if _, err := inv.Hydrate(t, item); err != nil {
				return count, fmt.Errorf("failed to hydrate %s %v: %w", t, item["id"], err)
			}
			count++
		}
	}

	if err := inv.ResolveAll(); err != nil {
		return count, err
	}

	s.logger.Info("Snapshot loaded", zap.Int("objects", count))
	return count, nil
}

func decode(r Record) (map[string]any, error) {
	data := make(map[string]any)
	if err := json.Unmarshal([]byte(r.Data), &data); err != nil {
		return nil, fmt.Errorf("failed to decode %s record %d: %w", r.ObjectType, r.ID, err)
	}
	data["id"] = int(r.ID)
	return data, nil
}

func encode(data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
