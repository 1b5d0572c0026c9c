package snapshot

import (
	"context"
	"errors"
	"fmt"

	"netbox-sync/core/schema"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a remote id has no record.
var ErrNotFound = errors.New("snapshot record not found")

// Create stores a new object and returns its remote id.
func (s *Store) Create(ctx context.Context, sc *schema.Schema, payload map[string]any) (int, error) {
	data, err := encode(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s payload: %w", sc.Name, err)
	}

	record := Record{ObjectType: string(sc.Type), Data: data}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", sc.Name, err)
	}

	s.logger.Debug("Snapshot record created", zap.String("object_type", sc.Name), zap.Uint("id", record.ID))
	return int(record.ID), nil
}

// Update merges payload into the stored object.
func (s *Store) Update(ctx context.Context, sc *schema.Schema, id int, payload map[string]any) error {
	return s.modify(ctx, sc, id, func(data map[string]any) {
		for k, v := range payload {
			data[k] = v
		}
	})
}

// Unset sets the given attributes of the stored object to null.
func (s *Store) Unset(ctx context.Context, sc *schema.Schema, id int, attrs []string) error {
	return s.modify(ctx, sc, id, func(data map[string]any) {
		for _, name := range attrs {
			data[name] = nil
		}
	})
}

func (s *Store) modify(ctx context.Context, sc *schema.Schema, id int, change func(map[string]any)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record Record
		err := tx.Where("id = ? AND object_type = ?", id, string(sc.Type)).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, sc.Name, id)
		}
		if err != nil {
			return fmt.Errorf("failed to read %s %d: %w", sc.Name, id, err)
		}

		data, err := decode(record)
		if err != nil {
			return err
		}
		delete(data, "id")
		change(data)

		if record.Data, err = encode(data); err != nil {
			return fmt.Errorf("failed to encode %s %d: %w", sc.Name, id, err)
		}
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to write %s %d: %w", sc.Name, id, err)
		}
		return nil
	})
}
