package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"netbox-sync/core/config"
	"netbox-sync/core/database"
	"netbox-sync/core/inventory"
	"netbox-sync/core/logger"
	"netbox-sync/core/schema"
	"netbox-sync/feature/snapshot"
	"netbox-sync/feature/source"

	"go.uber.org/zap"
)

// setup loads the configuration and installs the global logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)
	return cfg, l, nil
}

// loadInventory hydrates an inventory from the snapshot database and applies
// the source file on top of it.
func loadInventory(ctx context.Context, cfg *config.Config, l *zap.Logger, sourceFile string) (*inventory.Inventory, *snapshot.Store, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	store, err := snapshot.NewStore(db, l)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, nil, err
	}
	if err := store.Verify(); err != nil {
		return nil, nil, err
	}

	inv, err := inventory.New(schema.Default(), l)
	if err != nil {
		return nil, nil, err
	}
	if _, err := store.HydrateInventory(ctx, inv); err != nil {
		return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if sourceFile == "" {
		return inv, store, nil
	}
	if _, err := os.Stat(sourceFile); errors.Is(err, os.ErrNotExist) {
		l.Warn("Source file not found, using snapshot only", zap.String("file", sourceFile))
		return inv, store, nil
	}

	src, err := source.Load(sourceFile)
	if err != nil {
		return nil, nil, err
	}
	if _, err := src.Apply(inv, l); err != nil {
		return nil, nil, err
	}
	return inv, store, nil
}
