package object_test

import (
	"testing"

	"netbox-sync/core/inventory"
	"netbox-sync/core/schema"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testSource string

func (s testSource) Name() string { return string(s) }

const src = testSource("vcenter01")

func newInventory(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.New(schema.Default(), zap.NewNop())
	require.NoError(t, err)
	return inv
}

// observeLogs routes the global logger into an observer for the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}
