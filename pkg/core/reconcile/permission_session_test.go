package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops.com/console/pkg/core/reconcile"
	"storeops.com/console/pkg/shared/event"
)

func findEnabled(t *testing.T, s *reconcile.PermissionSession, id int64) bool {
	t.Helper()
	for _, e := range s.Entries() {
		if e.ID == id {
			return e.Enabled
		}
	}
	t.Fatalf("permission %d not in catalog", id)
	return false
}

func TestPermissionSessionToggleAndSave(t *testing.T) {
	f := newFixture(t)
	id := f.api.SeedStore(map[string]any{"store_name": "Perm Shop"})
	f.api.Permissions[id] = []map[string]any{
		{"permission_id": 1, "permission_code": "orders.view", "feature_group": "orders", "store_enabled": 1},
		{"permission_id": 2, "permission_code": "orders.refund", "feature_group": "orders", "store_enabled": 0},
		{"permission_id": 3, "permission_code": "reports.view", "feature_group": nil},
	}

	session := reconcile.NewPermissionSession(f.perms, f.bus, id)
	require.NoError(t, session.Load(context.Background()))
	assert.Equal(t, reconcile.StateReady, session.State())
	assert.False(t, session.Empty())

	assert.True(t, findEnabled(t, session, 1))
	assert.False(t, findEnabled(t, session, 2))
	assert.True(t, findEnabled(t, session, 3), "absent store_enabled means granted")

	require.NoError(t, session.Toggle(1))
	require.NoError(t, session.Toggle(2))
	require.NoError(t, session.Save(context.Background()))
	assert.Equal(t, 1, f.api.PermissionSaves)

	assert.False(t, findEnabled(t, session, 1))
	assert.True(t, findEnabled(t, session, 2))

	// Reload from the server to confirm the full catalog was persisted.
	fresh := reconcile.NewPermissionSession(f.perms, f.bus, id)
	require.NoError(t, fresh.Load(context.Background()))
	assert.False(t, findEnabled(t, fresh, 1))
	assert.True(t, findEnabled(t, fresh, 2))
	assert.True(t, findEnabled(t, fresh, 3))
}

func TestPermissionSessionSaveFailureRetainsToggles(t *testing.T) {
	f := newFixture(t)
	id := f.api.SeedStore(map[string]any{"store_name": "Flaky"})
	f.api.Permissions[id] = []map[string]any{
		{"permission_id": 7, "permission_code": "products.edit", "feature_group": "products", "store_enabled": 1},
	}

	session := reconcile.NewPermissionSession(f.perms, f.bus, id)
	require.NoError(t, session.Load(context.Background()))
	require.NoError(t, session.Toggle(7))

	f.api.FailNextWith = "plan does not include permissions"
	require.Error(t, session.Save(context.Background()))

	assert.Equal(t, reconcile.StateReady, session.State())
	assert.False(t, findEnabled(t, session, 7), "toggle survives the failed save")

	evs := f.events()
	require.NotEmpty(t, evs)
	assert.Equal(t, "plan does not include permissions", evs[len(evs)-1].Message)
}

func TestPermissionSessionRejectsDoubleSave(t *testing.T) {
	f := newFixture(t)
	id := f.api.SeedStore(map[string]any{"store_name": "Busy Perms"})
	f.api.Permissions[id] = []map[string]any{
		{"permission_id": 4, "permission_code": "customers.view", "feature_group": "customers", "store_enabled": 1},
	}

	session := reconcile.NewPermissionSession(f.perms, f.bus, id)
	require.NoError(t, session.Load(context.Background()))
	require.NoError(t, session.Toggle(4))

	gate := make(chan struct{})
	f.api.SaveGate = gate

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- session.Save(context.Background())
	}()

	require.Eventually(t, func() bool {
		return session.State() == reconcile.StateSaving
	}, time.Second, 5*time.Millisecond)

	err := session.Save(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrSaveInFlight, "second save is rejected, not queued")
	assert.ErrorIs(t, session.Toggle(4), reconcile.ErrSaveInFlight)

	close(gate)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, f.api.PermissionSaves, "exactly one request went out")
	assert.False(t, findEnabled(t, session, 4))
}

func TestPermissionSessionEmptyCatalog(t *testing.T) {
	f := newFixture(t)
	id := f.api.SeedStore(map[string]any{"store_name": "Bare"})

	session := reconcile.NewPermissionSession(f.perms, f.bus, id)
	require.NoError(t, session.Load(context.Background()))
	assert.True(t, session.Empty())

	evs := f.events()
	require.NotEmpty(t, evs)
	assert.Equal(t, event.LevelWarning, evs[len(evs)-1].Level)
}

func TestPermissionSessionGroups(t *testing.T) {
	f := newFixture(t)
	id := f.api.SeedStore(map[string]any{"store_name": "Grouped"})
	f.api.Permissions[id] = []map[string]any{
		{"permission_id": 1, "permission_code": "orders.view", "feature_group": "orders"},
		{"permission_id": 2, "permission_code": "misc.thing"},
		{"permission_id": 3, "permission_code": "orders.refund", "feature_group": "orders"},
	}

	session := reconcile.NewPermissionSession(f.perms, f.bus, id)
	require.NoError(t, session.Load(context.Background()))

	groups := session.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "orders", groups[0].Name)
	require.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "other", groups[1].Name)
}
