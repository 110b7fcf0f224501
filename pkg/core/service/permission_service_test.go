package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops.com/console/internal/testutils"
	"storeops.com/console/pkg/core/permission"
	"storeops.com/console/pkg/core/service"
	"storeops.com/console/pkg/shared/client"
)

func newPermissionService(t *testing.T, api *testutils.FakeAPI) *service.PermissionService {
	t.Helper()
	server := api.Start(t)
	c := client.New(server.URL, client.StaticToken(api.Token))
	return service.NewPermissionService(c)
}

func seedPermissions(api *testutils.FakeAPI, storeID int64) {
	api.Permissions[storeID] = []map[string]any{
		{"permission_id": 1, "permission_code": "orders.view", "feature_group": "orders", "store_enabled": 1},
		{"permission_id": 2, "permission_code": "orders.cancel", "feature_group": "orders", "store_enabled": 0},
		{"permission_id": 3, "permission_code": "reports.view", "feature_group": "reports", "store_enabled": nil},
	}
}

func TestPermissionServiceStoreCatalog(t *testing.T) {
	api := testutils.NewFakeAPI()
	seedPermissions(api, 7)

	perms := newPermissionService(t, api)
	entries, err := perms.StoreCatalog(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Enabled)
	assert.False(t, entries[1].Enabled)
	assert.True(t, entries[2].Enabled, "null store_enabled means enabled by default")
}

func TestPermissionServiceStoreCatalogEmpty(t *testing.T) {
	api := testutils.NewFakeAPI()
	perms := newPermissionService(t, api)

	entries, err := perms.StoreCatalog(context.Background(), 42)
	require.NoError(t, err, "an empty catalog is a successful fetch")
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestPermissionServiceUpdateStore(t *testing.T) {
	api := testutils.NewFakeAPI()
	seedPermissions(api, 7)

	perms := newPermissionService(t, api)
	entries, err := perms.StoreCatalog(context.Background(), 7)
	require.NoError(t, err)

	entries = permission.Toggle(entries, 1)
	entries = permission.Toggle(entries, 2)

	echoed, err := perms.UpdateStore(context.Background(), 7, permission.ToUpdateRequest(entries))
	require.NoError(t, err)
	require.Len(t, echoed, 3)
	assert.False(t, echoed[0].Enabled)
	assert.True(t, echoed[1].Enabled)
	assert.Equal(t, 1, api.PermissionSaves)
}

func TestPermissionServiceGlobalCatalog(t *testing.T) {
	api := testutils.NewFakeAPI()
	api.GlobalPermissions = []map[string]any{
		{"permission_id": 10, "permission_code": "customers.view", "feature_group": "customers"},
	}

	perms := newPermissionService(t, api)
	entries, err := perms.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].ID)
	assert.True(t, entries[0].Enabled, "global entries carry no store_enabled and default to enabled")
}
