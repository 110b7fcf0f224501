package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops.com/console/internal/testutils"
	"storeops.com/console/pkg/core/flagset"
	"storeops.com/console/pkg/core/service"
	"storeops.com/console/pkg/shared/client"
)

func newStoreService(t *testing.T, api *testutils.FakeAPI) *service.StoreService {
	t.Helper()
	server := api.Start(t)
	c := client.New(server.URL, client.StaticToken(api.Token))
	return service.NewStoreService(c)
}

func TestStoreServiceGet(t *testing.T) {
	api := testutils.NewFakeAPI()
	api.Token = "test-token"
	id := api.SeedStore(map[string]any{
		"store_name":     "Corner Shop",
		"owner_name":     "Asha",
		"owner_email":    "asha@example.com",
		"is_active":      1,
		"customer_count": 12,
		"total_revenue":  4200.5,
		"billing_status": "active",
		"sms_enabled":    0,
		"email_enabled":  1,
		"max_products":   50,
	})

	stores := newStoreService(t, api)
	detail, err := stores.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, detail.Store.ID)
	assert.Equal(t, "Corner Shop", detail.Store.StoreName)
	assert.True(t, detail.Store.IsActive)
	assert.Equal(t, int64(12), detail.Store.CustomerCount)
	assert.Equal(t, 4200.5, detail.Store.TotalRevenue)

	assert.Equal(t, flagset.BillingActive, detail.Flags.BillingStatus)
	assert.False(t, detail.Flags.Flags[flagset.FlagSMS])
	assert.True(t, detail.Flags.Flags[flagset.FlagEmail])
	require.NotNil(t, detail.Flags.Limits[flagset.LimitProducts])
	assert.Equal(t, int64(50), *detail.Flags.Limits[flagset.LimitProducts])
}

func TestStoreServiceGetNotFound(t *testing.T) {
	api := testutils.NewFakeAPI()
	stores := newStoreService(t, api)

	_, err := stores.Get(context.Background(), 9999)
	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "store not found", apiErr.Message)
}

func TestStoreServiceUpdateFeaturesEchoesRecord(t *testing.T) {
	api := testutils.NewFakeAPI()
	id := api.SeedStore(map[string]any{"store_name": "Echo", "orders_enabled": 1})

	stores := newStoreService(t, api)
	fs := flagset.Default(id)
	fs.Flags[flagset.FlagOrders] = false

	echoed, err := stores.UpdateFeatures(context.Background(), id, fs.UpdatePayload())
	require.NoError(t, err)
	require.NotNil(t, echoed)
	assert.False(t, echoed.Flags[flagset.FlagOrders])
	assert.Equal(t, 1, api.FeatureSaves)
}

func TestStoreServiceCreate(t *testing.T) {
	api := testutils.NewFakeAPI()
	stores := newStoreService(t, api)

	req := service.CreateStoreRequest{
		StoreName:     testutils.RandomStoreName(),
		OwnerName:     "Dev",
		OwnerEmail:    testutils.RandomEmail(),
		OwnerPhone:    "9999999999",
		OwnerPassword: "secret-pass",
		UpdateRequest: flagset.Default(0).UpdatePayload(),
		Permissions:   []int64{1, 2, 3},
	}

	created, err := stores.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotZero(t, created.Store.ID)
	assert.Equal(t, req.StoreName, created.Store.StoreName)
	assert.Equal(t, req.OwnerEmail, created.OwnerCredentials.Email)
	assert.Equal(t, "secret-pass", created.OwnerCredentials.Password)
}

func TestStoreServiceCreateValidation(t *testing.T) {
	api := testutils.NewFakeAPI()
	stores := newStoreService(t, api)

	_, err := stores.Create(context.Background(), service.CreateStoreRequest{
		StoreName:  "No Owner",
		OwnerEmail: "not-an-email",
	})
	require.Error(t, err)
	_, isAPIErr := client.AsAPIError(err)
	assert.False(t, isAPIErr, "validation fails before any request is made")
}

func TestStoreServiceCreateRejectsNegativeLimit(t *testing.T) {
	api := testutils.NewFakeAPI()
	stores := newStoreService(t, api)

	negative := int64(-5)
	payload := flagset.Default(0).UpdatePayload()
	payload.MaxProducts = &negative

	_, err := stores.Create(context.Background(), service.CreateStoreRequest{
		StoreName:     "Bad Limits",
		OwnerName:     "Dev",
		OwnerEmail:    testutils.RandomEmail(),
		OwnerPhone:    "9999999999",
		OwnerPassword: "secret-pass",
		UpdateRequest: payload,
	})
	require.Error(t, err)
	_, isAPIErr := client.AsAPIError(err)
	assert.False(t, isAPIErr, "negative limits never reach the wire")
}

func TestStoreServiceListAndDelete(t *testing.T) {
	api := testutils.NewFakeAPI()
	first := api.SeedStore(map[string]any{"store_name": "One"})
	api.SeedStore(map[string]any{"store_name": "Two"})

	stores := newStoreService(t, api)

	listed, err := stores.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, stores.Delete(context.Background(), first))

	listed, err = stores.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "Two", listed[0].StoreName)
}
