package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops.com/console/internal/testutils"
	"storeops.com/console/pkg/core/service"
	"storeops.com/console/pkg/shared/client"
)

func newBillingService(t *testing.T, api *testutils.FakeAPI) *service.BillingService {
	t.Helper()
	server := api.Start(t)
	c := client.New(server.URL, client.StaticToken(api.Token))
	return service.NewBillingService(c)
}

func TestBillingServiceCreateNormalizesMonth(t *testing.T) {
	api := testutils.NewFakeAPI()
	billing := newBillingService(t, api)

	storeID := testutils.Random(1, 500)
	err := billing.CreateInvoice(context.Background(), service.CreateInvoiceRequest{
		StoreID:      storeID,
		BillingMonth: "2026-08",
		BaseAmount:   999,
	})
	require.NoError(t, err)

	invoices, err := billing.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, storeID, invoices[0].StoreID)
	assert.Equal(t, "2026-08-01", invoices[0].BillingMonth, "YYYY-MM is anchored to the first of the month")
	assert.Equal(t, float64(999), invoices[0].BaseAmount)
	assert.NotEmpty(t, invoices[0].InvoiceNumber)
}

func TestBillingServiceCreateValidation(t *testing.T) {
	api := testutils.NewFakeAPI()
	billing := newBillingService(t, api)

	err := billing.CreateInvoice(context.Background(), service.CreateInvoiceRequest{BillingMonth: "2026-08"})
	require.Error(t, err, "store id is required")
}

func TestBillingServiceUpdatePayment(t *testing.T) {
	api := testutils.NewFakeAPI()
	billing := newBillingService(t, api)

	require.NoError(t, billing.CreateInvoice(context.Background(), service.CreateInvoiceRequest{
		StoreID:      testutils.Random(1, 500),
		BillingMonth: "2026-07-01",
	}))
	invoices, err := billing.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	err = billing.UpdatePayment(context.Background(), invoices[0].InvoiceID, service.PaymentUpdateRequest{
		PaymentStatus:    "paid",
		PaymentDate:      "2026-08-15",
		PaymentMethod:    "bank_transfer",
		PaymentReference: "TXN-1",
	})
	require.NoError(t, err)

	updated, err := billing.GetInvoice(context.Background(), invoices[0].InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.PaymentStatus)
	assert.Equal(t, "TXN-1", updated.PaymentReference)
}

func TestBillingServiceUpdatePaymentValidation(t *testing.T) {
	api := testutils.NewFakeAPI()
	billing := newBillingService(t, api)

	err := billing.UpdatePayment(context.Background(), 1, service.PaymentUpdateRequest{
		PaymentStatus: "definitely-paid",
	})
	require.Error(t, err, "unknown payment status is rejected locally")
}
