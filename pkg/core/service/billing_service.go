package service

import (
	"context"
	"fmt"

	"storeops.com/console/pkg/shared/client"
)

type Invoice struct {
	InvoiceID               int64   `json:"invoice_id"`
	InvoiceNumber           string  `json:"invoice_number"`
	StoreID                 int64   `json:"store_id"`
	StoreName               string  `json:"store_name"`
	BillingMonth            string  `json:"billing_month"`
	BaseAmount              float64 `json:"base_amount"`
	SMSCharges              float64 `json:"sms_charges"`
	PushNotificationCharges float64 `json:"push_notification_charges"`
	AdditionalCharges       float64 `json:"additional_charges"`
	TotalAmount             float64 `json:"total_amount"`
	PaymentStatus           string  `json:"payment_status"`
	DueDate                 string  `json:"due_date"`
	PaymentDate             string  `json:"payment_date"`
	PaymentMethod           string  `json:"payment_method"`
	PaymentReference        string  `json:"payment_reference"`
	PaymentNotes            string  `json:"payment_notes"`
}

type CreateInvoiceRequest struct {
	StoreID                 int64   `json:"store_id" validate:"required"`
	BillingMonth            string  `json:"billing_month" validate:"required"`
	BaseAmount              float64 `json:"base_amount"`
	SMSCharges              float64 `json:"sms_charges"`
	PushNotificationCharges float64 `json:"push_notification_charges"`
	AdditionalCharges       float64 `json:"additional_charges"`
}

type PaymentUpdateRequest struct {
	PaymentStatus    string `json:"payment_status" validate:"required,oneof=pending paid overdue cancelled"`
	PaymentDate      string `json:"payment_date"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	PaymentNotes     string `json:"payment_notes"`
}

type BillingService struct {
	client *client.Client
}

func NewBillingService(c *client.Client) *BillingService {
	return &BillingService{client: c}
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]Invoice, error) {
	invoices := []Invoice{}
	if err := s.client.Get(ctx, basePath+"/billing/invoices", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *BillingService) GetInvoice(ctx context.Context, invoiceID int64) (*Invoice, error) {
	var invoice Invoice
	if err := s.client.Get(ctx, fmt.Sprintf("%s/billing/invoices/%d", basePath, invoiceID), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *BillingService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid create invoice request: %w", err)
	}
	// The console lets operators pick a month; the API wants a date, so
	// YYYY-MM is anchored to the first of the month.
	if len(req.BillingMonth) == 7 {
		req.BillingMonth += "-01"
	}
	return s.client.Post(ctx, basePath+"/billing/invoices", req, nil)
}

func (s *BillingService) UpdatePayment(ctx context.Context, invoiceID int64, req PaymentUpdateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid payment update request: %w", err)
	}
	return s.client.Put(ctx, fmt.Sprintf("%s/billing/invoices/%d/payment", basePath, invoiceID), req, nil)
}
