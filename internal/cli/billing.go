package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/service"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Manage platform invoices",
}

var billingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices across all stores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		invoices, err := service.NewBillingService(c).ListInvoices(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNUMBER\tSTORE\tMONTH\tTOTAL\tSTATUS")
		for _, inv := range invoices {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\n",
				inv.InvoiceID, inv.InvoiceNumber, inv.StoreName,
				inv.BillingMonth, inv.TotalAmount, inv.PaymentStatus)
		}
		return w.Flush()
	},
}

var billingShowCmd = &cobra.Command{
	Use:   "show <invoice-id>",
	Short: "Show one invoice with its charge breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice id %q", args[0])
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		inv, err := service.NewBillingService(c).GetInvoice(cmd.Context(), invoiceID)
		if err != nil {
			return err
		}

		fmt.Printf("Invoice %s  store %s  month %s\n", inv.InvoiceNumber, inv.StoreName, inv.BillingMonth)
		fmt.Printf("Base %.2f + SMS %.2f + push %.2f + extra %.2f = %.2f\n",
			inv.BaseAmount, inv.SMSCharges, inv.PushNotificationCharges,
			inv.AdditionalCharges, inv.TotalAmount)
		fmt.Printf("Status: %s", inv.PaymentStatus)
		if inv.PaymentDate != "" {
			fmt.Printf("  paid %s via %s", inv.PaymentDate, inv.PaymentMethod)
		}
		fmt.Println()
		return nil
	},
}

var invoiceFlags struct {
	storeID    int64
	month      string
	baseAmount float64
	smsCharges float64
	pushAmount float64
	extra      float64
}

var billingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice for a store's billing month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		req := service.CreateInvoiceRequest{
			StoreID:                 invoiceFlags.storeID,
			BillingMonth:            invoiceFlags.month,
			BaseAmount:              invoiceFlags.baseAmount,
			SMSCharges:              invoiceFlags.smsCharges,
			PushNotificationCharges: invoiceFlags.pushAmount,
			AdditionalCharges:       invoiceFlags.extra,
		}
		if err := service.NewBillingService(c).CreateInvoice(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Printf("Invoice created for store #%d, month %s\n", req.StoreID, req.BillingMonth)
		return nil
	},
}

var paymentFlags struct {
	status    string
	date      string
	method    string
	reference string
	notes     string
}

var billingPayCmd = &cobra.Command{
	Use:   "pay <invoice-id>",
	Short: "Record a payment status change on an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice id %q", args[0])
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		req := service.PaymentUpdateRequest{
			PaymentStatus:    paymentFlags.status,
			PaymentDate:      paymentFlags.date,
			PaymentMethod:    paymentFlags.method,
			PaymentReference: paymentFlags.reference,
			PaymentNotes:     paymentFlags.notes,
		}
		if err := service.NewBillingService(c).UpdatePayment(cmd.Context(), invoiceID, req); err != nil {
			return err
		}
		fmt.Printf("Invoice #%d marked %s\n", invoiceID, req.PaymentStatus)
		return nil
	},
}

func init() {
	f := billingCreateCmd.Flags()
	f.Int64Var(&invoiceFlags.storeID, "store", 0, "store id")
	f.StringVar(&invoiceFlags.month, "month", "", "billing month, YYYY-MM")
	f.Float64Var(&invoiceFlags.baseAmount, "base", 0, "base subscription amount")
	f.Float64Var(&invoiceFlags.smsCharges, "sms", 0, "SMS usage charges")
	f.Float64Var(&invoiceFlags.pushAmount, "push", 0, "push notification charges")
	f.Float64Var(&invoiceFlags.extra, "extra", 0, "additional charges")
	billingCreateCmd.MarkFlagRequired("store")
	billingCreateCmd.MarkFlagRequired("month")

	p := billingPayCmd.Flags()
	p.StringVar(&paymentFlags.status, "status", "paid", "payment status (pending, paid, overdue, cancelled)")
	p.StringVar(&paymentFlags.date, "date", "", "payment date, YYYY-MM-DD")
	p.StringVar(&paymentFlags.method, "method", "", "payment method")
	p.StringVar(&paymentFlags.reference, "reference", "", "payment reference")
	p.StringVar(&paymentFlags.notes, "notes", "", "notes")

	billingCmd.AddCommand(billingListCmd, billingShowCmd, billingCreateCmd, billingPayCmd)
	rootCmd.AddCommand(billingCmd)
}
