package flagset

import (
	"errors"
	"fmt"
)

type BillingStatus string

const (
	BillingPending   BillingStatus = "pending"
	BillingActive    BillingStatus = "active"
	BillingSuspended BillingStatus = "suspended"
	BillingExpired   BillingStatus = "expired"
)

func (s BillingStatus) Valid() bool {
	switch s {
	case BillingPending, BillingActive, BillingSuspended, BillingExpired:
		return true
	}
	return false
}

// Known flag fields, in the order the console presents them.
const (
	FlagPushNotifications = "push_notifications_enabled"
	FlagSMS               = "sms_enabled"
	FlagWhatsApp          = "whatsapp_enabled"
	FlagEmail             = "email_enabled"
	FlagAddOptions        = "add_options_enabled"
	FlagCouponCodes       = "coupon_codes_enabled"
	FlagAppSettings       = "app_settings_enabled"
	FlagCustomers         = "customers_enabled"
	FlagEmployees         = "employees_enabled"
	FlagHomeConfig        = "home_config_enabled"
	FlagReports           = "reports_enabled"
	FlagBranches          = "branches_enabled"
	FlagCategories        = "categories_enabled"
	FlagProducts          = "products_enabled"
	FlagOrders            = "orders_enabled"
	FlagNotifications     = "notifications_enabled"
	FlagCommunicationLogs = "communication_logs_enabled"
	FlagBillings          = "billings_enabled"
)

const (
	LimitCategories = "max_categories"
	LimitProducts   = "max_products"
	LimitVariants   = "max_variants"
	LimitBranches   = "max_branches"
)

var FlagNames = []string{
	FlagPushNotifications,
	FlagSMS,
	FlagWhatsApp,
	FlagEmail,
	FlagAddOptions,
	FlagCouponCodes,
	FlagAppSettings,
	FlagCustomers,
	FlagEmployees,
	FlagHomeConfig,
	FlagReports,
	FlagBranches,
	FlagCategories,
	FlagProducts,
	FlagOrders,
	FlagNotifications,
	FlagCommunicationLogs,
	FlagBillings,
}

var LimitNames = []string{
	LimitCategories,
	LimitProducts,
	LimitVariants,
	LimitBranches,
}

// defaults is the single authoritative default table applied when the server
// record is missing a flag. Channel flags other than push and SMS default
// off; every feature-area flag defaults on.
var defaults = map[string]bool{
	FlagPushNotifications: true,
	FlagSMS:               true,
	FlagWhatsApp:          false,
	FlagEmail:             false,
	FlagAddOptions:        true,
	FlagCouponCodes:       true,
	FlagAppSettings:       true,
	FlagCustomers:         true,
	FlagEmployees:         true,
	FlagHomeConfig:        true,
	FlagReports:           true,
	FlagBranches:          true,
	FlagCategories:        true,
	FlagProducts:          true,
	FlagOrders:            true,
	FlagNotifications:     true,
	FlagCommunicationLogs: true,
	FlagBillings:          true,
}

// Labels maps flag fields to the names operators know them by.
var Labels = map[string]string{
	FlagPushNotifications: "Push Notifications",
	FlagSMS:               "SMS",
	FlagWhatsApp:          "WhatsApp",
	FlagEmail:             "Email",
	FlagAddOptions:        "Add Options",
	FlagCouponCodes:       "Coupon Codes",
	FlagAppSettings:       "App Settings",
	FlagCustomers:         "Customer List",
	FlagEmployees:         "Employee Management",
	FlagHomeConfig:        "Home Config",
	FlagReports:           "Reports",
	FlagBranches:          "Branches Management",
	FlagCategories:        "Categories Management",
	FlagProducts:          "Products Management",
	FlagOrders:            "Orders Management",
	FlagNotifications:     "Notifications",
	FlagCommunicationLogs: "Communication Logs",
	FlagBillings:          "Billing Access",
}

var (
	ErrUnknownFlag   = errors.New("unknown feature flag")
	ErrUnknownLimit  = errors.New("unknown limit")
	ErrNegativeLimit = errors.New("limit must be null or non-negative")
)

// FlagSet is the strict in-memory shape of one tenant's feature flags, usage
// limits and billing sub-state. Flags always holds a defined value for every
// name in FlagNames; Limits holds every name in LimitNames with nil meaning
// unlimited.
type FlagSet struct {
	StoreID          int64
	Flags            map[string]bool
	Limits           map[string]*int64
	BillingStatus    BillingStatus
	BillingPaidUntil *string
	LastBillingDate  *string
}

// Default returns a FlagSet holding the canonical defaults for a tenant.
func Default(storeID int64) FlagSet {
	fs := FlagSet{
		StoreID:       storeID,
		Flags:         make(map[string]bool, len(FlagNames)),
		Limits:        make(map[string]*int64, len(LimitNames)),
		BillingStatus: BillingPending,
	}
	for _, name := range FlagNames {
		fs.Flags[name] = defaults[name]
	}
	for _, name := range LimitNames {
		fs.Limits[name] = nil
	}
	return fs
}

// Load maps a loosely-typed server record into a FlagSet. Unknown fields are
// ignored; missing or null known fields take the default table values. A
// flag counts as enabled only when the server sent boolean true or the
// number 1. Limits pass through untouched, null meaning unlimited.
func Load(storeID int64, record map[string]any) FlagSet {
	fs := Default(storeID)
	if record == nil {
		return fs
	}

	for _, name := range FlagNames {
		if v, ok := record[name]; ok && v != nil {
			fs.Flags[name] = truthyFlag(v)
		}
	}
	for _, name := range LimitNames {
		fs.Limits[name] = limitValue(record[name])
	}

	if v, ok := record["billing_status"].(string); ok && v != "" {
		fs.BillingStatus = BillingStatus(v)
	}
	fs.BillingPaidUntil = dateValue(record["billing_paid_until"])
	fs.LastBillingDate = dateValue(record["last_billing_date"])

	return fs
}

func truthyFlag(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t == 1
	case int:
		return t == 1
	case int64:
		return t == 1
	}
	return false
}

func limitValue(v any) *int64 {
	switch t := v.(type) {
	case float64:
		n := int64(t)
		return &n
	case int:
		n := int64(t)
		return &n
	case int64:
		n := t
		return &n
	}
	return nil
}

func dateValue(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

// Clone returns a deep copy; edits on the copy never touch the receiver.
func (fs FlagSet) Clone() FlagSet {
	out := fs
	out.Flags = make(map[string]bool, len(fs.Flags))
	for k, v := range fs.Flags {
		out.Flags[k] = v
	}
	out.Limits = make(map[string]*int64, len(fs.Limits))
	for k, v := range fs.Limits {
		if v != nil {
			n := *v
			out.Limits[k] = &n
		} else {
			out.Limits[k] = nil
		}
	}
	if fs.BillingPaidUntil != nil {
		s := *fs.BillingPaidUntil
		out.BillingPaidUntil = &s
	}
	if fs.LastBillingDate != nil {
		s := *fs.LastBillingDate
		out.LastBillingDate = &s
	}
	return out
}

// WithFlag returns a copy with exactly one flag changed.
func (fs FlagSet) WithFlag(name string, enabled bool) (FlagSet, error) {
	if _, ok := defaults[name]; !ok {
		return fs, fmt.Errorf("%w: %s", ErrUnknownFlag, name)
	}
	out := fs.Clone()
	out.Flags[name] = enabled
	return out, nil
}

// WithLimit returns a copy with exactly one limit changed; nil means
// unlimited. Negative values are rejected.
func (fs FlagSet) WithLimit(name string, value *int64) (FlagSet, error) {
	known := false
	for _, n := range LimitNames {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return fs, fmt.Errorf("%w: %s", ErrUnknownLimit, name)
	}
	if value != nil && *value < 0 {
		return fs, fmt.Errorf("%w: %s=%d", ErrNegativeLimit, name, *value)
	}
	out := fs.Clone()
	if value != nil {
		n := *value
		out.Limits[name] = &n
	} else {
		out.Limits[name] = nil
	}
	return out, nil
}

func (fs FlagSet) WithBillingStatus(status BillingStatus) FlagSet {
	out := fs.Clone()
	out.BillingStatus = status
	return out
}

// WithBillingPaidUntil returns a copy with the paid-until date replaced; an
// empty string clears it.
func (fs FlagSet) WithBillingPaidUntil(date string) FlagSet {
	out := fs.Clone()
	if date == "" {
		out.BillingPaidUntil = nil
	} else {
		out.BillingPaidUntil = &date
	}
	return out
}

func (fs FlagSet) WithLastBillingDate(date string) FlagSet {
	out := fs.Clone()
	if date == "" {
		out.LastBillingDate = nil
	} else {
		out.LastBillingDate = &date
	}
	return out
}
