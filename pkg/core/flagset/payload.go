package flagset

// UpdateRequest is the full feature payload sent to
// PUT /api/v1/super-admin/stores/{id}/features. No field carries omitempty:
// the endpoint replaces the whole record, and omitting falsy fields has
// silently re-enabled defaults before. Empty dates go out as JSON null.
type UpdateRequest struct {
	BillingStatus    string  `json:"billing_status"`
	BillingPaidUntil *string `json:"billing_paid_until"`
	LastBillingDate  *string `json:"last_billing_date"`

	PushNotificationsEnabled bool `json:"push_notifications_enabled"`
	SMSEnabled               bool `json:"sms_enabled"`
	WhatsAppEnabled          bool `json:"whatsapp_enabled"`
	EmailEnabled             bool `json:"email_enabled"`
	AddOptionsEnabled        bool `json:"add_options_enabled"`
	CouponCodesEnabled       bool `json:"coupon_codes_enabled"`
	AppSettingsEnabled       bool `json:"app_settings_enabled"`
	CustomersEnabled         bool `json:"customers_enabled"`
	EmployeesEnabled         bool `json:"employees_enabled"`
	HomeConfigEnabled        bool `json:"home_config_enabled"`
	ReportsEnabled           bool `json:"reports_enabled"`
	BranchesEnabled          bool `json:"branches_enabled"`
	CategoriesEnabled        bool `json:"categories_enabled"`
	ProductsEnabled          bool `json:"products_enabled"`
	OrdersEnabled            bool `json:"orders_enabled"`
	NotificationsEnabled     bool `json:"notifications_enabled"`
	CommunicationLogsEnabled bool `json:"communication_logs_enabled"`
	BillingsEnabled          bool `json:"billings_enabled"`

	MaxCategories *int64 `json:"max_categories" validate:"omitempty,gte=0"`
	MaxProducts   *int64 `json:"max_products" validate:"omitempty,gte=0"`
	MaxVariants   *int64 `json:"max_variants" validate:"omitempty,gte=0"`
	MaxBranches   *int64 `json:"max_branches" validate:"omitempty,gte=0"`
}

// UpdatePayload serializes the flag set into the total update request.
func (fs FlagSet) UpdatePayload() UpdateRequest {
	return UpdateRequest{
		BillingStatus:    string(fs.BillingStatus),
		BillingPaidUntil: fs.BillingPaidUntil,
		LastBillingDate:  fs.LastBillingDate,

		PushNotificationsEnabled: fs.Flags[FlagPushNotifications],
		SMSEnabled:               fs.Flags[FlagSMS],
		WhatsAppEnabled:          fs.Flags[FlagWhatsApp],
		EmailEnabled:             fs.Flags[FlagEmail],
		AddOptionsEnabled:        fs.Flags[FlagAddOptions],
		CouponCodesEnabled:       fs.Flags[FlagCouponCodes],
		AppSettingsEnabled:       fs.Flags[FlagAppSettings],
		CustomersEnabled:         fs.Flags[FlagCustomers],
		EmployeesEnabled:         fs.Flags[FlagEmployees],
		HomeConfigEnabled:        fs.Flags[FlagHomeConfig],
		ReportsEnabled:           fs.Flags[FlagReports],
		BranchesEnabled:          fs.Flags[FlagBranches],
		CategoriesEnabled:        fs.Flags[FlagCategories],
		ProductsEnabled:          fs.Flags[FlagProducts],
		OrdersEnabled:            fs.Flags[FlagOrders],
		NotificationsEnabled:     fs.Flags[FlagNotifications],
		CommunicationLogsEnabled: fs.Flags[FlagCommunicationLogs],
		BillingsEnabled:          fs.Flags[FlagBillings],

		MaxCategories: fs.Limits[LimitCategories],
		MaxProducts:   fs.Limits[LimitProducts],
		MaxVariants:   fs.Limits[LimitVariants],
		MaxBranches:   fs.Limits[LimitBranches],
	}
}
