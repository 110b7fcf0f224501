package service

const basePath = "/api/v1/super-admin"

// Store is the strict shape of a store record as the console consumes it.
// The wire record is duck-typed (numeric booleans, missing fields), so it is
// decoded through tolerant field helpers at this boundary.
type Store struct {
	ID            int64
	StoreName     string
	OwnerName     string
	OwnerEmail    string
	OwnerPhone    string
	Address       string
	City          string
	Pincode       string
	IsActive      bool
	BillingStatus string
	CustomerCount int64
	TotalRevenue  float64
}

func storeFromRecord(record map[string]any) Store {
	id := int64Field(record, "store_id")
	if id == 0 {
		id = int64Field(record, "id")
	}
	return Store{
		ID:            id,
		StoreName:     stringField(record, "store_name"),
		OwnerName:     stringField(record, "owner_name"),
		OwnerEmail:    stringField(record, "owner_email"),
		OwnerPhone:    stringField(record, "owner_phone"),
		Address:       stringField(record, "address"),
		City:          stringField(record, "city"),
		Pincode:       stringField(record, "pincode"),
		IsActive:      truthyField(record, "is_active"),
		BillingStatus: stringField(record, "billing_status"),
		CustomerCount: int64Field(record, "customer_count"),
		TotalRevenue:  floatField(record, "total_revenue"),
	}
}

func stringField(record map[string]any, name string) string {
	if s, ok := record[name].(string); ok {
		return s
	}
	return ""
}

func int64Field(record map[string]any, name string) int64 {
	switch t := record[name].(type) {
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	}
	return 0
}

func floatField(record map[string]any, name string) float64 {
	switch t := record[name].(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}

func truthyField(record map[string]any, name string) bool {
	switch t := record[name].(type) {
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
