package service

import (
	"context"

	"storeops.com/console/pkg/shared/client"
)

type DashboardSummary struct {
	TotalStores     int64   `json:"total_stores"`
	TotalCustomers  int64   `json:"total_customers"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalOrders     int64   `json:"total_orders"`
	TotalCategories int64   `json:"total_categories"`
	TotalProducts   int64   `json:"total_products"`
	TotalVariants   int64   `json:"total_variants"`
}

type TopProduct struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage *string `json:"product_image"`
	TotalSold    int64   `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

type DashboardStore struct {
	StoreID       int64   `json:"store_id"`
	StoreName     string  `json:"store_name"`
	OwnerName     string  `json:"owner_name"`
	CustomerCount int64   `json:"customer_count"`
	Revenue       float64 `json:"revenue"`
	OrderCount    int64   `json:"order_count"`
	CategoryCount int64   `json:"category_count"`
	ProductCount  int64   `json:"product_count"`
	VariantCount  int64   `json:"variant_count"`
	IsActive      int64   `json:"is_active"`
}

type DashboardData struct {
	Summary     DashboardSummary `json:"summary"`
	TopProducts []TopProduct     `json:"top_products"`
	Stores      []DashboardStore `json:"stores"`
}

type DashboardService struct {
	client *client.Client
}

func NewDashboardService(c *client.Client) *DashboardService {
	return &DashboardService{client: c}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardData, error) {
	var data DashboardData
	if err := s.client.Get(ctx, basePath+"/dashboard", &data); err != nil {
		return nil, err
	}
	return &data, nil
}
