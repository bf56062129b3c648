package models

// BookingStatusCounts breaks bookings down by status.
type BookingStatusCounts struct {
	Active    int `json:"active"`
	Cancelled int `json:"cancelled"`
	Attended  int `json:"attended"`
}

// RevenueSummary is paid revenue over the current calendar windows.
type RevenueSummary struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
}

// LowStockProduct is a product at or under the restock threshold.
type LowStockProduct struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}

// DashboardSummary holds key metrics for the back-office dashboard.
type DashboardSummary struct {
	AccountsCount       int                 `json:"accounts_count"`
	UpcomingEventsCount int                 `json:"upcoming_events_count"`
	Bookings            BookingStatusCounts `json:"bookings"`
	CheckInsToday       int                 `json:"check_ins_today"`
	Revenue             RevenueSummary      `json:"revenue"`
	PendingRefunds      int                 `json:"pending_refunds"`
	PendingCollections  int                 `json:"pending_collections"`
	LowStockProducts    []LowStockProduct   `json:"low_stock_products"`
}
