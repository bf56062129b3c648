package models

import "time"

const (
	CollectStatusPending   = "Pending"
	CollectStatusCollected = "Collected"

	// LowStockThreshold marks products that need restocking on the dashboard.
	LowStockThreshold = 5
)

// ProductDetail is a reward that can be redeemed for leaf points.
type ProductDetail struct {
	ID          int64     `json:"id" db:"id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Description string    `json:"description" db:"description"`
	Leaves      int       `json:"leaves" db:"leaves"`
	Stock       int       `json:"stock" db:"stock"`
	Image       *string   `json:"image,omitempty" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CollectInformation is a redemption waiting to be picked up.
type CollectInformation struct {
	ID          int64      `json:"id" db:"id"`
	CollectID   string     `json:"collect_id" db:"collect_id"`
	AccountID   *int64     `json:"account_id,omitempty" db:"account_id"`
	Email       string     `json:"email" db:"email"`
	ProductName string     `json:"product_name" db:"product_name"`
	LeavesSpent int        `json:"leaves_spent" db:"leaves_spent"`
	Status      string     `json:"status" db:"status"`
	CollectedAt *time.Time `json:"collected_at,omitempty" db:"collected_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
