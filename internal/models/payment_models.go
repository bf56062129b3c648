package models

import "time"

const (
	PaymentStatusPaid     = "Paid"
	PaymentStatusUnpaid   = "Unpaid"
	PaymentStatusRefunded = "Refunded"

	RefundStatusPending  = "Pending"
	RefundStatusApproved = "Approved"
	RefundStatusRejected = "Rejected"
)

// Payment records money owed or received for a booking.
type Payment struct {
	ID        int64     `json:"id" db:"id"`
	PaymentID string    `json:"payment_id" db:"payment_id"`
	BookingID *int64    `json:"booking_id,omitempty" db:"booking_id"`
	PayerName string    `json:"payer_name" db:"payer_name"`
	Email     string    `json:"email" db:"email"`
	Amount    float64   `json:"amount" db:"amount"`
	Method    string    `json:"method" db:"method"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Refund references a payment by its business id.
type Refund struct {
	ID        int64     `json:"id" db:"id"`
	RefundID  string    `json:"refund_id" db:"refund_id"`
	PaymentID string    `json:"payment_id" db:"payment_id"`
	Email     string    `json:"email" db:"email"`
	Amount    float64   `json:"amount" db:"amount"`
	Reason    string    `json:"reason" db:"reason"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
