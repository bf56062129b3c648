package models

import "time"

const (
	BookingStatusActive    = "Active"
	BookingStatusCancelled = "Cancelled"
	BookingStatusAttended  = "Attended"

	// DeletedEventName replaces event_name on bookings whose event was removed.
	DeletedEventName = "Deleted Event"
)

const (
	CheckInStatusNotChecked = "Not Checked"
	CheckInStatusCheckedIn  = "Checked-In"
	CheckInStatusCancelled  = "Cancelled"
)

// Booking is a guest reservation for an event. The guest is identified by
// name and contact details rather than by account.
type Booking struct {
	ID         int64     `json:"id" db:"id"`
	EventID    *int64    `json:"event_id" db:"event_id"`
	EventName  string    `json:"event_name" db:"event_name"`
	FullName   string    `json:"full_name" db:"full_name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Tickets    int       `json:"tickets" db:"tickets"`
	LeafPoints int       `json:"leaf_points" db:"leaf_points"`
	QRCodeText string    `json:"qr_code_text" db:"qr_code_text"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// BookingFilter holds list parameters for bookings.
type BookingFilter struct {
	EventID  *int64
	Status   string
	Email    string
	Search   string
	Page     int
	PageSize int
}

// CheckIn is the attendance record created alongside every booking.
type CheckIn struct {
	ID                  int64      `json:"id" db:"id"`
	AssociatedBookingID int64      `json:"associated_booking_id" db:"booking_id"`
	QRCodeText          string     `json:"qr_code_text" db:"qr_code_text"`
	GuestName           string     `json:"guest_name" db:"guest_name"`
	Email               string     `json:"email" db:"email"`
	EventName           string     `json:"event_name" db:"event_name"`
	LeafPoints          int        `json:"leaf_points" db:"leaf_points"`
	QRCodeStatus        string     `json:"qr_code_status" db:"qr_code_status"`
	CheckInTime         *time.Time `json:"check_in_time,omitempty" db:"check_in_time"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}
