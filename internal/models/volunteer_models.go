package models

import "time"

const (
	VolunteerStatusPending  = "Pending"
	VolunteerStatusApproved = "Approved"
	VolunteerStatusRejected = "Rejected"
)

// Volunteer is an application to help at events.
type Volunteer struct {
	ID           int64     `json:"id" db:"id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Interest     string    `json:"interest" db:"interest"`
	Availability string    `json:"availability" db:"availability"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
