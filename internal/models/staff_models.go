package models

import "time"

const (
	StaffRoleAdmin   = "Admin"
	StaffRoleStaff   = "Staff"
	StaffRoleManager = "Manager"

	StaffStatusActive   = "Active"
	StaffStatusInactive = "Inactive"
)

// StaffAccount represents a back-office user
type StaffAccount struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the staff member may log in.
func (s *StaffAccount) IsActive() bool {
	return s.Status == StaffStatusActive
}
