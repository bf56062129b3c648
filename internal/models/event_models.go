package models

import "time"

// Event is a community event that can be booked.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Location    string    `json:"location" db:"location"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	StartTime   string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime     string    `json:"end_time" db:"end_time"`
	Price       float64   `json:"price" db:"price"`
	IsFree      bool      `json:"is_free" db:"is_free"`
	LeafPoints  int       `json:"leaf_points" db:"leaf_points"` // awarded on attendance
	Image       *string   `json:"image,omitempty" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// EventFilter holds list parameters for events.
type EventFilter struct {
	Category string
	Search   string
	Upcoming bool
	Page     int
	PageSize int
}

// FAQ is a question and answer shown on the help page.
type FAQ struct {
	ID        int64     `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Review is an event rating left by an account or a guest.
type Review struct {
	ID           int64     `json:"id" db:"id"`
	AccountID    *int64    `json:"account_id,omitempty" db:"account_id"`
	ReviewerName string    `json:"reviewer_name" db:"reviewer_name"`
	EventID      *int64    `json:"event_id,omitempty" db:"event_id"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SearchResult groups matches across events and products.
type SearchResult struct {
	Events   []Event         `json:"events"`
	Products []ProductDetail `json:"products"`
}
