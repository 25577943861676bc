package model

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking ties one user to one car for a date range
type Booking struct {
	ID         int64     `json:"id"`
	Reference  string    `json:"reference"` // Opaque code handed to the customer
	UserID     int       `json:"user_id"`
	CarID      int       `json:"car_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice int64     `json:"total_price"` // In smallest currency unit (cents)
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateBookingRequest is the payload for booking a car
type CreateBookingRequest struct {
	CarID     int       `json:"car_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// UpdateBookingStatusRequest is used by admins to move a booking forward
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed"`
}

// BookingFilters contains filter parameters for admin booking queries
type BookingFilters struct {
	UserID *int
	CarID  *int
	Status *string
}
