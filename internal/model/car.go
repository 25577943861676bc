package model

import "time"

// Car represents a vehicle listing in the catalog
type Car struct {
	ID                 int       `json:"id"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	Type               string    `json:"type"` // e.g. "sedan", "suv", "hatchback"
	FuelType           string    `json:"fuel_type"`
	Transmission       string    `json:"transmission"`
	SeatingCapacity    int       `json:"seating_capacity"`
	PricePerDay        int64     `json:"price_per_day"` // In smallest currency unit (cents)
	Available          bool      `json:"available"`
	RegistrationNumber string    `json:"registration_number"`
	Image              *string   `json:"image,omitempty"`
	Features           []string  `json:"features,omitempty"`
	Description        *string   `json:"description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCarRequest is used by admins to add a car to the catalog
type CreateCarRequest struct {
	Make               string   `json:"make" binding:"required"`
	Model              string   `json:"model" binding:"required"`
	Year               int      `json:"year" binding:"required,gte=1980"`
	Type               string   `json:"type" binding:"required"`
	FuelType           string   `json:"fuel_type" binding:"required"`
	Transmission       string   `json:"transmission" binding:"required,oneof=manual automatic"`
	SeatingCapacity    int      `json:"seating_capacity" binding:"required,gt=0"`
	PricePerDay        int64    `json:"price_per_day" binding:"required,gt=0"`
	RegistrationNumber string   `json:"registration_number" binding:"required"`
	Image              *string  `json:"image"`
	Features           []string `json:"features"`
	Description        *string  `json:"description"`
}

// UpdateCarRequest allows partial updates of a car listing
type UpdateCarRequest struct {
	Make            *string  `json:"make,omitempty"`
	Model           *string  `json:"model,omitempty"`
	Year            *int     `json:"year,omitempty" binding:"omitempty,gte=1980"`
	Type            *string  `json:"type,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	Transmission    *string  `json:"transmission,omitempty" binding:"omitempty,oneof=manual automatic"`
	SeatingCapacity *int     `json:"seating_capacity,omitempty" binding:"omitempty,gt=0"`
	PricePerDay     *int64   `json:"price_per_day,omitempty" binding:"omitempty,gt=0"`
	Image           *string  `json:"image,omitempty"`
	Features        []string `json:"features,omitempty"`
	Description     *string  `json:"description,omitempty"`
}

// CarFilters contains filter parameters for catalog queries
type CarFilters struct {
	Type         *string
	FuelType     *string
	Transmission *string
	Available    *bool
	MaxPrice     *int64
}
