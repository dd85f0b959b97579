package domain

import "time"

// TruckStatus enumerates lifecycle states for truck posts.
type TruckStatus string

const (
	TruckStatusActive    TruckStatus = "active"
	TruckStatusPending   TruckStatus = "pending"
	TruckStatusCompleted TruckStatus = "completed"
	TruckStatusCancelled TruckStatus = "cancelled"
)

// Valid reports whether the status is a known enum value.
func (s TruckStatus) Valid() bool {
	switch s {
	case TruckStatusActive, TruckStatusPending, TruckStatusCompleted, TruckStatusCancelled:
		return true
	}
	return false
}

// TruckPost advertises available vehicle capacity.
type TruckPost struct {
	ID              string
	ReferenceKey    string
	Title           string
	CurrentLocation string
	Destination     string
	TruckType       string
	Capacity        float64
	Price           *float64
	Description     string
	AvailableDate   time.Time
	Status          TruckStatus
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
