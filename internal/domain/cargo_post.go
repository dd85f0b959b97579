package domain

import "time"

// CargoStatus enumerates lifecycle states for cargo posts.
type CargoStatus string

const (
	CargoStatusActive    CargoStatus = "active"
	CargoStatusInactive  CargoStatus = "inactive"
	CargoStatusCompleted CargoStatus = "completed"
	CargoStatusCancelled CargoStatus = "cancelled"
)

// Valid reports whether the status is a known enum value.
func (s CargoStatus) Valid() bool {
	switch s {
	case CargoStatusActive, CargoStatusInactive, CargoStatusCompleted, CargoStatusCancelled:
		return true
	}
	return false
}

// CargoPost advertises a shipment that needs a vehicle. No state machine
// constrains status transitions; the owner may set any valid value.
type CargoPost struct {
	ID               string
	ReferenceKey     string
	LoadingCity      string
	LoadingAddress   string
	UnloadingCity    string
	UnloadingAddress string
	LoadingDate      time.Time
	UnloadingDate    time.Time
	VehicleType      string
	Description      *string
	Status           CargoStatus
	CreatedBy        string
	Weight           *float64
	Volume           *float64
	Price            *float64
	PalletCount      *int
	PalletType       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
