package dto

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
)

// CreateCargoPostRequest payload. Numeric fields are raw strings; the
// service parses and rejects garbage.
type CreateCargoPostRequest struct {
	LoadingCity      string  `json:"loading_city"`
	LoadingAddress   string  `json:"loading_address"`
	UnloadingCity    string  `json:"unloading_city"`
	UnloadingAddress string  `json:"unloading_address"`
	LoadingDate      string  `json:"loading_date"`
	UnloadingDate    string  `json:"unloading_date"`
	VehicleType      string  `json:"vehicle_type"`
	Description      *string `json:"description"`
	Weight           string  `json:"weight"`
	Volume           string  `json:"volume"`
	Price            string  `json:"price"`
	PalletCount      string  `json:"pallet_count"`
	PalletType       *string `json:"pallet_type"`
}

// UpdateCargoPostRequest payload; absent fields are left unchanged.
type UpdateCargoPostRequest struct {
	LoadingCity      *string `json:"loading_city"`
	LoadingAddress   *string `json:"loading_address"`
	UnloadingCity    *string `json:"unloading_city"`
	UnloadingAddress *string `json:"unloading_address"`
	LoadingDate      *string `json:"loading_date"`
	UnloadingDate    *string `json:"unloading_date"`
	VehicleType      *string `json:"vehicle_type"`
	Description      *string `json:"description"`
	Status           *string `json:"status"`
	Weight           *string `json:"weight"`
	Volume           *string `json:"volume"`
	Price            *string `json:"price"`
	PalletCount      *string `json:"pallet_count"`
	PalletType       *string `json:"pallet_type"`
}

// CargoPostResponse is the serialized cargo listing.
type CargoPostResponse struct {
	ID               string                `json:"id"`
	ReferenceKey     string                `json:"reference_key"`
	LoadingCity      string                `json:"loading_city"`
	LoadingAddress   string                `json:"loading_address"`
	UnloadingCity    string                `json:"unloading_city"`
	UnloadingAddress string                `json:"unloading_address"`
	LoadingDate      time.Time             `json:"loading_date"`
	UnloadingDate    time.Time             `json:"unloading_date"`
	VehicleType      string                `json:"vehicle_type"`
	Description      *string               `json:"description,omitempty"`
	Status           domain.CargoStatus    `json:"status"`
	CreatedBy        string                `json:"created_by"`
	Weight           *float64              `json:"weight,omitempty"`
	Volume           *float64              `json:"volume,omitempty"`
	Price            *float64              `json:"price,omitempty"`
	PalletCount      *int                  `json:"pallet_count,omitempty"`
	PalletType       *string               `json:"pallet_type,omitempty"`
	Owner            *OwnerContactResponse `json:"owner,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// CreateTruckPostRequest payload.
type CreateTruckPostRequest struct {
	Title           string `json:"title"`
	CurrentLocation string `json:"current_location"`
	Destination     string `json:"destination"`
	TruckType       string `json:"truck_type"`
	Capacity        string `json:"capacity"`
	Price           string `json:"price"`
	Description     string `json:"description"`
	AvailableDate   string `json:"available_date"`
}

// UpdateTruckPostRequest payload; absent fields are left unchanged.
type UpdateTruckPostRequest struct {
	Title           *string `json:"title"`
	CurrentLocation *string `json:"current_location"`
	Destination     *string `json:"destination"`
	TruckType       *string `json:"truck_type"`
	Capacity        *string `json:"capacity"`
	Price           *string `json:"price"`
	Description     *string `json:"description"`
	AvailableDate   *string `json:"available_date"`
	Status          *string `json:"status"`
}

// TruckPostResponse is the serialized truck listing.
type TruckPostResponse struct {
	ID              string                `json:"id"`
	ReferenceKey    string                `json:"reference_key"`
	Title           string                `json:"title"`
	CurrentLocation string                `json:"current_location"`
	Destination     string                `json:"destination"`
	TruckType       string                `json:"truck_type"`
	Capacity        float64               `json:"capacity"`
	Price           *float64              `json:"price,omitempty"`
	Description     string                `json:"description"`
	AvailableDate   time.Time             `json:"available_date"`
	Status          domain.TruckStatus    `json:"status"`
	CreatedBy       string                `json:"created_by"`
	Owner           *OwnerContactResponse `json:"owner,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// OwnerContactResponse is the owner snapshot attached to detail views.
type OwnerContactResponse struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}
