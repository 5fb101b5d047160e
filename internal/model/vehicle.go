package model

import "time"

const (
	VehicleTypeCar  = "car"
	VehicleTypeBike = "bike"
	VehicleTypeVan  = "van"
	VehicleTypeSUV  = "SUV"
)

const (
	VehicleAvailable = "available"
	VehicleBooked    = "booked"
)

// ValidVehicleType reports whether t is one of the supported vehicle types.
func ValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeCar, VehicleTypeBike, VehicleTypeVan, VehicleTypeSUV:
		return true
	}
	return false
}

// ValidAvailabilityStatus reports whether s is a known availability flag.
func ValidAvailabilityStatus(s string) bool {
	return s == VehicleAvailable || s == VehicleBooked
}

// Vehicle represents a rentable vehicle in the inventory
type Vehicle struct {
	ID                 int       `json:"id"`
	VehicleName        string    `json:"vehicle_name"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	DailyRentPrice     int       `json:"daily_rent_price"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateVehicleRequest is the payload for adding a vehicle
type CreateVehicleRequest struct {
	VehicleName        string `json:"vehicle_name"`
	Type               string `json:"type"`
	RegistrationNumber string `json:"registration_number"`
	DailyRentPrice     int    `json:"daily_rent_price"`
	AvailabilityStatus string `json:"availability_status"`
}

// UpdateVehicleRequest allows partial updates; nil fields are left untouched
type UpdateVehicleRequest struct {
	VehicleName        *string `json:"vehicle_name,omitempty"`
	Type               *string `json:"type,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	DailyRentPrice     *int    `json:"daily_rent_price,omitempty"`
	AvailabilityStatus *string `json:"availability_status,omitempty"`
}
