package model

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
	BookingReturned  BookingStatus = "returned"
)

// allowedTransitions is the booking state machine. Cancelled and returned are
// terminal; the only legal moves are active -> cancelled and active -> returned.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingActive:    {BookingCancelled, BookingReturned},
	BookingCancelled: {},
	BookingReturned:  {},
}

// ValidBookingStatus reports whether s names a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is a legal status transition.
func CanTransition(from, to BookingStatus) bool {
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Booking represents a reservation of one vehicle over a date range.
type Booking struct {
	ID            int           `json:"id"`
	CustomerID    int           `json:"customer_id"`
	VehicleID     int           `json:"vehicle_id"`
	RentStartDate time.Time     `json:"rent_start_date"`
	RentEndDate   time.Time     `json:"rent_end_date"`
	TotalPrice    int           `json:"total_price"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookingCustomerInfo is the customer summary embedded in admin listings.
type BookingCustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingVehicleInfo is the vehicle summary embedded in booking listings.
type BookingVehicleInfo struct {
	VehicleName        string `json:"vehicle_name"`
	Type               string `json:"type,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	DailyRentPrice     int    `json:"daily_rent_price,omitempty"`
}

// BookingDetails is a booking joined with its customer and vehicle summaries.
type BookingDetails struct {
	Booking
	Customer *BookingCustomerInfo `json:"customer,omitempty"`
	Vehicle  *BookingVehicleInfo  `json:"vehicle,omitempty"`
}

// CreateBookingRequest is the payload for creating a booking. Dates are
// YYYY-MM-DD strings.
type CreateBookingRequest struct {
	CustomerID    int    `json:"customer_id"`
	VehicleID     int    `json:"vehicle_id"`
	RentStartDate string `json:"rent_start_date"`
	RentEndDate   string `json:"rent_end_date"`
}

// UpdateBookingRequest carries the target status for a lifecycle update.
type UpdateBookingRequest struct {
	Status BookingStatus `json:"status"`
}

// RentalDays computes the number of billable days for a date range: the day
// span rounded up, with a floor of one day. Same-day and inverted ranges bill
// as a single day.
func RentalDays(start, end time.Time) int {
	span := end.Sub(start)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
