package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/repository"
)

var (
	ErrDatesRequired        = errors.New("Rent start date and end date are required")
	ErrInvalidDateFormat    = errors.New("Rent dates must be valid YYYY-MM-DD dates")
	ErrVehicleAlreadyBooked = errors.New("Vehicle is already booked. Please choose another vehicle.")
	ErrInvalidTotalPrice    = errors.New("Failed to calculate total price or invalid price")
	ErrInvalidStatus        = errors.New("Invalid status. Must be one of: cancelled, returned")
	ErrAdminCannotCancel    = errors.New("Admin can not mark a booking as cancelled")
	ErrBookingNotFound      = errors.New("Booking not found")
	ErrBookingNotOwned      = errors.New("Booking not found or you don't have permission to update it")
	ErrAlreadyCancelled     = errors.New("Booking is already cancelled")
	ErrAlreadyReturned      = errors.New("Booking is already marked as returned")
	ErrCustomerOnlyCancel   = errors.New("Customers can only cancel bookings. Status must be 'cancelled'")
	ErrCancelNotFuture      = errors.New("Cannot cancel booking. Rent start date must be in the future")
)

const dateLayout = "2006-01-02"

// BookingService implements the booking lifecycle: pricing, the role-gated
// status state machine, and the expiry sweep.
type BookingService interface {
	CreateBooking(ctx context.Context, req model.CreateBookingRequest, actorID int) (*model.BookingDetails, error)
	ListBookings(ctx context.Context, actorID int, actorRole string) ([]model.BookingDetails, error)
	UpdateBooking(ctx context.Context, bookingID int, req model.UpdateBookingRequest, actorID int, actorRole string) (*model.Booking, error)
	ReconcileExpired(ctx context.Context) (int, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, vehicleRepo repository.VehicleRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo, vehicleRepo: vehicleRepo}
}

// CreateBooking prices the date range against the vehicle's daily rate and
// claims the vehicle. The rate is read before insertion and the total is
// frozen on the booking row; later price changes never retouch it.
func (s *bookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest, actorID int) (*model.BookingDetails, error) {
	if _, err := s.ReconcileExpired(ctx); err != nil {
		return nil, fmt.Errorf("failed to reconcile expired bookings: %w", err)
	}

	if req.RentStartDate == "" || req.RentEndDate == "" {
		return nil, ErrDatesRequired
	}
	start, err := time.Parse(dateLayout, req.RentStartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, req.RentEndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	customerID := req.CustomerID
	if customerID == 0 {
		customerID = actorID
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	if vehicle.AvailabilityStatus == model.VehicleBooked {
		return nil, ErrVehicleAlreadyBooked
	}

	days := model.RentalDays(start, end)
	totalPrice := vehicle.DailyRentPrice * days
	if totalPrice <= 0 {
		return nil, ErrInvalidTotalPrice
	}

	booking := &model.Booking{
		CustomerID:    customerID,
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
		TotalPrice:    totalPrice,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrVehicleUnavailable) {
			// Lost the race to another request between the lookup and the claim.
			return nil, ErrVehicleAlreadyBooked
		}
		return nil, fmt.Errorf("failed to create booking in repository: %w", err)
	}

	return &model.BookingDetails{
		Booking: *booking,
		Vehicle: &model.BookingVehicleInfo{
			VehicleName:    vehicle.VehicleName,
			DailyRentPrice: vehicle.DailyRentPrice,
		},
	}, nil
}

// ListBookings returns all bookings for admins and the caller's own bookings
// for customers, each shaped with the relevant summaries.
func (s *bookingService) ListBookings(ctx context.Context, actorID int, actorRole string) ([]model.BookingDetails, error) {
	if _, err := s.ReconcileExpired(ctx); err != nil {
		return nil, fmt.Errorf("failed to reconcile expired bookings: %w", err)
	}

	if actorRole == model.RoleAdmin {
		bookings, err := s.bookingRepo.FindAllDetailed(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}
		return bookings, nil
	}

	bookings, err := s.bookingRepo.FindByCustomerDetailed(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBooking applies the role-gated status transition. Admins may only
// mark a booking returned; customers may only cancel their own booking, and
// only before the rental starts. The split is business policy.
func (s *bookingService) UpdateBooking(ctx context.Context, bookingID int, req model.UpdateBookingRequest, actorID int, actorRole string) (*model.Booking, error) {
	if actorRole == model.RoleAdmin {
		return s.updateBookingAdmin(ctx, bookingID, req)
	}
	return s.updateBookingCustomer(ctx, bookingID, req, actorID)
}

func (s *bookingService) updateBookingAdmin(ctx context.Context, bookingID int, req model.UpdateBookingRequest) (*model.Booking, error) {
	if req.Status != model.BookingCancelled && req.Status != model.BookingReturned {
		return nil, ErrInvalidStatus
	}
	if req.Status == model.BookingCancelled {
		return nil, ErrAdminCannotCancel
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !model.CanTransition(booking.Status, req.Status) {
		return nil, terminalStatusError(booking.Status)
	}

	return s.applyTransition(ctx, booking, req.Status)
}

func (s *bookingService) updateBookingCustomer(ctx context.Context, bookingID int, req model.UpdateBookingRequest, actorID int) (*model.Booking, error) {
	if req.Status != model.BookingCancelled {
		return nil, ErrCustomerOnlyCancel
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking == nil || booking.CustomerID != actorID {
		return nil, ErrBookingNotOwned
	}
	if !model.CanTransition(booking.Status, req.Status) {
		return nil, terminalStatusError(booking.Status)
	}

	// Compared at midnight granularity: cancellable only while the rental
	// start is strictly in the future.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := booking.RentStartDate
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if !start.After(today) {
		return nil, ErrCancelNotFuture
	}

	return s.applyTransition(ctx, booking, req.Status)
}

func (s *bookingService) applyTransition(ctx context.Context, booking *model.Booking, status model.BookingStatus) (*model.Booking, error) {
	updated, err := s.bookingRepo.UpdateStatusAndFreeVehicle(ctx, booking.ID, booking.VehicleID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The booking left the active state under us.
			return nil, terminalStatusError(status)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return updated, nil
}

func terminalStatusError(status model.BookingStatus) error {
	if status == model.BookingReturned {
		return ErrAlreadyReturned
	}
	return ErrAlreadyCancelled
}

// ReconcileExpired closes out active bookings whose rent_end_date is before
// today and frees their vehicles. Safe to run from request paths, the cron
// schedule, and the admin endpoint; repeated runs are no-ops.
func (s *bookingService) ReconcileExpired(ctx context.Context) (int, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.bookingRepo.MarkExpiredReturned(ctx, today)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Expiry sweep: marked %d booking(s) as returned", count)
	}
	return count, nil
}
