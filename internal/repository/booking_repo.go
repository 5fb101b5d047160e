package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle_rental/internal/model"

	"github.com/jackc/pgx/v5"
)

// BookingRepository defines operations for booking data
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindAllDetailed(ctx context.Context) ([]model.BookingDetails, error)
	FindByCustomerDetailed(ctx context.Context, customerID int) ([]model.BookingDetails, error)
	UpdateStatusAndFreeVehicle(ctx context.Context, bookingID, vehicleID int, status model.BookingStatus) (*model.Booking, error)
	MarkExpiredReturned(ctx context.Context, today time.Time) (int, error)
}

type bookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a booking and claims its vehicle in a single transaction.
// The vehicle flip is conditional on the row still being available, so two
// racing requests for the same vehicle cannot both succeed.
func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx,
		`UPDATE vehicles SET availability_status = 'booked', updated_at = NOW()
         WHERE id = $1 AND availability_status = 'available'`, b.VehicleID)
	if err != nil {
		return fmt.Errorf("failed to claim vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrVehicleUnavailable
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
         VALUES ($1, $2, $3, $4, $5, 'active')
         RETURNING id, status, created_at, updated_at`,
		b.CustomerID, b.VehicleID, b.RentStartDate, b.RentEndDate, b.TotalPrice).
		Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return tx.Commit(ctx)
}

// FindByID retrieves a booking by its ID; a missing booking returns (nil, nil)
func (r *bookingRepository) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	b := &model.Booking{}
	sql := `SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, updated_at
            FROM bookings WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return b, nil
}

// FindAllDetailed retrieves every booking with customer and vehicle summaries
// for the admin listing
func (r *bookingRepository) FindAllDetailed(ctx context.Context) ([]model.BookingDetails, error) {
	sql := `SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
                   b.created_at, b.updated_at,
                   u.name, u.email,
                   v.vehicle_name, v.registration_number
            FROM bookings b
            INNER JOIN users u ON b.customer_id = u.id
            INNER JOIN vehicles v ON b.vehicle_id = v.id
            ORDER BY b.created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.BookingDetails
	for rows.Next() {
		var d model.BookingDetails
		var customer model.BookingCustomerInfo
		var vehicle model.BookingVehicleInfo
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &d.RentStartDate, &d.RentEndDate, &d.TotalPrice, &d.Status,
			&d.CreatedAt, &d.UpdatedAt,
			&customer.Name, &customer.Email,
			&vehicle.VehicleName, &vehicle.RegistrationNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		d.Customer = &customer
		d.Vehicle = &vehicle
		bookings = append(bookings, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// FindByCustomerDetailed retrieves a customer's own bookings with vehicle summaries
func (r *bookingRepository) FindByCustomerDetailed(ctx context.Context, customerID int) ([]model.BookingDetails, error) {
	sql := `SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
                   b.created_at, b.updated_at,
                   v.vehicle_name, v.type, v.registration_number
            FROM bookings b
            INNER JOIN vehicles v ON b.vehicle_id = v.id
            WHERE b.customer_id = $1
            ORDER BY b.created_at DESC`
	rows, err := r.db.Query(ctx, sql, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.BookingDetails
	for rows.Next() {
		var d model.BookingDetails
		var vehicle model.BookingVehicleInfo
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &d.RentStartDate, &d.RentEndDate, &d.TotalPrice, &d.Status,
			&d.CreatedAt, &d.UpdatedAt,
			&vehicle.VehicleName, &vehicle.Type, &vehicle.RegistrationNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer booking row: %w", err)
		}
		d.Vehicle = &vehicle
		bookings = append(bookings, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer booking rows: %w", err)
	}
	return bookings, nil
}

// UpdateStatusAndFreeVehicle moves an active booking to a terminal status and
// releases its vehicle, atomically. The status guard on the UPDATE means a
// concurrent transition loses cleanly instead of double-applying.
func (r *bookingRepository) UpdateStatusAndFreeVehicle(ctx context.Context, bookingID, vehicleID int, status model.BookingStatus) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin status transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	b := &model.Booking{}
	err = tx.QueryRow(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW()
         WHERE id = $2 AND status = 'active'
         RETURNING id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, updated_at`,
		status, bookingID).
		Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE vehicles SET availability_status = 'available', updated_at = NOW() WHERE id = $1`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to free vehicle: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status transaction: %w", err)
	}
	return b, nil
}

// MarkExpiredReturned closes out active bookings whose rental period ended
// before today and frees their vehicles. Idempotent; returns how many
// bookings were closed.
func (r *bookingRepository) MarkExpiredReturned(ctx context.Context, today time.Time) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin sweep transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`UPDATE bookings SET status = 'returned', updated_at = NOW()
         WHERE rent_end_date < $1 AND status = 'active'
         RETURNING vehicle_id`, today)
	if err != nil {
		return 0, fmt.Errorf("failed to expire bookings: %w", err)
	}

	var vehicleIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan expired booking: %w", err)
		}
		vehicleIDs = append(vehicleIDs, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating expired bookings: %w", err)
	}

	if len(vehicleIDs) > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE vehicles SET availability_status = 'available', updated_at = NOW() WHERE id = ANY($1)`,
			vehicleIDs)
		if err != nil {
			return 0, fmt.Errorf("failed to free expired vehicles: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit sweep transaction: %w", err)
	}
	return len(vehicleIDs), nil
}
