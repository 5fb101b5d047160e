package repository

import (
	"context"
	"testing"
	"time"

	"vehicle_rental/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func TestBookingRepository_Create_ClaimsVehicle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vehicles SET availability_status = 'booked'").
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(7, 5, start, end, 200).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
			AddRow(1, model.BookingActive, now, now))
	mock.ExpectCommit()

	booking := &model.Booking{
		CustomerID:    7,
		VehicleID:     5,
		RentStartDate: start,
		RentEndDate:   end,
		TotalPrice:    200,
	}
	err = repo.Create(context.Background(), booking)

	assert.NoError(t, err)
	assert.Equal(t, 1, booking.ID)
	assert.Equal(t, model.BookingActive, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_VehicleAlreadyClaimed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock)

	// The conditional flip touches no rows when another transaction won the
	// vehicle first; the insert must never run.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vehicles SET availability_status = 'booked'").
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	booking := &model.Booking{
		CustomerID:    7,
		VehicleID:     5,
		RentStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RentEndDate:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		TotalPrice:    200,
	}
	err = repo.Create(context.Background(), booking)

	assert.ErrorIs(t, err, ErrVehicleUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatusAndFreeVehicle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings SET status =").
		WithArgs(model.BookingReturned, 3).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "customer_id", "vehicle_id", "rent_start_date", "rent_end_date",
			"total_price", "status", "created_at", "updated_at",
		}).AddRow(3, 7, 5, start, end, 200, model.BookingReturned, now, now))
	mock.ExpectExec("UPDATE vehicles SET availability_status = 'available'").
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	booking, err := repo.UpdateStatusAndFreeVehicle(context.Background(), 3, 5, model.BookingReturned)

	assert.NoError(t, err)
	assert.Equal(t, model.BookingReturned, booking.Status)
	assert.Equal(t, 5, booking.VehicleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatusAndFreeVehicle_NotActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings SET status =").
		WithArgs(model.BookingCancelled, 3).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = repo.UpdateStatusAndFreeVehicle(context.Background(), 3, 5, model.BookingCancelled)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_MarkExpiredReturned(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock)

	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings SET status = 'returned'").
		WithArgs(today).
		WillReturnRows(pgxmock.NewRows([]string{"vehicle_id"}).AddRow(5).AddRow(6))
	mock.ExpectExec("UPDATE vehicles SET availability_status = 'available'").
		WithArgs([]int{5, 6}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectCommit()

	count, err := repo.MarkExpiredReturned(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_MarkExpiredReturned_NothingExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock)

	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings SET status = 'returned'").
		WithArgs(today).
		WillReturnRows(pgxmock.NewRows([]string{"vehicle_id"}))
	mock.ExpectCommit()

	count, err := repo.MarkExpiredReturned(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
