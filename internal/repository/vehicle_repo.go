package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vehicle_rental/internal/model"

	"github.com/jackc/pgx/v5"
)

// VehicleRepository defines operations for vehicle inventory data
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id int) (*model.Vehicle, error)
	FindAll(ctx context.Context) ([]model.Vehicle, error)
	Update(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error)
	Delete(ctx context.Context, id int) error
}

type vehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create inserts a new vehicle into the inventory
func (r *vehicleRepository) Create(ctx context.Context, v *model.Vehicle) error {
	sql := `INSERT INTO vehicles (vehicle_name, type, registration_number, daily_rent_price, availability_status)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, v.VehicleName, v.Type, v.RegistrationNumber, v.DailyRentPrice, v.AvailabilityStatus).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// FindByID retrieves a vehicle by its ID; a missing vehicle returns (nil, nil)
func (r *vehicleRepository) FindByID(ctx context.Context, id int) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	sql := `SELECT id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at, updated_at
            FROM vehicles WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return v, nil
}

// FindAll retrieves the whole inventory
func (r *vehicleRepository) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	sql := `SELECT id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at, updated_at
            FROM vehicles ORDER BY id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

// Update applies a partial update to a vehicle; a missing vehicle returns (nil, nil)
func (r *vehicleRepository) Update(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error) {
	var setClauses []string
	args := []interface{}{}
	argCount := 1

	if req.VehicleName != nil {
		setClauses = append(setClauses, fmt.Sprintf("vehicle_name = $%d", argCount))
		args = append(args, strings.TrimSpace(*req.VehicleName))
		argCount++
	}
	if req.Type != nil {
		setClauses = append(setClauses, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *req.Type)
		argCount++
	}
	if req.RegistrationNumber != nil {
		setClauses = append(setClauses, fmt.Sprintf("registration_number = $%d", argCount))
		args = append(args, strings.TrimSpace(*req.RegistrationNumber))
		argCount++
	}
	if req.DailyRentPrice != nil {
		setClauses = append(setClauses, fmt.Sprintf("daily_rent_price = $%d", argCount))
		args = append(args, *req.DailyRentPrice)
		argCount++
	}
	if req.AvailabilityStatus != nil {
		setClauses = append(setClauses, fmt.Sprintf("availability_status = $%d", argCount))
		args = append(args, *req.AvailabilityStatus)
		argCount++
	}

	if len(setClauses) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE vehicles SET %s, updated_at = NOW() WHERE id = $%d
            RETURNING id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at, updated_at`,
		strings.Join(setClauses, ", "), argCount)

	v := &model.Vehicle{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return v, nil
}

// Delete removes a vehicle from the inventory
func (r *vehicleRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
