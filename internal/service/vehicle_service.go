package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/repository"
)

var ErrVehicleNotFound = errors.New("Vehicle not found")

// VehicleService provides vehicle inventory management
type VehicleService interface {
	CreateVehicle(ctx context.Context, req model.CreateVehicleRequest) (*model.Vehicle, error)
	GetAllVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicleByID(ctx context.Context, id int) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func validateVehicle(req model.CreateVehicleRequest) []string {
	var msgs []string

	if strings.TrimSpace(req.VehicleName) == "" {
		msgs = append(msgs, "Vehicle name is required")
	}
	if !model.ValidVehicleType(req.Type) {
		msgs = append(msgs, "Vehicle type must be either car, bike, van, or SUV")
	}
	if strings.TrimSpace(req.RegistrationNumber) == "" {
		msgs = append(msgs, "Registration number is required")
	}
	if req.DailyRentPrice < 0 {
		msgs = append(msgs, "Daily rent price must be positive")
	}
	if !model.ValidAvailabilityStatus(req.AvailabilityStatus) {
		msgs = append(msgs, "Availability status must be either available or booked")
	}

	return msgs
}

func validateVehicleUpdate(req model.UpdateVehicleRequest) []string {
	var msgs []string

	if req.VehicleName != nil && strings.TrimSpace(*req.VehicleName) == "" {
		msgs = append(msgs, "Vehicle name cannot be empty")
	}
	if req.Type != nil && !model.ValidVehicleType(*req.Type) {
		msgs = append(msgs, "Vehicle type must be either car, bike, van, or SUV")
	}
	if req.RegistrationNumber != nil && strings.TrimSpace(*req.RegistrationNumber) == "" {
		msgs = append(msgs, "Registration number cannot be empty")
	}
	if req.DailyRentPrice != nil && *req.DailyRentPrice < 0 {
		msgs = append(msgs, "Daily rent price must be positive")
	}
	if req.AvailabilityStatus != nil && !model.ValidAvailabilityStatus(*req.AvailabilityStatus) {
		msgs = append(msgs, "Availability status must be either available or booked")
	}

	return msgs
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req model.CreateVehicleRequest) (*model.Vehicle, error) {
	if msgs := validateVehicle(req); len(msgs) > 0 {
		return nil, newValidationError(msgs)
	}

	vehicle := &model.Vehicle{
		VehicleName:        strings.TrimSpace(req.VehicleName),
		Type:               req.Type,
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: req.AvailabilityStatus,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle in repository: %w", err)
	}
	return vehicle, nil
}

func (s *vehicleService) GetAllVehicles(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, id int) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	return vehicle, nil
}

// UpdateVehicle applies a partial update. An empty update set is an error,
// not a no-op success.
func (s *vehicleService) UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error) {
	if msgs := validateVehicleUpdate(req); len(msgs) > 0 {
		return nil, newValidationError(msgs)
	}

	vehicle, err := s.vehicleRepo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return nil, ErrNoFieldsToUpdate
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id int) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}
