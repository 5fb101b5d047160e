package repository

import "errors"

var (
	// ErrNotFound indicates the targeted row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoFieldsToUpdate indicates a partial update with an empty field set.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrVehicleUnavailable indicates the vehicle was taken (or removed)
	// before the booking could claim it.
	ErrVehicleUnavailable = errors.New("vehicle is not available")
)
