package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/service"
	"vehicle_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

// VehicleHandler handles vehicle inventory requests
type VehicleHandler struct {
	service service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(s service.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: s}
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			utils.RespondError(c, http.StatusBadRequest, "Validation failed", vErr.Error())
			return
		}
		log.Printf("Error creating vehicle: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create vehicle", "Internal server error")
		return
	}

	utils.Respond(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.service.GetAllVehicles(c.Request.Context())
	if err != nil {
		log.Printf("Error listing vehicles: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to get all vehicles", "Internal server error")
		return
	}
	if len(vehicles) == 0 {
		utils.Respond(c, http.StatusOK, "No vehicles found", []model.Vehicle{})
		return
	}
	utils.Respond(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

func (h *VehicleHandler) GetSingleVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vehicle ID", nil)
		return
	}

	vehicle, err := h.service.GetVehicleByID(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Failed to get single vehicle", err.Error())
			return
		}
		log.Printf("Error getting vehicle: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to get single vehicle", "Internal server error")
		return
	}

	utils.Respond(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vehicle ID", nil)
		return
	}

	var req model.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	vehicle, err := h.service.UpdateVehicle(c.Request.Context(), vehicleID, req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondError(c, http.StatusBadRequest, "Failed to update vehicle", vErr.Error())
		case errors.Is(err, service.ErrVehicleNotFound),
			errors.Is(err, service.ErrNoFieldsToUpdate):
			utils.RespondError(c, http.StatusBadRequest, "Failed to update vehicle", err.Error())
		default:
			log.Printf("Error updating vehicle: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update vehicle", "Internal server error")
		}
		return
	}

	utils.Respond(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vehicle ID", nil)
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), vehicleID); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			utils.RespondError(c, http.StatusBadRequest, "Failed to delete vehicle", err.Error())
			return
		}
		log.Printf("Error deleting vehicle: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete vehicle", "Internal server error")
		return
	}

	utils.Respond(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

// RegisterVehicleRoutes registers vehicle routes
func (h *VehicleHandler) RegisterVehicleRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	vehicles := rg.Group("/vehicles")
	vehicles.Use(authMW)
	{
		vehicles.POST("", adminMW, h.CreateVehicle)
		vehicles.GET("", h.GetAllVehicles)
		vehicles.GET("/:vehicleId", h.GetSingleVehicle)
		vehicles.PUT("/:vehicleId", adminMW, h.UpdateVehicle)
		vehicles.DELETE("/:vehicleId", adminMW, h.DeleteVehicle)
	}
}
