package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/service"
	"vehicle_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler handles booking lifecycle requests
type BookingHandler struct {
	service service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(s service.BookingService) *BookingHandler {
	return &BookingHandler{service: s}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required", err.Error())
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDatesRequired),
			errors.Is(err, service.ErrInvalidDateFormat),
			errors.Is(err, service.ErrVehicleNotFound),
			errors.Is(err, service.ErrVehicleAlreadyBooked),
			errors.Is(err, service.ErrInvalidTotalPrice):
			utils.RespondError(c, http.StatusBadRequest, "Failed to create booking", err.Error())
		default:
			log.Printf("Error creating booking: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to create booking", "Internal server error")
		}
		return
	}

	utils.Respond(c, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required", err.Error())
		return
	}
	actorRole, err := getAuthUserRole(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required", err.Error())
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), actorID, actorRole)
	if err != nil {
		log.Printf("Error listing bookings: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to get all bookings", "Internal server error")
		return
	}
	if len(bookings) == 0 {
		utils.Respond(c, http.StatusOK, "No bookings found", []model.BookingDetails{})
		return
	}
	utils.Respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required", err.Error())
		return
	}
	actorRole, err := getAuthUserRole(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required", err.Error())
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.service.UpdateBooking(c.Request.Context(), bookingID, req, actorID, actorRole)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrAdminCannotCancel),
			errors.Is(err, service.ErrBookingNotFound),
			errors.Is(err, service.ErrBookingNotOwned),
			errors.Is(err, service.ErrAlreadyCancelled),
			errors.Is(err, service.ErrAlreadyReturned),
			errors.Is(err, service.ErrCustomerOnlyCancel),
			errors.Is(err, service.ErrCancelNotFuture):
			utils.RespondError(c, http.StatusBadRequest, "Failed to update booking", err.Error())
		default:
			log.Printf("Error updating booking: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update booking", "Internal server error")
		}
		return
	}

	message := "Booking updated successfully"
	if booking.Status == model.BookingReturned {
		message = "Booking marked as returned. Vehicle is now available"
	} else if booking.Status == model.BookingCancelled {
		message = "Booking cancelled successfully"
	}
	utils.Respond(c, http.StatusOK, message, booking)
}

// SweepExpired runs the expiry reconciliation on demand.
func (h *BookingHandler) SweepExpired(c *gin.Context) {
	count, err := h.service.ReconcileExpired(c.Request.Context())
	if err != nil {
		log.Printf("Error running expiry sweep: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to run expiry sweep", "Internal server error")
		return
	}
	utils.Respond(c, http.StatusOK, fmt.Sprintf("Expiry sweep completed: %d booking(s) marked as returned", count), gin.H{"returned": count})
}

// RegisterBookingRoutes registers booking routes
func (h *BookingHandler) RegisterBookingRoutes(rg *gin.RouterGroup, authMW, adminMW, customerMW gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", customerMW, h.CreateBooking)
		bookings.GET("", h.GetAllBookings)
		bookings.PUT("/:bookingId", h.UpdateBooking) // role split handled in the service
		bookings.POST("/sweep", adminMW, h.SweepExpired)
	}
}
