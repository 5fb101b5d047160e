package handler

import (
	"errors"
	"log"
	"net/http"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/service"
	"vehicle_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup and signin requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondError(c, http.StatusBadRequest, "Validation failed", vErr.Error())
		case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrPhoneExists):
			utils.RespondError(c, http.StatusBadRequest, "Failed to create user", err.Error())
		default:
			log.Printf("Error during signup: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to create user", "Internal server error")
		}
		return
	}

	// The password hash is excluded by the model's JSON tags.
	utils.Respond(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.RespondError(c, http.StatusUnauthorized, "Signin failed", err.Error())
			return
		}
		log.Printf("Error during signin: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Signin failed", "Internal server error")
		return
	}

	utils.Respond(c, http.StatusOK, "Signin successful", result)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
	}
}
