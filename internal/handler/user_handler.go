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

// UserHandler handles user management requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to get users", "Internal server error")
		return
	}
	if len(users) == 0 {
		utils.Respond(c, http.StatusOK, "No users found", []model.User{})
		return
	}
	utils.Respond(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
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

	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), userID, req, actorID, actorRole)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondError(c, http.StatusBadRequest, "Failed to update user", vErr.Error())
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrUpdateNotAuthorized),
			errors.Is(err, service.ErrRoleChangeNotAllowed),
			errors.Is(err, service.ErrNoFieldsToUpdate):
			utils.RespondError(c, http.StatusBadRequest, "Failed to update user", err.Error())
		default:
			log.Printf("Error updating user: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update user", "Internal server error")
		}
		return
	}

	utils.Respond(c, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserHasActiveBookings),
			errors.Is(err, service.ErrUserNotFound):
			utils.RespondError(c, http.StatusBadRequest, "Failed to delete user", err.Error())
		default:
			log.Printf("Error deleting user: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to delete user", "Internal server error")
		}
		return
	}

	utils.Respond(c, http.StatusOK, "User deleted successfully", nil)
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMW)
	{
		users.GET("", adminMW, h.GetAllUsers)
		users.PUT("/:userId", h.UpdateUser) // self-or-admin enforced in the service
		users.DELETE("/:userId", adminMW, h.DeleteUser)
	}
}
