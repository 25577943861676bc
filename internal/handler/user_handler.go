package handler

import (
	"net/http"
	"strconv"

	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles administrative user requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", user)
}

// RegisterUserRoutes registers user administration routes, all admin only
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, jwtAuthMW, adminMW gin.HandlerFunc) {
	userGroup := rg.Group("/users")
	userGroup.Use(jwtAuthMW, adminMW)
	{
		userGroup.GET("", h.ListUsers)
		userGroup.GET("/:id", h.GetUser)
	}
}
