package handler

import (
	"errors"
	"net/http"

	"car_rental/internal/middleware"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIResponse is the envelope every endpoint returns
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: false, Message: message})
}

// respondServiceError maps service sentinel errors to HTTP statuses. Anything
// unmapped is logged with its route and treated as an internal error with a
// generic message so persistence details never reach the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrDuplicateRegistration),
		errors.Is(err, service.ErrCarUnavailable),
		errors.Is(err, service.ErrInvalidStatus):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrCarNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"route":   c.FullPath(),
			"user_id": c.GetInt(middleware.AuthUserKey),
		}).Error("Unhandled service error")
		respondError(c, http.StatusInternalServerError, "Something went wrong, please try again later")
	}
}
