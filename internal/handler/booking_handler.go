package handler

import (
	"net/http"
	"strconv"

	"car_rental/internal/model"
	"car_rental/internal/service"

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
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Booking created", booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	bookings, err := h.service.GetMyBookings(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, userRole, bookingID, ok := h.authAndBookingID(c)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), bookingID, userID, userRole)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, userRole, bookingID, ok := h.authAndBookingID(c)
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(c.Request.Context(), bookingID, userID, userRole)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking cancelled", booking)
}

func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	var filters model.BookingFilters
	if userIDParam := c.Query("user_id"); userIDParam != "" {
		userID, err := strconv.Atoi(userIDParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid value for 'user_id'")
			return
		}
		filters.UserID = &userID
	}
	if carIDParam := c.Query("car_id"); carIDParam != "" {
		carID, err := strconv.Atoi(carIDParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid value for 'car_id'")
			return
		}
		filters.CarID = &carID
	}
	if statusParam := c.Query("status"); statusParam != "" {
		filters.Status = &statusParam
	}

	bookings, err := h.service.GetAllBookings(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", bookings)
}

func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking status updated", booking)
}

func (h *BookingHandler) authAndBookingID(c *gin.Context) (int, string, int64, bool) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return 0, "", 0, false
	}
	userRole, err := getAuthUserRole(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return 0, "", 0, false
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid booking ID")
		return 0, "", 0, false
	}
	return userID, userRole, bookingID, true
}

// RegisterBookingRoutes registers booking routes. All require authentication;
// the listing of every booking and status transitions are admin only.
func (h *BookingHandler) RegisterBookingRoutes(rg *gin.RouterGroup, jwtAuthMW, adminMW gin.HandlerFunc) {
	bookingGroup := rg.Group("/bookings")
	bookingGroup.Use(jwtAuthMW)
	{
		bookingGroup.POST("", h.CreateBooking)
		bookingGroup.GET("/mybookings", h.GetMyBookings)
		bookingGroup.GET("/:id", h.GetBooking)
		bookingGroup.PUT("/:id/cancel", h.CancelBooking)

		bookingGroup.GET("", adminMW, h.GetAllBookings)
		bookingGroup.PUT("/:id/status", adminMW, h.UpdateBookingStatus)
	}
}
