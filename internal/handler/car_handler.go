package handler

import (
	"net/http"
	"strconv"

	"car_rental/internal/model"
	"car_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// CarHandler handles car catalog requests
type CarHandler struct {
	service service.CarService
}

// NewCarHandler creates a new CarHandler
func NewCarHandler(s service.CarService) *CarHandler {
	return &CarHandler{service: s}
}

func (h *CarHandler) ListCars(c *gin.Context) {
	var filters model.CarFilters
	if typeParam := c.Query("type"); typeParam != "" {
		filters.Type = &typeParam
	}
	if fuelParam := c.Query("fuel_type"); fuelParam != "" {
		filters.FuelType = &fuelParam
	}
	if transmissionParam := c.Query("transmission"); transmissionParam != "" {
		filters.Transmission = &transmissionParam
	}
	if availableParam := c.Query("available"); availableParam != "" {
		available, err := strconv.ParseBool(availableParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid value for 'available', use true or false")
			return
		}
		filters.Available = &available
	}
	if maxPriceParam := c.Query("max_price"); maxPriceParam != "" {
		maxPrice, err := strconv.ParseInt(maxPriceParam, 10, 64)
		if err != nil || maxPrice <= 0 {
			respondError(c, http.StatusBadRequest, "Invalid value for 'max_price'")
			return
		}
		filters.MaxPrice = &maxPrice
	}

	cars, err := h.service.ListCars(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", cars)
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid car ID")
		return
	}

	car, err := h.service.GetCar(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", car)
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var req model.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	car, err := h.service.CreateCar(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Car created", car)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid car ID")
		return
	}

	var req model.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	car, err := h.service.UpdateCar(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Car updated", car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid car ID")
		return
	}

	if err := h.service.DeleteCar(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Car deleted", nil)
}

// RegisterCarRoutes registers car catalog routes. Browsing is public, inventory
// management is admin only.
func (h *CarHandler) RegisterCarRoutes(rg *gin.RouterGroup, jwtAuthMW, adminMW gin.HandlerFunc) {
	carGroup := rg.Group("/cars")
	{
		carGroup.GET("", h.ListCars)
		carGroup.GET("/:id", h.GetCar)
		carGroup.POST("", jwtAuthMW, adminMW, h.CreateCar)
		carGroup.PUT("/:id", jwtAuthMW, adminMW, h.UpdateCar)
		carGroup.DELETE("/:id", jwtAuthMW, adminMW, h.DeleteCar)
	}
}
