package service

import (
	"context"
	"errors"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/repository"
)

var (
	ErrCarNotFound           = errors.New("car not found")
	ErrDuplicateRegistration = errors.New("a car with this registration number already exists")
)

// CarService provides car catalog operations
type CarService interface {
	ListCars(ctx context.Context, filters model.CarFilters) ([]model.Car, error)
	GetCar(ctx context.Context, id int) (*model.Car, error)

	// Admin methods
	CreateCar(ctx context.Context, req model.CreateCarRequest) (*model.Car, error)
	UpdateCar(ctx context.Context, id int, req model.UpdateCarRequest) (*model.Car, error)
	DeleteCar(ctx context.Context, id int) error
}

type carService struct {
	carRepo repository.CarRepository
}

// NewCarService creates a new CarService
func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) ListCars(ctx context.Context, filters model.CarFilters) ([]model.Car, error) {
	cars, err := s.carRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

func (s *carService) GetCar(ctx context.Context, id int) (*model.Car, error) {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	if car == nil {
		return nil, ErrCarNotFound
	}
	return car, nil
}

func (s *carService) CreateCar(ctx context.Context, req model.CreateCarRequest) (*model.Car, error) {
	car := &model.Car{
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Type:               req.Type,
		FuelType:           req.FuelType,
		Transmission:       req.Transmission,
		SeatingCapacity:    req.SeatingCapacity,
		PricePerDay:        req.PricePerDay,
		Available:          true, // New listings enter the pool available
		RegistrationNumber: req.RegistrationNumber,
		Image:              req.Image,
		Features:           req.Features,
		Description:        req.Description,
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("failed to create car: %w", err)
	}
	return car, nil
}

func (s *carService) UpdateCar(ctx context.Context, id int, req model.UpdateCarRequest) (*model.Car, error) {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find car for update: %w", err)
	}
	if car == nil {
		return nil, ErrCarNotFound
	}

	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Type != nil {
		car.Type = *req.Type
	}
	if req.FuelType != nil {
		car.FuelType = *req.FuelType
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.SeatingCapacity != nil {
		car.SeatingCapacity = *req.SeatingCapacity
	}
	if req.PricePerDay != nil {
		car.PricePerDay = *req.PricePerDay
	}
	if req.Image != nil {
		car.Image = req.Image
	}
	if req.Features != nil {
		car.Features = req.Features
	}
	if req.Description != nil {
		car.Description = req.Description
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}
	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, id int) error {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find car for deletion: %w", err)
	}
	if car == nil {
		return ErrCarNotFound
	}
	if err := s.carRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	return nil
}
