package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCarUnavailable   = errors.New("car is not available for booking")
	ErrInvalidDateRange = errors.New("end date must be after start date and start date must not be in the past")
	ErrForbidden        = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidStatus    = errors.New("booking status does not allow this transition")
)

// BookingService provides booking lifecycle operations
type BookingService interface {
	CreateBooking(ctx context.Context, userID int, req model.CreateBookingRequest) (*model.Booking, error)
	GetMyBookings(ctx context.Context, userID int) ([]model.Booking, error)
	GetBooking(ctx context.Context, bookingID int64, userID int, userRole string) (*model.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64, userID int, userRole string) (*model.Booking, error)

	// Admin methods
	GetAllBookings(ctx context.Context, filters model.BookingFilters) ([]model.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, status string) (*model.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	carRepo     repository.CarRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, carRepo repository.CarRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo, carRepo: carRepo}
}

// rentalDays charges whole days, partial days round up.
func rentalDays(start, end time.Time) int64 {
	days := int64(end.Sub(start) / (24 * time.Hour))
	if end.Sub(start)%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// CreateBooking validates the date range, prices the rental, and books the car.
// Availability is never read from a snapshot: the repository flips the flag with
// a conditional write in the same transaction as the insert, so of two racing
// requests exactly one succeeds.
func (s *bookingService) CreateBooking(ctx context.Context, userID int, req model.CreateBookingRequest) (*model.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.StartDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrInvalidDateRange
	}

	car, err := s.carRepo.FindByID(ctx, req.CarID)
	if err != nil {
		return nil, fmt.Errorf("failed to load car for booking: %w", err)
	}
	if car == nil {
		return nil, ErrCarNotFound
	}

	booking := &model.Booking{
		Reference:  uuid.NewString(),
		UserID:     userID,
		CarID:      req.CarID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: rentalDays(req.StartDate, req.EndDate) * car.PricePerDay,
		Status:     model.BookingStatusPending,
	}

	if err := s.bookingRepo.CreateWithHold(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrCarNotFound):
			return nil, ErrCarNotFound
		case errors.Is(err, repository.ErrCarUnavailable):
			return nil, ErrCarUnavailable
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"reference":  booking.Reference,
		"user_id":    userID,
		"car_id":     req.CarID,
	}).Info("Booking created")
	return booking, nil
}

// GetMyBookings returns only bookings owned by the requesting identity, newest first
func (s *bookingService) GetMyBookings(ctx context.Context, userID int) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID int64, userID int, userRole string) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if userRole != model.RoleAdmin && booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// CancelBooking cancels an active booking and releases the car. Owners may
// cancel their own bookings; admins may cancel any.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID int64, userID int, userRole string) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID, userID, userRole)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.CancelAndRelease(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, ErrInvalidStatus
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = model.BookingStatusCancelled
	logrus.WithFields(logrus.Fields{"booking_id": bookingID, "user_id": userID}).Info("Booking cancelled")
	return booking, nil
}

// --- Admin methods ---

func (s *bookingService) GetAllBookings(ctx context.Context, filters model.BookingFilters) ([]model.Booking, error) {
	bookings, err := s.bookingRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get all bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking to confirmed or completed. Completion
// releases the car back into the available pool.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID int64, status string) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking for status update: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	switch status {
	case model.BookingStatusConfirmed:
		err = s.bookingRepo.Confirm(ctx, bookingID)
	case model.BookingStatusCompleted:
		err = s.bookingRepo.CompleteAndRelease(ctx, bookingID)
	default:
		return nil, ErrInvalidStatus
	}
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, ErrInvalidStatus
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	return booking, nil
}
