package service

import (
	"context"
	"strings"
	"sync"

	"car_rental/internal/model"
	"car_rental/internal/repository"
)

// In-memory repository fakes. The booking fake shares the car fake's state so
// the availability hold behaves like the real conditional write: under the
// shared lock, only one caller can flip an available car.

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []model.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type memCarRepo struct {
	mu     sync.Mutex
	nextID int
	cars   map[int]*model.Car
}

func newMemCarRepo() *memCarRepo {
	return &memCarRepo{nextID: 1, cars: make(map[int]*model.Car)}
}

func (r *memCarRepo) Create(_ context.Context, car *model.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cars {
		if c.RegistrationNumber == car.RegistrationNumber {
			return repository.ErrDuplicateKey
		}
	}
	car.ID = r.nextID
	r.nextID++
	cp := *car
	r.cars[car.ID] = &cp
	return nil
}

func (r *memCarRepo) FindByID(_ context.Context, id int) (*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCarRepo) FindAll(_ context.Context, filters model.CarFilters) ([]model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cars []model.Car
	for _, c := range r.cars {
		if filters.Type != nil && c.Type != *filters.Type {
			continue
		}
		if filters.Available != nil && c.Available != *filters.Available {
			continue
		}
		cars = append(cars, *c)
	}
	return cars, nil
}

func (r *memCarRepo) Update(_ context.Context, car *model.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.cars[car.ID]
	if !ok {
		return repository.ErrCarNotFound
	}
	available := existing.Available
	cp := *car
	cp.Available = available // The plain update never touches the hold flag
	r.cars[car.ID] = &cp
	return nil
}

func (r *memCarRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cars, id)
	return nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*model.Booking
	cars     *memCarRepo
}

func newMemBookingRepo(cars *memCarRepo) *memBookingRepo {
	return &memBookingRepo{nextID: 1, bookings: make(map[int64]*model.Booking), cars: cars}
}

func (r *memBookingRepo) CreateWithHold(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars.mu.Lock()
	defer r.cars.mu.Unlock()

	car, ok := r.cars.cars[b.CarID]
	if !ok {
		return repository.ErrCarNotFound
	}
	if !car.Available {
		return repository.ErrCarUnavailable
	}
	car.Available = false

	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id int64) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) FindByUser(_ context.Context, userID int) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []model.Booking
	// Newest first: IDs are monotonically increasing
	for id := r.nextID - 1; id >= 1; id-- {
		if b, ok := r.bookings[id]; ok && b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (r *memBookingRepo) FindAll(_ context.Context, filters model.BookingFilters) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []model.Booking
	for id := r.nextID - 1; id >= 1; id-- {
		b, ok := r.bookings[id]
		if !ok {
			continue
		}
		if filters.UserID != nil && b.UserID != *filters.UserID {
			continue
		}
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (r *memBookingRepo) Confirm(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != model.BookingStatusPending {
		return repository.ErrInvalidTransition
	}
	b.Status = model.BookingStatusConfirmed
	return nil
}

func (r *memBookingRepo) CancelAndRelease(_ context.Context, id int64) error {
	return r.closeAndRelease(id, model.BookingStatusCancelled,
		model.BookingStatusPending, model.BookingStatusConfirmed)
}

func (r *memBookingRepo) CompleteAndRelease(_ context.Context, id int64) error {
	return r.closeAndRelease(id, model.BookingStatusCompleted, model.BookingStatusConfirmed)
}

func (r *memBookingRepo) closeAndRelease(id int64, toStatus string, fromStatuses ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars.mu.Lock()
	defer r.cars.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return repository.ErrInvalidTransition
	}
	allowed := false
	for _, s := range fromStatuses {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return repository.ErrInvalidTransition
	}
	b.Status = toStatus
	if car, ok := r.cars.cars[b.CarID]; ok {
		car.Available = true
	}
	return nil
}
