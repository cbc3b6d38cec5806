package app

import (
	"context"
	"fmt"

	"tally/internal/booking"
)

// CommandService owns the write paths: entity CRUD, the room-capacity
// rule, and cache invalidation after every successful write.
type CommandService struct {
	repo  booking.BookingRepository
	cache booking.Cache
}

func NewCommandService(r booking.BookingRepository, c booking.Cache) *CommandService {
	return &CommandService{repo: r, cache: c}
}

func (s *CommandService) CreateHotel(ctx context.Context, h booking.Hotel) error {
	if err := s.repo.CreateHotel(ctx, h); err != nil {
		return err
	}
	s.invalidateHotel(ctx, h.ID)
	return nil
}

// ModifyHotel applies only the patch fields that are set. Modifying a
// hotel that does not exist is a no-op, matching the store contract.
func (s *CommandService) ModifyHotel(ctx context.Context, id int64, p booking.HotelPatch) error {
	if err := s.repo.UpdateHotel(ctx, id, p); err != nil {
		return err
	}
	s.invalidateHotel(ctx, id)
	return nil
}

func (s *CommandService) DeleteHotel(ctx context.Context, id int64) error {
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidateHotel(ctx, id)
	return nil
}

func (s *CommandService) CreateCustomer(ctx context.Context, c booking.Customer) error {
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return err
	}
	s.invalidateCustomer(ctx, c.ID)
	return nil
}

func (s *CommandService) ModifyCustomer(ctx context.Context, id int64, p booking.CustomerPatch) error {
	if err := s.repo.UpdateCustomer(ctx, id, p); err != nil {
		return err
	}
	s.invalidateCustomer(ctx, id)
	return nil
}

func (s *CommandService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.invalidateCustomer(ctx, id)
	return nil
}

// CreateReservation enforces capacity: a hotel whose accepted-reservation
// count has reached its room count rejects with ErrNoRooms. The check and
// the write are separate store operations; concurrent invocations against
// the same files can still race, which the storage contract accepts.
func (s *CommandService) CreateReservation(ctx context.Context, r booking.Reservation) error {
	h, err := s.repo.GetHotel(ctx, r.HotelID)
	if err != nil {
		return fmt.Errorf("reservation %d: %w", r.ID, err)
	}
	if len(h.Reservations) >= h.Rooms {
		return booking.ErrNoRooms
	}
	if err := s.repo.CreateReservation(ctx, r); err != nil {
		return err
	}
	s.invalidateHotel(ctx, r.HotelID)
	return nil
}

// CancelReservation removes the reservation and strips its id from the
// owning hotel. Cancelling an unknown id is a no-op.
func (s *CommandService) CancelReservation(ctx context.Context, id int64) error {
	var hotelID int64
	if rs, err := s.repo.ListReservations(ctx); err == nil {
		for _, r := range rs {
			if r.ID == id {
				hotelID = r.HotelID
				break
			}
		}
	}
	if err := s.repo.CancelReservation(ctx, id); err != nil {
		return err
	}
	if hotelID != 0 {
		s.invalidateHotel(ctx, hotelID)
	}
	return nil
}

func (s *CommandService) invalidateHotel(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("hotel:%d", id))
}

func (s *CommandService) invalidateCustomer(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("customer:%d", id))
}
