package app

import (
	"context"
	"fmt"
	"time"

	"tally/internal/booking"
)

// QueryService serves reads, caching single-record lookups under
// "hotel:<id>" / "customer:<id>" keys with a TTL.
type QueryService struct {
	repo     booking.BookingRepository
	cache    booking.Cache
	cacheTTL time.Duration
}

func NewQueryService(r booking.BookingRepository, c booking.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (booking.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h booking.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return booking.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *QueryService) GetCustomer(ctx context.Context, id int64) (booking.Customer, error) {
	key := fmt.Sprintf("customer:%d", id)
	var c booking.Customer
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &c); ok {
			return c, nil
		}
	}
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return booking.Customer{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, c, int(s.cacheTTL.Seconds()))
	}
	return c, nil
}

// List reads go straight to the store; the arrays are small and a stale
// cached list would hide capacity changes.
func (s *QueryService) ListHotels(ctx context.Context) ([]booking.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

func (s *QueryService) ListCustomers(ctx context.Context) ([]booking.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *QueryService) ListReservations(ctx context.Context) ([]booking.Reservation, error) {
	return s.repo.ListReservations(ctx)
}
