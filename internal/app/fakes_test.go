package app_test

import (
	"context"
	"encoding/json"

	"tally/internal/booking"
)

// ---- fakes ----

type fakeRepo struct {
	hotels       map[int64]booking.Hotel
	customers    map[int64]booking.Customer
	reservations []booking.Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hotels:    map[int64]booking.Hotel{},
		customers: map[int64]booking.Customer{},
	}
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h booking.Hotel) error {
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (booking.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return booking.Hotel{}, booking.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]booking.Hotel, error) {
	var out []booking.Hotel
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, id int64, p booking.HotelPatch) error {
	h, ok := f.hotels[id]
	if !ok {
		return nil // no-op on missing, like the store
	}
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Location != nil {
		h.Location = *p.Location
	}
	if p.Rooms != nil {
		h.Rooms = *p.Rooms
	}
	f.hotels[id] = h
	return nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, id int64) error {
	delete(f.hotels, id)
	return nil
}

func (f *fakeRepo) CreateCustomer(ctx context.Context, c booking.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) GetCustomer(ctx context.Context, id int64) (booking.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return booking.Customer{}, booking.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListCustomers(ctx context.Context) ([]booking.Customer, error) {
	var out []booking.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) UpdateCustomer(ctx context.Context, id int64, p booking.CustomerPatch) error {
	c, ok := f.customers[id]
	if !ok {
		return nil
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	f.customers[id] = c
	return nil
}

func (f *fakeRepo) DeleteCustomer(ctx context.Context, id int64) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeRepo) CreateReservation(ctx context.Context, r booking.Reservation) error {
	f.reservations = append(f.reservations, r)
	h := f.hotels[r.HotelID]
	h.Reservations = append(h.Reservations, r.ID)
	f.hotels[r.HotelID] = h
	return nil
}

func (f *fakeRepo) ListReservations(ctx context.Context) ([]booking.Reservation, error) {
	return append([]booking.Reservation(nil), f.reservations...), nil
}

func (f *fakeRepo) CancelReservation(ctx context.Context, id int64) error {
	kept := f.reservations[:0]
	for _, r := range f.reservations {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.reservations = kept
	for hid, h := range f.hotels {
		ids := h.Reservations[:0]
		for _, rid := range h.Reservations {
			if rid != id {
				ids = append(ids, rid)
			}
		}
		h.Reservations = ids
		f.hotels[hid] = h
	}
	return nil
}

type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}
