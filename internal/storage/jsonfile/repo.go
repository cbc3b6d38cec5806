package jsonfile

import (
	"context"

	"tally/internal/adapters/observability"
	"tally/internal/booking"
)

// Store implements booking.BookingRepository. The context parameters are
// kept for the port; flat-file reads and writes are not cancelable.

func (s *Store) CreateHotel(_ context.Context, h booking.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.Reservations == nil {
		h.Reservations = []int64{}
	}
	hotels := loadArray[booking.Hotel](s.path(hotelsFile))
	err := saveArray(s.path(hotelsFile), append(hotels, h))
	observability.ObserveStore("jsonfile", "create_hotel", err)
	return err
}

func (s *Store) GetHotel(_ context.Context, id int64) (booking.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range loadArray[booking.Hotel](s.path(hotelsFile)) {
		if h.ID == id {
			return h, nil
		}
	}
	return booking.Hotel{}, booking.ErrNotFound
}

func (s *Store) ListHotels(_ context.Context) ([]booking.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadArray[booking.Hotel](s.path(hotelsFile)), nil
}

func (s *Store) UpdateHotel(_ context.Context, id int64, p booking.HotelPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hotels := loadArray[booking.Hotel](s.path(hotelsFile))
	for i := range hotels {
		if hotels[i].ID != id {
			continue
		}
		if p.Name != nil {
			hotels[i].Name = *p.Name
		}
		if p.Location != nil {
			hotels[i].Location = *p.Location
		}
		if p.Rooms != nil {
			hotels[i].Rooms = *p.Rooms
		}
	}
	err := saveArray(s.path(hotelsFile), hotels)
	observability.ObserveStore("jsonfile", "update_hotel", err)
	return err
}

func (s *Store) DeleteHotel(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hotels := loadArray[booking.Hotel](s.path(hotelsFile))
	kept := hotels[:0]
	for _, h := range hotels {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	err := saveArray(s.path(hotelsFile), kept)
	observability.ObserveStore("jsonfile", "delete_hotel", err)
	return err
}

func (s *Store) CreateCustomer(_ context.Context, c booking.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customers := loadArray[booking.Customer](s.path(customersFile))
	err := saveArray(s.path(customersFile), append(customers, c))
	observability.ObserveStore("jsonfile", "create_customer", err)
	return err
}

func (s *Store) GetCustomer(_ context.Context, id int64) (booking.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range loadArray[booking.Customer](s.path(customersFile)) {
		if c.ID == id {
			return c, nil
		}
	}
	return booking.Customer{}, booking.ErrNotFound
}

func (s *Store) ListCustomers(_ context.Context) ([]booking.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadArray[booking.Customer](s.path(customersFile)), nil
}

func (s *Store) UpdateCustomer(_ context.Context, id int64, p booking.CustomerPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customers := loadArray[booking.Customer](s.path(customersFile))
	for i := range customers {
		if customers[i].ID != id {
			continue
		}
		if p.Name != nil {
			customers[i].Name = *p.Name
		}
		if p.Email != nil {
			customers[i].Email = *p.Email
		}
	}
	err := saveArray(s.path(customersFile), customers)
	observability.ObserveStore("jsonfile", "update_customer", err)
	return err
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customers := loadArray[booking.Customer](s.path(customersFile))
	kept := customers[:0]
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	err := saveArray(s.path(customersFile), kept)
	observability.ObserveStore("jsonfile", "delete_customer", err)
	return err
}

// CreateReservation appends the reservation row and mirrors its id into
// the owning hotel's embedded list, writing both snapshots. Capacity is
// the command service's rule, not the store's.
func (s *Store) CreateReservation(_ context.Context, r booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations := loadArray[booking.Reservation](s.path(reservationsFile))
	if err := saveArray(s.path(reservationsFile), append(reservations, r)); err != nil {
		observability.ObserveStore("jsonfile", "create_reservation", err)
		return err
	}

	hotels := loadArray[booking.Hotel](s.path(hotelsFile))
	for i := range hotels {
		if hotels[i].ID == r.HotelID {
			hotels[i].Reservations = append(hotels[i].Reservations, r.ID)
		}
	}
	err := saveArray(s.path(hotelsFile), hotels)
	observability.ObserveStore("jsonfile", "create_reservation", err)
	return err
}

func (s *Store) ListReservations(_ context.Context) ([]booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadArray[booking.Reservation](s.path(reservationsFile)), nil
}

// CancelReservation removes the row and strips the id from every hotel
// that carries it. Unknown ids fall through as a no-op rewrite.
func (s *Store) CancelReservation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations := loadArray[booking.Reservation](s.path(reservationsFile))
	kept := reservations[:0]
	for _, r := range reservations {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if err := saveArray(s.path(reservationsFile), kept); err != nil {
		observability.ObserveStore("jsonfile", "cancel_reservation", err)
		return err
	}

	hotels := loadArray[booking.Hotel](s.path(hotelsFile))
	for i := range hotels {
		ids := hotels[i].Reservations[:0]
		for _, rid := range hotels[i].Reservations {
			if rid != id {
				ids = append(ids, rid)
			}
		}
		hotels[i].Reservations = ids
	}
	err := saveArray(s.path(hotelsFile), hotels)
	observability.ObserveStore("jsonfile", "cancel_reservation", err)
	return err
}
