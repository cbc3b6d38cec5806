package booking

import "context"

// BookingRepository is the storage port. Both backends keep the same
// contract the flat-file layout implies: updates and deletes of missing
// records are no-ops, and creating or cancelling a reservation also
// maintains the id list embedded in the hotel record.
type BookingRepository interface {
	CreateHotel(ctx context.Context, h Hotel) error
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	UpdateHotel(ctx context.Context, id int64, p HotelPatch) error
	DeleteHotel(ctx context.Context, id int64) error

	CreateCustomer(ctx context.Context, c Customer) error
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	UpdateCustomer(ctx context.Context, id int64, p CustomerPatch) error
	DeleteCustomer(ctx context.Context, id int64) error

	CreateReservation(ctx context.Context, r Reservation) error
	ListReservations(ctx context.Context) ([]Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
