// Package mysql is the optional booking storage backend. It keeps the
// same repository contract as the flat-file store: missing-record
// updates are no-ops and the hotel row mirrors its reservation ids.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tally/internal/adapters/observability"
	"tally/internal/booking"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate creates the schema, one statement per Exec so it works on
// connections without multiStatements. Idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaSQL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func marshalIDs(ids []int64) string {
	if ids == nil {
		ids = []int64{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

func (r *Repo) CreateHotel(ctx context.Context, h booking.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.Location, h.Rooms, marshalIDs(h.Reservations))
	observability.ObserveStore("mysql", "create_hotel", err)
	return err
}

func scanHotel(row interface{ Scan(...any) error }) (booking.Hotel, error) {
	var h booking.Hotel
	var idsJSON []byte
	if err := row.Scan(&h.ID, &h.Name, &h.Location, &h.Rooms, &idsJSON); err != nil {
		return booking.Hotel{}, err
	}
	h.Reservations = []int64{}
	_ = json.Unmarshal(idsJSON, &h.Reservations)
	return h, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (booking.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err == sql.ErrNoRows {
		return booking.Hotel{}, booking.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context) ([]booking.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateHotel(ctx context.Context, id int64, p booking.HotelPatch) error {
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		valStr(p.Name), valStr(p.Location), valInt(p.Rooms), id)
	observability.ObserveStore("mysql", "update_hotel", err)
	return err
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	observability.ObserveStore("mysql", "delete_hotel", err)
	return err
}

func (r *Repo) CreateCustomer(ctx context.Context, c booking.Customer) error {
	_, err := r.db.ExecContext(ctx, upsertCustomerSQL, c.ID, c.Name, c.Email)
	observability.ObserveStore("mysql", "create_customer", err)
	return err
}

func (r *Repo) GetCustomer(ctx context.Context, id int64) (booking.Customer, error) {
	var c booking.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM customers WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email)
	if err == sql.ErrNoRows {
		return booking.Customer{}, booking.ErrNotFound
	}
	return c, err
}

func (r *Repo) ListCustomers(ctx context.Context) ([]booking.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Customer
	for rows.Next() {
		var c booking.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateCustomer(ctx context.Context, id int64, p booking.CustomerPatch) error {
	_, err := r.db.ExecContext(ctx, updateCustomerSQL, valStr(p.Name), valStr(p.Email), id)
	observability.ObserveStore("mysql", "update_customer", err)
	return err
}

func (r *Repo) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	observability.ObserveStore("mysql", "delete_customer", err)
	return err
}

func (r *Repo) CreateReservation(ctx context.Context, res booking.Reservation) error {
	if _, err := r.db.ExecContext(ctx, insertReservationSQL,
		res.ID, res.CustomerID, res.HotelID); err != nil {
		observability.ObserveStore("mysql", "create_reservation", err)
		return err
	}
	// mirror the id into the hotel row, read-modify-write like the files
	h, err := r.GetHotel(ctx, res.HotelID)
	if err != nil {
		if err == booking.ErrNotFound {
			observability.ObserveStore("mysql", "create_reservation", nil)
			return nil
		}
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE hotels SET reservations = ? WHERE id = ?`,
		marshalIDs(append(h.Reservations, res.ID)), res.HotelID)
	observability.ObserveStore("mysql", "create_reservation", err)
	return err
}

func (r *Repo) ListReservations(ctx context.Context) ([]booking.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id, hotel_id FROM reservations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		var res booking.Reservation
		if err := rows.Scan(&res.ID, &res.CustomerID, &res.HotelID); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *Repo) CancelReservation(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id); err != nil {
		observability.ObserveStore("mysql", "cancel_reservation", err)
		return err
	}
	hotels, err := r.ListHotels(ctx)
	if err != nil {
		return err
	}
	for _, h := range hotels {
		kept := h.Reservations[:0]
		changed := false
		for _, rid := range h.Reservations {
			if rid == id {
				changed = true
				continue
			}
			kept = append(kept, rid)
		}
		if !changed {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			`UPDATE hotels SET reservations = ? WHERE id = ?`, marshalIDs(kept), h.ID); err != nil {
			observability.ObserveStore("mysql", "cancel_reservation", err)
			return err
		}
	}
	observability.ObserveStore("mysql", "cancel_reservation", nil)
	return nil
}
