//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"tally/internal/booking"
	mysqlrepo "tally/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=tally",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	// same connection options as the shipped default DSN: Migrate must
	// work without multiStatements
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/tally?parseTime=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := mysqlrepo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMySQLRepo_EndToEnd(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// hotel CRUD
	if err := repo.CreateHotel(ctx, booking.Hotel{ID: 1, Name: "HotelTest", Location: "CDMX", Rooms: 2}); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	h, err := repo.GetHotel(ctx, 1)
	if err != nil || h.Name != "HotelTest" || h.Rooms != 2 {
		t.Fatalf("GetHotel: %+v, %v", h, err)
	}
	name := "UpdatedHotel"
	if err := repo.UpdateHotel(ctx, 1, booking.HotelPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateHotel: %v", err)
	}
	h, _ = repo.GetHotel(ctx, 1)
	if h.Name != "UpdatedHotel" || h.Location != "CDMX" {
		t.Fatalf("patch semantics: %+v", h)
	}

	// customer CRUD
	if err := repo.CreateCustomer(ctx, booking.Customer{ID: 1, Name: "Juan", Email: "juan@test.com"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	c, err := repo.GetCustomer(ctx, 1)
	if err != nil || c.Email != "juan@test.com" {
		t.Fatalf("GetCustomer: %+v, %v", c, err)
	}

	// reservation mirrors onto the hotel row
	if err := repo.CreateReservation(ctx, booking.Reservation{ID: 11, CustomerID: 1, HotelID: 1}); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	h, _ = repo.GetHotel(ctx, 1)
	if len(h.Reservations) != 1 || h.Reservations[0] != 11 {
		t.Fatalf("hotel reservations: %+v", h.Reservations)
	}

	if err := repo.CancelReservation(ctx, 11); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	h, _ = repo.GetHotel(ctx, 1)
	if len(h.Reservations) != 0 {
		t.Fatalf("expected empty reservations, got %+v", h.Reservations)
	}
	rs, _ := repo.ListReservations(ctx)
	if len(rs) != 0 {
		t.Fatalf("expected empty reservations table, got %+v", rs)
	}

	// missing-record semantics
	if _, err := repo.GetHotel(ctx, 999); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateHotel(ctx, 999, booking.HotelPatch{Name: &name}); err != nil {
		t.Fatalf("update missing should be a no-op, got %v", err)
	}

	if err := repo.DeleteHotel(ctx, 1); err != nil {
		t.Fatalf("DeleteHotel: %v", err)
	}
	if _, err := repo.GetHotel(ctx, 1); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
