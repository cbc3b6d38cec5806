package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tally/internal/adapters/observability"
	"tally/internal/app"
	"tally/internal/booking"
	"tally/internal/shared"
	"tally/internal/storage/jsonfile"
	mysqlrepo "tally/internal/storage/mysql"
)

// seedFile is the shape of the JSON document the seeder consumes.
type seedFile struct {
	Hotels       []booking.Hotel       `json:"hotels"`
	Customers    []booking.Customer    `json:"customers"`
	Reservations []booking.Reservation `json:"reservations"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := shared.Load()
	log.Logger = observability.NewCLILogger(cfg.AppEnv)

	if len(args) != 1 {
		log.Error().Msg("usage: seed <seed-file.json>")
		return 2
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("cannot read seed file")
		return 2
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("invalid seed JSON")
		return 2
	}

	repo := openRepo(cfg)
	cmd := app.NewCommandService(repo, nil)

	ctx := context.Background()
	start := time.Now()

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	fail := func() {
		mu.Lock()
		failed++
		mu.Unlock()
	}

	for _, h := range seed.Hotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("semaphore acquire failed")
			return 1
		}
		wg.Add(1)
		go func(h booking.Hotel) {
			defer sem.Release(1)
			defer wg.Done()
			if err := cmd.CreateHotel(ctx, h); err != nil {
				log.Warn().Err(err).Int64("hotel_id", h.ID).Msg("skipping hotel")
				fail()
			}
		}(h)
	}
	for _, c := range seed.Customers {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("semaphore acquire failed")
			return 1
		}
		wg.Add(1)
		go func(c booking.Customer) {
			defer sem.Release(1)
			defer wg.Done()
			if err := cmd.CreateCustomer(ctx, c); err != nil {
				log.Warn().Err(err).Int64("customer_id", c.ID).Msg("skipping customer")
				fail()
			}
		}(c)
	}
	wg.Wait()

	// reservations run after hotels exist, and sequentially so the
	// room-capacity check sees every prior booking
	for _, r := range seed.Reservations {
		if err := cmd.CreateReservation(ctx, r); err != nil {
			log.Warn().Err(err).Int64("reservation_id", r.ID).Msg("skipping reservation")
			failed++
		}
	}

	log.Info().
		Int("hotels", len(seed.Hotels)).
		Int("customers", len(seed.Customers)).
		Int("reservations", len(seed.Reservations)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("seed complete")

	if failed > 0 {
		return 1
	}
	return 0
}

func openRepo(cfg shared.Config) booking.BookingRepository {
	switch cfg.StorageDriver {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		if err := mysqlrepo.Migrate(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
		return mysqlrepo.New(db)
	default:
		store, err := jsonfile.Open(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open store failed")
		}
		return store
	}
}
