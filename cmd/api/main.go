package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "tally/internal/adapters/http_server"
	"tally/internal/adapters/observability"
	redisad "tally/internal/adapters/redis"
	"tally/internal/app"
	"tally/internal/booking"
	"tally/internal/shared"
	"tally/internal/storage/jsonfile"
	mysqlrepo "tally/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	repo := openRepo(cfg)

	var cache booking.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	cmd := app.NewCommandService(repo, cache)

	srv := server.New(cfg.RateRPS, cfg.RateBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Cmd: cmd})

	log.Info().Str("addr", cfg.HTTPAddr).Str("driver", cfg.StorageDriver).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
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
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db)
	default:
		store, err := jsonfile.Open(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open store failed")
		}
		return store
	}
}
