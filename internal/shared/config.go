package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	StorageDriver string // jsonfile | mysql
	DataDir       string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	Workers       int
	CacheTTL      time.Duration
	RateRPS       int
	RateBurst     int
}

func Load() Config {
	// optional .env in the working directory; real env vars always win
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		StorageDriver: env("STORAGE_DRIVER", "jsonfile"),
		DataDir:       env("DATA_DIR", "data"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/tally?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisPass:     env("REDIS_PASSWORD", ""),
		Workers:       atoi("SEED_WORKERS", 8),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		RateRPS:       atoi("RATE_LIMIT_RPS", 50),
		RateBurst:     atoi("RATE_LIMIT_BURST", 100),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
