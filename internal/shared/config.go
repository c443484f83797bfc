package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	PlatformBase  string
	PlatformKey   string
	PlatformRPS   int
	ImportDir     string
	ImportWorkers int
	DraftTTL      time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/wizard?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		PlatformBase:  env("PLATFORM_BASE_URL", "https://api.homestay.example.com/v1"),
		PlatformKey:   env("PLATFORM_API_KEY", ""),
		PlatformRPS:   atoi("PLATFORM_RPS", 5),
		ImportDir:     env("IMPORT_DIR", "./drafts"),
		ImportWorkers: atoi("IMPORT_WORKERS", 8),
		DraftTTL:      time.Duration(atoi("DRAFT_TTL_SECONDS", 86400)) * time.Second,
	}
	if c.PlatformKey == "" {
		log.Warn().Msg("PLATFORM_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
