package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "homestay_wizard/internal/adapters/http_server"
	"homestay_wizard/internal/adapters/observability"
	"homestay_wizard/internal/adapters/platform"
	redisad "homestay_wizard/internal/adapters/redis"
	"homestay_wizard/internal/app"
	"homestay_wizard/internal/shared"
	mysqlrepo "homestay_wizard/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db (submission audit trail)
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	audit := mysqlrepo.New(db)
	sessions := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client, err := platform.New(cfg.PlatformBase, cfg.PlatformKey, cfg.PlatformRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize platform client")
	}
	wizard := app.NewWizard(sessions, client, audit, cfg.DraftTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{W: wizard})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("wizard API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
