// @title         Flatfinder API
// @version       0.1.0
// @description   Ops endpoints for listings, match history and dead letters

package main

import (
	"context"

	"github.com/joho/godotenv"

	"flatfinder/internal/platform/config"
	"flatfinder/internal/platform/logger"
	phttp "flatfinder/internal/platform/net/http"
	"flatfinder/internal/platform/store"

	"flatfinder/internal/services/api"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres, clickhouse optional)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "flatfinder-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", false),
				URL:     chCfg.MayString("DBURL", ""),
				Role:    "flatfinder",
				Tag:     "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
