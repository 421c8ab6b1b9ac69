package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"flatfinder/internal/modkit"
	"flatfinder/internal/modkit/module"
	"flatfinder/internal/platform/config"
	"flatfinder/internal/platform/logger"
	"flatfinder/internal/platform/store"

	"flatfinder/internal/adapters/feed"
	dispatchmod "flatfinder/internal/services/dispatch/module"
	ingestdom "flatfinder/internal/services/ingest/domain"
	ingestmod "flatfinder/internal/services/ingest/module"
	listingsmod "flatfinder/internal/services/listings/module"
	matcherdom "flatfinder/internal/services/matcher/domain"
	matchermod "flatfinder/internal/services/matcher/module"
	matchesmod "flatfinder/internal/services/matches/module"
	prefsmod "flatfinder/internal/services/prefs/module"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")
	natsCfg := root.Prefix("SERVICE_NATS_")
	pipeCfg := root.Prefix("PIPELINE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "flatfinder-pipeline",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", false),
			URL:     chCfg.MayString("DBURL", ""),
			Role:    "flatfinder",
			Tag:     "pipeline",
		},
		RDS: store.RedisConfig{
			Enabled:  rdsCfg.MayBool("ENABLED", true),
			Addr:     rdsCfg.MayString("ADDR", "127.0.0.1:6379"),
			DB:       rdsCfg.MayInt("DB", 0),
			Password: rdsCfg.MayString("PASSWORD", ""),
		},
		NATS: store.NATSConfig{
			Enabled: true,
			URL:     natsCfg.MustString("URL"),
			Name:    "flatfinder-pipeline",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{
		Log: *l,
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		KV:  st.RDS,
		Bus: st.Bus,
	}

	// Build dependency modules first
	listings := listingsmod.New(deps)
	prefs := prefsmod.New(deps)
	matches := matchesmod.New(deps)
	dispatch := dispatchmod.New(deps)

	// Matcher fans one listing out to candidates, records history, dispatches
	matcher := matchermod.New(deps, modkit.WithPorts(matcherdom.Ports{
		Index:      module.MustPortsOf[prefsmod.Ports](prefs).Index,
		Matches:    module.MustPortsOf[matchesmod.Ports](matches).Writer,
		Dispatcher: module.MustPortsOf[dispatchmod.Ports](dispatch).Dispatcher,
	}))

	// One feed client per configured URL
	urls := strings.Split(pipeCfg.MustString("FEED_URLS"), ",")
	feeds := make([]ingestdom.FeedPort, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		feeds = append(feeds, feed.New(feed.Options{
			URL:       u,
			UserAgent: pipeCfg.MayString("FEED_USER_AGENT", ""),
			Timeout:   pipeCfg.MayDuration("FEED_TIMEOUT", 15*time.Second),
		}))
	}

	ingest := ingestmod.New(deps, ingestmod.Deps{
		Feeds:    feeds,
		Detector: module.MustPortsOf[listingsmod.Ports](listings).Detector,
		Sweeper:  module.MustPortsOf[listingsmod.Ports](listings).Sweeper,
		Engine:   module.MustPortsOf[matchermod.Ports](matcher).Engine,
	})

	// Register ports
	module.Register(listings.Name(), listings.Ports())
	module.Register(prefs.Name(), prefs.Ports())
	module.Register(matches.Name(), matches.Ports())
	module.Register(dispatch.Name(), dispatch.Ports())
	module.Register(matcher.Name(), matcher.Ports())
	module.Register(ingest.Name(), ingest.Ports())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Preference index rebuild loop runs beside the ingest loop
	rebuilder := module.MustPortsOf[prefsmod.Ports](prefs).Rebuilder
	go func() {
		if err := rebuilder.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("prefs rebuild loop stopped")
		}
	}()

	runner := module.MustPortsOf[ingestmod.Ports](ingest).Runner
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("pipeline stopped")
	}
	l.Info().Msg("pipeline shut down")
}
