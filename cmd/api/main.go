package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	server "easybooking/internal/adapters/http_server"
	"easybooking/internal/adapters/observability"
	redisad "easybooking/internal/adapters/redis"
	"easybooking/internal/adapters/view"
	"easybooking/internal/app"
	"easybooking/internal/auth"
	"easybooking/internal/domain"
	"easybooking/internal/shared"
	mongostore "easybooking/internal/storage/mongo"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}

	// deps
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(redisad.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB, Prefix: cfg.DBName})
		defer rc.Close()
		cache = rc
	}
	listings := app.NewListingService(client.Listings(), cache, cfg.CacheTTL())

	var authSvc *auth.Service
	if cfg.AuthEnabled {
		authSvc = auth.NewService(client.Users(), client.Sessions(), cfg.SessionTTL)
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Listings:     listings,
		Auth:         authSvc,
		Cookies:      server.NewSessionCookie(cfg.SessionSecret, cfg.Production()),
		Views:        view.New(cfg.ViewsDir),
		PublicDir:    cfg.PublicDir,
		LoginLimiter: server.NewClientLimiter(rate.Limit(cfg.LoginRate), int(cfg.LoginRate)+1),
		CORSOrigins:  cfg.CORSOrigins,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr()).Msg("server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return observability.Serve(gctx, cfg.MetricsAddr, reg)
	})

	// requests get 503 until every step below has succeeded
	g.Go(func() error {
		if err := startup(gctx, cfg, client, listings, authSvc); err != nil {
			log.Error().Err(err).Msg("startup failed, staying unready")
			return nil
		}
		srv.SetReady(true)
		log.Info().Msg("ready")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		log.Info().Msg("shutting down")
		srv.SetReady(false)
		err := httpSrv.Shutdown(sctx)
		if derr := client.Disconnect(sctx); derr != nil {
			log.Warn().Err(derr).Msg("mongo disconnect")
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("bye")
}

func startup(ctx context.Context, cfg shared.Config, client *mongostore.Client, listings *app.ListingService, authSvc *auth.Service) error {
	if err := client.Ping(ctx); err != nil {
		return err
	}
	log.Info().Str("db", cfg.DBName).Msg("mongo connected")

	if err := client.EnsureIndexes(ctx); err != nil {
		return err
	}

	if authSvc != nil {
		created, err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			log.Info().Str("username", cfg.AdminUsername).Msg("admin user created")
		}
	}

	n, err := listings.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("seeded listings")
	}
	return nil
}
