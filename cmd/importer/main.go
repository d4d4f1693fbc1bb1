package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"easybooking/internal/adapters/observability"
	redisad "easybooking/internal/adapters/redis"
	"easybooking/internal/app"
	"easybooking/internal/domain"
	"easybooking/internal/shared"
	mongostore "easybooking/internal/storage/mongo"
)

func main() {
	ctx := context.Background()

	file := flag.String("file", "", "JSON file holding an array of listings")
	workers := flag.Int("workers", 4, "Concurrent inserts")
	flag.Parse()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if *file == "" {
		log.Fatal().Msg("-file is required")
	}
	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("open input")
	}
	inputs, err := readListings(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("decode input")
	}

	log.Info().
		Str("file", *file).
		Int("listings", len(inputs)).
		Int("workers", *workers).
		Msg("importer starting")

	client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	log.Info().Msg("db ping ok")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(redisad.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB, Prefix: cfg.DBName})
		defer rc.Close()
		cache = rc
	}
	svc := app.NewListingService(client.Listings(), cache, cfg.CacheTTL())

	ok, failed := importAll(ctx, svc, inputs, *workers)
	log.Info().Int("ok", ok).Int("failed", failed).Msg("import completed")
	if failed > 0 {
		os.Exit(1)
	}
}

// readListings decodes a JSON array of listing objects. Numeric fields may be
// JSON numbers or strings.
func readListings(r io.Reader) ([]domain.ListingInput, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	out := make([]domain.ListingInput, 0, len(raw))
	for _, obj := range raw {
		out = append(out, app.InputFromJSON(obj))
	}
	return out, nil
}

// importAll creates every input through svc with at most workers inserts in
// flight. Rejected or failed items are logged and counted.
func importAll(ctx context.Context, svc *app.ListingService, inputs []domain.ListingInput, workers int) (ok, failed int) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var nOK, nFailed atomic.Int64

	for i, in := range inputs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("semaphore acquire failed")
			nFailed.Add(int64(len(inputs) - i))
			break
		}

		wg.Add(1)
		go func(idx int, in domain.ListingInput) {
			defer wg.Done()
			defer sem.Release(1)

			l, err := svc.Create(ctx, in)
			if err != nil {
				nFailed.Add(1)
				log.Warn().Int("index", idx).Str("title", in.Title).Err(err).Msg("import failed")
				return
			}
			nOK.Add(1)
			log.Debug().Int("index", idx).Str("id", l.ID).Msg("import ok")
		}(i, in)
	}

	wg.Wait()
	return int(nOK.Load()), int(nFailed.Load())
}
