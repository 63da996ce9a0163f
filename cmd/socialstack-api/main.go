package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
	"socialstack/internal/config"
	"socialstack/internal/content"
	"socialstack/internal/httpapi"
	"socialstack/internal/jsonl"
	"socialstack/internal/kstream"
	"socialstack/internal/model"
	"socialstack/internal/pricing"
	"socialstack/internal/processing"
	"socialstack/internal/projections"
	"socialstack/internal/rejections"
	"socialstack/internal/schemagate"
	"socialstack/internal/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rejStore := rejections.NewStore(cfg.RejectionsDir)
	reg := loadCatalogs(ctx, cfg, rejStore)

	var rdb *redis.Client
	if cfg.StoreBackend == config.BackendRedis {
		// redis/go-redis/v9: one client serves the session store and the projections.
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
	}

	var kv store.Store = store.NewMemoryStore()
	var projector processing.Projector
	if rdb != nil {
		kv = store.NewRedisStore(rdb, "socialstack:", cfg.SessionTTL)
		p := projections.NewProjector(rdb)
		if err := p.ProjectAll(ctx, reg); err != nil {
			log.Error().Err(err).Msg("Projectors: initial projection failed")
		}
		projector = p
	}
	defer kv.Close()

	ingestor := &processing.Ingestor{
		Registry:   reg,
		Rejections: rejStore,
		CatalogDir: cfg.CatalogDir,
		Projector:  projector,
	}

	var pub kstream.Publisher = kstream.NopPublisher{}
	if cfg.KafkaEnabled {
		pub = kstream.NewKafkaPublisher(cfg.KafkaBroker)

		reader := kstream.KafkaReader(cfg.KafkaBroker, kstream.TopicCatalogIngest, "socialstack-catalog")
		go func() {
			handle := func(ctx context.Context, u model.CatalogUpdate) error {
				_, err := ingestor.Ingest(ctx, "kafka:"+kstream.TopicCatalogIngest, u)
				return err
			}
			if err := kstream.ConsumeCatalogUpdates(ctx, reader, handle); err != nil {
				log.Error().Err(err).Msg("Catalog consumer error")
			}
		}()
	}
	defer pub.Close()

	provider := content.NewProvider(cfg.AI)
	if _, mock := provider.(content.MockProvider); mock {
		log.Info().Msg("Content: no AI_API_KEY, using mock provider")
	}

	srv := httpapi.NewServer(httpapi.Deps{
		Registry:        reg,
		Store:           kv,
		Publisher:       pub,
		Ingestor:        ingestor,
		Content:         provider,
		Currencies:      pricing.DefaultCurrencies(),
		DefaultCurrency: cfg.DefaultCurrency,
		IngestViaKafka:  cfg.KafkaEnabled,
	})

	r := mux.NewRouter()
	srv.RegisterRoutes(r)
	jsonl.RegisterRoutes(r, jsonl.NewLoader(cfg.CatalogDir))

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Strs("catalogs", reg.Names()).Msg("Social Stack API listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", "socialstack-api").Logger()
}

// loadCatalogs starts from the built-in catalogs and overlays every JSONL
// catalog found in CATALOG_DIR, each passed through the validation gate.
func loadCatalogs(ctx context.Context, cfg *config.Config, rejStore *rejections.Store) *catalog.Registry {
	catalogs := catalog.Seed()

	files, err := jsonl.NewLoader(cfg.CatalogDir).LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Str("dir", cfg.CatalogDir).Msg("Catalog loader: failed, serving built-in catalogs")
		return catalog.NewRegistry(catalogs)
	}
	for name, items := range files {
		accepted, rejected := schemagate.ProcessCatalog(ctx, name, items)
		if err := rejStore.WriteAll(ctx, "file:"+name+".jsonl", rejected); err != nil {
			log.Error().Err(err).Msg("Catalog loader: failed to write rejections")
		}
		if len(accepted) == 0 {
			log.Warn().Str("catalog", name).Msg("Catalog loader: no valid items, file ignored")
			continue
		}
		catalogs[name] = accepted
		log.Info().Str("catalog", name).Int("items", len(accepted)).Int("rejected", len(rejected)).Msg("Catalog loader: loaded")
	}
	return catalog.NewRegistry(catalogs)
}
