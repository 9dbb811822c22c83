package app

import (
	"context"
	"fmt"
	"time"

	"bwh/core-api/internal/infrastructure/config"
	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/middleware"
	"bwh/core-api/internal/infrastructure/telemetry/metrics"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/infrastructure/validator"
	"bwh/core-api/internal/modules/capture"
	captureusecase "bwh/core-api/internal/modules/capture/usecase"
	"bwh/core-api/internal/modules/providerconfig"
	pkgcapture "bwh/core-api/pkg/capture"
	"bwh/core-api/pkg/webhook"
	"bwh/core-api/pkg/webhook/providers"
	"bwh/core-api/pkg/webhook/replay"

	"github.com/gofiber/fiber/v2"
)

var domains = [2]string{
	"capture",
	"providerconfig",
}

type BootstrapApiConfig struct {
	App     *fiber.App
	Val     validator.Validator
	Log     logger.Logger
	Tracer  tracer.Tracer
	Metrics metrics.Metrics

	configs map[string]*config.Config
	loggers map[string]logger.Logger
	dbs     map[string]database.Database

	providers      *providers.Registry
	captureIndexUC captureusecase.IndexCaptureUseCase
	captureSrv     *pkgcapture.Server
	replayStore    replay.Store
}

// ReplayStore exposes the replay.Store built from the capture domain's
// ReplayConfig (spec.md §4.3/§9), for any downstream webhook.Builder a
// consuming application mounts with WithReplayProtection.
func (b *BootstrapApiConfig) ReplayStore() replay.Store { return b.replayStore }

func (b *BootstrapApiConfig) Run() {
	b.setupMiddleware()
	b.setupInfrastructureModules()
	b.setupModules()
	b.setupHealthRoute()
	b.setupReplayStore()
	b.setupCaptureServer()
}

func (b *BootstrapApiConfig) Stop() {
	if b.captureSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.captureSrv.Shutdown(ctx); err != nil {
			b.Log.WithFields(map[string]any{
				"component":    "capture_server",
				"error_detail": err.Error(),
			}).Error("Failed to shut down capture server")
		}
	}

	for _, domain := range domains {
		log, okLog := b.loggers[domain]
		db, okDb := b.dbs[domain]

		if !okLog || log == nil {
			log = b.Log // Fallback to global logger
		}

		if !okDb || db == nil {
			log.WithFields(map[string]any{
				"domain":    domain,
				"component": "database",
			}).Warn("Database connection not found during shutdown")
			continue
		}

		if err := db.Close(); err != nil {
			log.WithFields(map[string]any{
				"domain":       domain,
				"component":    "database",
				"error_detail": err.Error(),
			}).Error("Failed to close database connection")
		} else {
			log.WithFields(map[string]any{
				"domain":    domain,
				"component": "database",
			}).Info("Database connection closed gracefully")
		}
	}
}

func (b *BootstrapApiConfig) setupMiddleware() {
	t := middleware.NewTelemetrist(b.Log, b.Tracer, b.Metrics)

	b.App.Use(middleware.RequestID())
	b.App.Use(t.HandleMetrics())
	b.App.Use(t.HandleTrace())
	b.App.Use(t.HandleLog())
}

func (b *BootstrapApiConfig) setupInfrastructureModules() {
	domainCount := len(domains)
	b.configs = make(map[string]*config.Config, domainCount)
	b.loggers = make(map[string]logger.Logger, domainCount)
	b.dbs = make(map[string]database.Database, domainCount)

	for _, domain := range domains {
		path := fmt.Sprintf("config/%s/config.yaml", domain)
		domainCfg := config.LoadDomainConfig(path)

		// 1. Logger
		domainLogger := logger.
			New(domainCfg, b.Tracer).
			WithFields(map[string]any{
				"service": domainCfg.App.Name,
				"version": domainCfg.App.Version,
				"env":     domainCfg.App.Env,
				"port":    domainCfg.Http.Port,
				"domain":  domain,
			})

		// 2. Database
		db := database.NewDatabase(&domainCfg.Database, domainLogger, b.Tracer)

		b.configs[domain] = domainCfg
		b.loggers[domain] = domainLogger
		b.dbs[domain] = db
	}
}

func (b *BootstrapApiConfig) setupModules() {
	var m string

	// --- Capture Index Module ---
	m = "capture"
	if cfg, ok := b.configs[m]; ok {
		b.captureIndexUC = capture.RegisterModule(capture.ModuleConfig{
			Config: cfg,
			Server: b.App,
			DB:     b.dbs[m],
			Log:    b.loggers[m],
			Val:    b.Val,
			Tracer: b.Tracer,
		})
	}

	// --- Provider Config Module ---
	m = "providerconfig"
	b.providers = providers.NewRegistry()
	if cfg, ok := b.configs[m]; ok {
		qry := providerconfig.RegisterModule(providerconfig.ModuleConfig{
			Config: cfg,
			Server: b.App,
			DB:     b.dbs[m],
			Log:    b.loggers[m],
			Val:    b.Val,
			Tracer: b.Tracer,
		})

		if err := providerconfig.Hydrate(context.Background(), qry, b.providers); err != nil {
			b.loggers[m].WithFields(map[string]any{
				"component":    "providerconfig",
				"error_detail": err.Error(),
			}).Warn("Failed to hydrate provider registry from persisted configs")
		}
	}
}

func (b *BootstrapApiConfig) setupHealthRoute() {
	h := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "UP",
			"time":   time.Now().Format(time.RFC3339),
		})
	}

	b.App.Get("/", h)
	b.App.Get("/health", h)
}

// setupReplayStore builds the replay.Store backend named by the
// capture domain's ReplayConfig (spec.md §4.3/§9: memory for a single
// process, redis for multiple), defaulting to an in-process
// replay.MemoryStore when the config is absent or unrecognized.
func (b *BootstrapApiConfig) setupReplayStore() {
	replayCfg := config.ReplayConfig{}
	if cfg := b.configs["capture"]; cfg != nil {
		replayCfg = cfg.Replay
	}

	switch replayCfg.Backend {
	case "redis":
		cache := database.NewRedisCache(&replayCfg, b.Log)
		b.replayStore = replay.NewRedisStore(cache.GetClient(), "replay:")
		b.Log.WithFields(map[string]any{
			"component": "replay_store",
			"backend":   "redis",
			"addr":      replayCfg.RedisAddr,
		}).Info("Replay store backed by Redis")
	default:
		opts := memoryStoreOptions(replayCfg)
		b.replayStore = replay.NewMemoryStore(opts...)
		b.Log.WithFields(map[string]any{
			"component": "replay_store",
			"backend":   "memory",
		}).Info("Replay store backed by in-process memory")
	}
}

func memoryStoreOptions(cfg config.ReplayConfig) []replay.MemoryStoreOption {
	var opts []replay.MemoryStoreOption
	if cfg.MaxEntries > 0 {
		opts = append(opts, replay.WithMaxEntries(cfg.MaxEntries))
	}
	return opts
}

// setupCaptureServer starts the catch-all capture ingestion listener
// (spec.md §4.8/§6.3) on its own port: it must accept any method on
// any path, which would otherwise collide with the admin routes
// registered on b.App.
func (b *BootstrapApiConfig) setupCaptureServer() {
	captureCfg := b.configs["capture"]
	if captureCfg == nil || !captureCfg.Capture.Enabled {
		return
	}

	dir := captureCfg.Capture.Dir
	if dir == "" {
		dir = "captures"
	}
	store, err := pkgcapture.NewFSStore(dir)
	if err != nil {
		b.Log.WithFields(map[string]any{
			"component":    "capture_server",
			"error_detail": err.Error(),
		}).Error("Failed to initialize capture store; ingestion server disabled")
		return
	}

	detector := pkgcapture.NewDetectorRegistry()
	dispatcher := pkgcapture.NewDispatcher(store, nil)

	maxBody := captureCfg.Capture.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 << 20
	}

	b.captureSrv = pkgcapture.NewServer(store, detector, pkgcapture.ServerConfig{
		MaxBodyBytes: maxBody,
		Log:          b.loggers["capture"],
		Dispatcher:   dispatcher,
		Providers:    b.providers,
	})

	// Mirror every persisted capture into the Postgres index (spec.md
	// §4.8/SPEC_FULL.md §4) as a fire-and-forget side effect, so it
	// never adds latency to the ingestion response path.
	store.Subscribe(func(cf pkgcapture.CaptureFile) {
		go b.indexCapture(cf)
	})

	port := captureCfg.Capture.Port
	if port == 0 {
		port = 4747
	}
	addr := fmt.Sprintf(":%d", port)

	go func() {
		if err := b.captureSrv.Listen(addr); err != nil {
			b.Log.WithFields(map[string]any{
				"component":    "capture_server",
				"error_detail": err.Error(),
			}).Error("Capture server stopped")
		}
	}()

	b.Log.WithFields(map[string]any{
		"component": "capture_server",
		"addr":      addr,
		"dir":       dir,
	}).Info("Capture ingestion server listening")
}

// indexCapture mirrors one persisted capture into the Postgres index
// via captureIndexUC, resolving EventType/DeliveryID from the hydrated
// provider registry when the detected provider is registered. It is
// the store.Subscribe callback wired in setupCaptureServer; errors are
// logged, never surfaced to the capture request that triggered them.
func (b *BootstrapApiConfig) indexCapture(cf pkgcapture.CaptureFile) {
	if b.captureIndexUC == nil {
		return
	}
	rec := cf.Capture

	var eventType, deliveryID string
	if b.providers != nil {
		if p, ok := b.providers.Get(rec.Provider); ok {
			headers := webhook.Normalize(rec.Headers)
			if et, found := p.GetEventType(headers, rec.Body); found {
				eventType = et
			}
			if did, found := p.GetDeliveryID(headers); found {
				deliveryID = did
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := &captureusecase.IndexCaptureRequest{
		CaptureID:  rec.ID,
		Provider:   rec.Provider,
		EventType:  eventType,
		DeliveryID: deliveryID,
		Method:     rec.Method,
		Path:       rec.Path,
		SizeBytes:  int64(rec.ContentLength),
		ReceivedAt: rec.Timestamp.Unix(),
	}
	if _, err := b.captureIndexUC.Execute(ctx, req); err != nil {
		b.Log.WithFields(map[string]any{
			"component":    "capture_index",
			"capture_id":   rec.ID,
			"error_detail": err.Error(),
		}).Warn("Failed to index capture into Postgres")
	}
}
