package capture

import (
	"bwh/core-api/internal/infrastructure/config"
	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/infrastructure/validator"
	"bwh/core-api/internal/modules/capture/delivery/http"
	"bwh/core-api/internal/modules/capture/repository/command"
	"bwh/core-api/internal/modules/capture/repository/query"
	"bwh/core-api/internal/modules/capture/usecase"

	"github.com/gofiber/fiber/v2"
)

type ModuleConfig struct {
	Config *config.Config
	Server *fiber.App
	DB     database.Database
	Log    logger.Logger
	Val    validator.Validator
	Tracer tracer.Tracer
}

// RegisterModule wires the CRUD/index HTTP surface and returns the
// index use case so the caller (bootstrap_api.go) can also invoke it
// directly from pkg/capture.Store.Subscribe, outside of HTTP.
func RegisterModule(cfg ModuleConfig) usecase.IndexCaptureUseCase {
	ucLogger := cfg.Log.WithField("component", "usecase")
	hdlrLogger := cfg.Log.WithField("component", "handler")

	// setup repositories
	captureIndexCmdRepository := command.NewCaptureIndexRepository(cfg.DB)
	captureIndexQryRepository := query.NewCaptureIndexRepository(cfg.DB)

	// setup use cases
	indexCaptureUseCase := usecase.NewIndexCaptureUseCase(
		ucLogger,
		cfg.Tracer,
		cfg.DB,
		usecase.IndexCaptureRepositories{
			CaptureIndexCmd: captureIndexCmdRepository,
			CaptureIndexQry: captureIndexQryRepository,
		},
	)

	// setup handler
	h := http.NewHandler(
		cfg.Config,
		hdlrLogger,
		cfg.Val,
		http.HandlerUseCases{
			IndexCaptureUseCase: indexCaptureUseCase,
		},
	)

	routeConfig := http.RouteConfig{
		Server:  cfg.Server,
		Config:  cfg.Config,
		Handler: h,
	}
	routeConfig.Setup()

	return indexCaptureUseCase
}
