package providerconfig

import (
	"bwh/core-api/internal/infrastructure/config"
	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/infrastructure/validator"
	"bwh/core-api/internal/modules/providerconfig/delivery/http"
	"bwh/core-api/internal/modules/providerconfig/repository"
	"bwh/core-api/internal/modules/providerconfig/repository/command"
	"bwh/core-api/internal/modules/providerconfig/repository/query"
	"bwh/core-api/internal/modules/providerconfig/usecase"

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

// RegisterModule wires the CRUD HTTP surface and returns the query
// repository so the caller (bootstrap_api.go) can also pass it to
// Hydrate when populating the in-memory provider registry.
func RegisterModule(cfg ModuleConfig) repository.ProviderConfigQueryRepository {
	ucLogger := cfg.Log.WithField("component", "usecase")
	hdlrLogger := cfg.Log.WithField("component", "handler")

	providerConfigCmdRepository := command.NewProviderConfigRepository(cfg.DB)
	providerConfigQryRepository := query.NewProviderConfigRepository(cfg.DB)

	readProviderConfigUseCase := usecase.NewReadProviderConfigUseCase(
		ucLogger,
		cfg.Tracer,
		cfg.DB,
		usecase.ReadProviderConfigRepositories{
			ProviderConfigCmd: providerConfigCmdRepository,
			ProviderConfigQry: providerConfigQryRepository,
		},
	)

	readProviderConfigDetailUseCase := usecase.NewReadProviderConfigDetailUseCase(
		ucLogger,
		cfg.Tracer,
		cfg.DB,
		usecase.ReadProviderConfigDetailRepositories{
			ProviderConfigCmd: providerConfigCmdRepository,
			ProviderConfigQry: providerConfigQryRepository,
		},
	)

	createProviderConfigUseCase := usecase.NewCreateProviderConfigUseCase(
		ucLogger,
		cfg.Tracer,
		cfg.DB,
		usecase.CreateProviderConfigRepositories{
			ProviderConfigCmd: providerConfigCmdRepository,
			ProviderConfigQry: providerConfigQryRepository,
		},
	)

	h := http.NewHandler(
		cfg.Config,
		hdlrLogger,
		cfg.Val,
		http.HandlerUseCases{
			ReadProviderConfigUseCase:       readProviderConfigUseCase,
			ReadProviderConfigDetailUseCase: readProviderConfigDetailUseCase,
			CreateProviderConfigUseCase:     createProviderConfigUseCase,
		},
	)

	routeConfig := http.RouteConfig{
		Server:  cfg.Server,
		Config:  cfg.Config,
		Handler: h,
	}

	routeConfig.Setup()

	return providerConfigQryRepository
}
