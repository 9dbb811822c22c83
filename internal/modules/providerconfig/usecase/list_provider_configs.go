package usecase

import (
	"context"

	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/modules/providerconfig/repository"
	baserepo "bwh/core-api/internal/pkg/repository"
)

type ReadProviderConfigRepositories struct {
	ProviderConfigCmd repository.ProviderConfigCommandRepository
	ProviderConfigQry repository.ProviderConfigQueryRepository
}

type readProviderConfigUseCase struct {
	Log    logger.Logger
	Tracer tracer.Tracer
	Runner baserepo.TransactionManager
	Repo   ReadProviderConfigRepositories
}

const (
	useCaseName = "usecase:providerconfig.read"
)

var _ ReadProviderConfigUseCase = (*readProviderConfigUseCase)(nil)

func NewReadProviderConfigUseCase(log logger.Logger, trc tracer.Tracer, runner baserepo.TransactionManager, repo ReadProviderConfigRepositories) ReadProviderConfigUseCase {
	return &readProviderConfigUseCase{
		Log:    log.WithField("action", useCaseName),
		Tracer: trc,
		Runner: runner,
		Repo:   repo,
	}
}

func (uc *readProviderConfigUseCase) Execute(ctx context.Context) ([]ProviderConfigResponse, error) {
	span, ctx := uc.Tracer.StartSpan(ctx, useCaseName)
	defer span.Finish()

	log := uc.Log.WithField("method", "execute")
	log.Info("usecase started")

	configs, err := uc.Repo.ProviderConfigQry.FindAllEnabled(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ProviderConfigResponse, 0, len(configs))
	for _, c := range configs {
		result = append(result, ProviderConfigResponse{
			ID:              c.ID,
			Name:            c.Name,
			Type:            c.Type,
			TwilioURL:       c.TwilioURL,
			SignatureHeader: c.SignatureHeader,
			Algorithm:       c.Algorithm,
			Enabled:         c.Enabled,
		})
	}
	return result, nil
}
