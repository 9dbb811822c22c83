package usecase

import (
	"context"

	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/modules/providerconfig/entity"
	"bwh/core-api/internal/modules/providerconfig/repository"
	baserepo "bwh/core-api/internal/pkg/repository"
)

type ReadProviderConfigDetailRepositories struct {
	ProviderConfigCmd repository.ProviderConfigCommandRepository
	ProviderConfigQry repository.ProviderConfigQueryRepository
}

type readProviderConfigDetailUseCase struct {
	Log    logger.Logger
	Tracer tracer.Tracer
	Runner baserepo.TransactionManager
	Repo   ReadProviderConfigDetailRepositories
}

var _ ReadProviderConfigDetailUseCase = (*readProviderConfigDetailUseCase)(nil)

func NewReadProviderConfigDetailUseCase(log logger.Logger, trc tracer.Tracer, runner baserepo.TransactionManager, repo ReadProviderConfigDetailRepositories) ReadProviderConfigDetailUseCase {
	return &readProviderConfigDetailUseCase{
		Log:    log.WithField("action", "usecase:providerconfig.read_detail"),
		Tracer: trc,
		Runner: runner,
		Repo:   repo,
	}
}

func (uc *readProviderConfigDetailUseCase) Execute(ctx context.Context, id string) (*ProviderConfigResponse, error) {
	span, ctx := uc.Tracer.StartSpan(ctx, "usecase:providerconfig.read_detail")
	defer span.Finish()

	cfg, err := uc.Repo.ProviderConfigQry.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, entity.ErrProviderConfigNotFound
	}

	return &ProviderConfigResponse{
		ID:              cfg.ID,
		Name:            cfg.Name,
		Type:            cfg.Type,
		TwilioURL:       cfg.TwilioURL,
		SignatureHeader: cfg.SignatureHeader,
		Algorithm:       cfg.Algorithm,
		Enabled:         cfg.Enabled,
	}, nil
}
