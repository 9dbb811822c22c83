package usecase

import (
	"context"

	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/modules/providerconfig/entity"
	"bwh/core-api/internal/modules/providerconfig/repository"
	baserepo "bwh/core-api/internal/pkg/repository"
	"bwh/core-api/internal/pkg/uid"
	"bwh/core-api/internal/pkg/utils"
)

type CreateProviderConfigRepositories struct {
	ProviderConfigCmd repository.ProviderConfigCommandRepository
	ProviderConfigQry repository.ProviderConfigQueryRepository
}

type createProviderConfigUseCase struct {
	Log    logger.Logger
	Tracer tracer.Tracer
	Runner baserepo.TransactionManager
	Repo   CreateProviderConfigRepositories
}

var _ CreateProviderConfigUseCase = (*createProviderConfigUseCase)(nil)

func NewCreateProviderConfigUseCase(log logger.Logger, trc tracer.Tracer, runner baserepo.TransactionManager, repo CreateProviderConfigRepositories) CreateProviderConfigUseCase {
	return &createProviderConfigUseCase{
		Log:    log.WithField("action", "usecase:providerconfig.create"),
		Tracer: trc,
		Runner: runner,
		Repo:   repo,
	}
}

func (uc *createProviderConfigUseCase) Execute(ctx context.Context, req *ProviderConfigRequest) (*ProviderConfigResponse, error) {
	span, ctx := uc.Tracer.StartSpan(ctx, "usecase:providerconfig.create")
	defer span.Finish()

	log := uc.Log.WithContext(ctx).WithField("method", "Exec")
	log.WithFields(map[string]any{
		"business_key": map[string]any{"name": req.Name},
	}).Info("usecase started")

	existing, err := uc.Repo.ProviderConfigQry.FindByName(ctx, req.Name)
	if err != nil {
		utils.RecordSpanError(span, err)
		return nil, err
	}
	if existing != nil {
		err := entity.ErrProviderConfigNameTaken
		utils.RecordSpanError(span, err)
		return nil, err
	}

	e := entity.ProviderConfig{
		ID:              uid.NewUUID(),
		Name:            req.Name,
		Type:            req.Type,
		Secret:          req.Secret,
		TwilioURL:       req.TwilioURL,
		SignatureHeader: req.SignatureHeader,
		Algorithm:       req.Algorithm,
		Enabled:         req.Enabled,
	}

	if err := e.Validate(); err != nil {
		utils.RecordSpanError(span, err)
		return nil, err
	}

	errRunner := uc.Runner.Atomic(ctx, func(txCtx context.Context) error {
		return uc.Repo.ProviderConfigCmd.Create(txCtx, &e)
	})
	if errRunner != nil {
		// [STANDARD ERROR HANDLING]: BUBBLE UP
		// We only record the span error to ensure the trace reflects the failure.
		// Logging is already handled by the Repository/DB bridge.
		utils.RecordSpanError(span, errRunner)
		return nil, errRunner
	}

	log.Info("usecase completed")

	return &ProviderConfigResponse{
		ID:              e.ID,
		Name:            e.Name,
		Type:            e.Type,
		TwilioURL:       e.TwilioURL,
		SignatureHeader: e.SignatureHeader,
		Algorithm:       e.Algorithm,
		Enabled:         e.Enabled,
	}, nil
}
