package repository

import (
	"context"

	"bwh/core-api/internal/modules/providerconfig/entity"
)

type ProviderConfigCommandRepository interface {
	Create(ctx context.Context, cfg *entity.ProviderConfig) error
	Update(ctx context.Context, cfg *entity.ProviderConfig) error
	Delete(ctx context.Context, cfg *entity.ProviderConfig) error
}

type ProviderConfigQueryRepository interface {
	FindAllEnabled(ctx context.Context) ([]entity.ProviderConfig, error)
	FindByName(ctx context.Context, name string) (*entity.ProviderConfig, error)
	Retrieve(ctx context.Context, id string) (*entity.ProviderConfig, error)
}
