/*
|------------------------------------------------------------------------------------
| REPOSITORY ARCHITECTURAL STANDARDS & QUERY OPTIMIZATION MANIFESTO
|------------------------------------------------------------------------------------
|
| The Query Repository is dedicated to data retrieval. It follows the R-side of
| CQRS, focusing on performance, filtering, and non-mutating operations.
|
| [1. SELECTIVE RETRIEVAL (NO SELECT *)]
| - Always specify required fields in .Select(). Avoid 'SELECT *' to minimize
|   database I/O and prevent sensitive data leakage.
|
| [2. NULLABLE VS ERROR]
| - If a record is NOT FOUND, return (nil, nil) instead of an error for Query
|   methods (unless the business logic dictates that the absence is an anomaly).
| - Database connection issues or syntax errors MUST still be mapped and returned.
|
| [3. READ-ONLY CONTEXT]
| - Ensure .WithContext(ctx) is called to respect timeouts, cancellations,
|   and tracing propagation.
|
|------------------------------------------------------------------------------------
*/
package query

import (
	"context"
	"errors"

	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/modules/providerconfig/entity"
	"bwh/core-api/internal/modules/providerconfig/repository"

	"gorm.io/gorm"
)

// providerConfigRepository implements repository.ProviderConfigQueryRepository.
type providerConfigRepository struct {
	DB database.Database
}

// [INTERFACE COMPLIANCE CHECK]
var _ repository.ProviderConfigQueryRepository = (*providerConfigRepository)(nil)

// NewProviderConfigRepository creates a new instance for reading ProviderConfig data.
func NewProviderConfigRepository(db database.Database) repository.ProviderConfigQueryRepository {
	return &providerConfigRepository{
		DB: db,
	}
}

func (r *providerConfigRepository) Retrieve(ctx context.Context, id string) (*entity.ProviderConfig, error) {
	var cfg entity.ProviderConfig
	err := r.DB.WithContext(ctx).
		Model(&entity.ProviderConfig{}).
		Where("id = ?", id).
		First(&cfg).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.MapDBError(err)
	}

	return &cfg, nil
}

func (r *providerConfigRepository) FindByName(ctx context.Context, name string) (*entity.ProviderConfig, error) {
	if name == "" {
		return nil, nil
	}
	var cfg entity.ProviderConfig
	err := r.DB.WithContext(ctx).
		Model(&entity.ProviderConfig{}).
		Where("name = ?", name).
		First(&cfg).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.MapDBError(err)
	}

	return &cfg, nil
}

// FindAllEnabled feeds providerconfig.Hydrate (hydrate.go), which loads
// every enabled row into the in-memory provider registry; bootstrap_api.go
// calls it once at boot.
func (r *providerConfigRepository) FindAllEnabled(ctx context.Context) ([]entity.ProviderConfig, error) {
	var configs []entity.ProviderConfig
	err := r.DB.WithContext(ctx).
		Model(&entity.ProviderConfig{}).
		Where("enabled = ?", true).
		Order("name asc").
		Find(&configs).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, database.MapDBError(err)
	}

	return configs, nil
}
