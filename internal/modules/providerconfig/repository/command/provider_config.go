/*
|------------------------------------------------------------------------------------
| REPOSITORY ARCHITECTURAL STANDARDS & PERSISTENCE MANIFESTO
|------------------------------------------------------------------------------------
|
| The Repository layer is responsible for low-level data persistence. It acts as
| a bridge between the Domain Entities and the Physical Database.
|
| [1. ERROR MAPPING & TRANSLATION]
| - Repositories MUST NOT return raw database errors (e.g., gorm.ErrRecordNotFound).
| - All errors must be passed through an ErrorMapper to be translated into
|   standardized apperror.AppError (e.g., ErrCodeNotFound).
|
| [2. AUTOMATIC OBSERVABILITY]
| - Persistence operations are automatically traced via GORM Callbacks/Middleware.
| - REPEAT LOGGING PROHIBITION: Do not log errors here if the Database Bridge
|   (GORM Logger) already emits structured logs. This maintains "Log Hygiene".
|
| [3. ATOMICITY COMPLIANCE]
| - Commands MUST respect the 'ctx' (context) to ensure they participate in
|   active transactions managed by the TransactionManager (Runner).
|
| [4. GENERIC CONSTRAINTS]
| - Use BaseRepository embedding for standard CRUD to reduce boilerplate, but
|   override methods if specific business logic or optimization is required.
|
|------------------------------------------------------------------------------------
*/
package command

import (
	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/modules/providerconfig/entity"
	"bwh/core-api/internal/modules/providerconfig/repository"
	baserepo "bwh/core-api/internal/pkg/repository"
)

// providerConfigRepository provides the concrete implementation of
// ProviderConfigCommandRepository. By embedding BaseRepository, it gains
// robust CRUD capabilities while maintaining strict type safety for
// the entity.ProviderConfig model.
type providerConfigRepository struct {
	*baserepo.BaseRepository[entity.ProviderConfig]
}

// [INTERFACE COMPLIANCE CHECK]
var _ repository.ProviderConfigCommandRepository = (*providerConfigRepository)(nil)

// NewProviderConfigRepository initializes the repository with a Database
// connection and a centralized ErrorMapper.
func NewProviderConfigRepository(db database.Database) repository.ProviderConfigCommandRepository {
	return &providerConfigRepository{
		BaseRepository: &baserepo.BaseRepository[entity.ProviderConfig]{
			DB:          db,
			ErrorMapper: database.MapDBError,
		},
	}
}
