package entity

import (
	"time"

	"bwh/core-api/internal/pkg/apperror"
	"bwh/core-api/pkg/webhook/signature"
)

// [ENTITY STANDARD: DOMAIN SPECIFIC ERROR]
const (
	CodeProviderConfigNotFound     = "PROVIDER_CONFIG_NOT_FOUND"
	CodeProviderConfigNameRequired = "PROVIDER_CONFIG_NAME_REQUIRED"
	CodeProviderConfigNameTaken    = "PROVIDER_CONFIG_NAME_TAKEN"
	CodeProviderConfigBadType      = "PROVIDER_CONFIG_BAD_TYPE"
)

var (
	ErrProviderConfigNotFound = apperror.NewPersistance(
		CodeProviderConfigNotFound,
		"provider config not found",
	)

	ErrProviderConfigNameRequired = apperror.NewPersistance(
		CodeProviderConfigNameRequired,
		"name is required",
	)

	ErrProviderConfigNameTaken = apperror.NewPersistance(
		CodeProviderConfigNameTaken,
		"a provider config with this name already exists",
	)

	ErrProviderConfigBadType = apperror.NewPersistance(
		CodeProviderConfigBadType,
		"unsupported provider type",
	)
)

var allowedTypes = map[string]struct{}{
	"github": {}, "stripe": {}, "shopify": {}, "twilio": {}, "slack": {},
	"svix": {}, "clerk": {}, "recall": {}, "sendgrid": {}, "linear": {},
	"ragie": {}, "discord": {}, "generic": {},
}

// ProviderConfig is the declarative row behind pkg/webhook/providers.New:
// spec.md §3.3 says a Provider is "constructed once (optionally from a
// declarative config)", and this table is that config, persisted so an
// operator can register a custom sender or rotate a secret without a
// redeploy. providerconfig.Hydrate (hydrate.go) loads every enabled row
// into providers.Registry at boot and reuses providers.Config's own
// field shape rather than inventing a parallel one.
type ProviderConfig struct {
	ID              string             `gorm:"column:id;type:uuid;primaryKey"`
	Name            string             `gorm:"column:name;type:varchar(50);not null;unique"`
	Type            string             `gorm:"column:type;type:varchar(20);not null"`
	Secret          string             `gorm:"column:secret;type:text"`
	TwilioURL       string             `gorm:"column:twilio_url;type:text"`
	SignatureHeader string             `gorm:"column:signature_header;type:varchar(100)"`
	Algorithm       signature.Algorithm `gorm:"column:algorithm;type:varchar(10)"`
	Enabled         bool               `gorm:"column:enabled;type:bool;not null;default:true"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProviderConfig) TableName() string { return "provider_configs" }

func (e *ProviderConfig) Validate() error {
	if e.Name == "" {
		return ErrProviderConfigNameRequired
	}

	if _, ok := allowedTypes[e.Type]; !ok {
		return ErrProviderConfigBadType
	}

	if e.Type == "generic" {
		if e.SignatureHeader == "" {
			e.SignatureHeader = "x-signature"
		}
		if e.Algorithm == "" {
			e.Algorithm = signature.SHA256
		}
	}

	return nil
}
