package entity_test

import (
	"testing"

	"bwh/core-api/internal/modules/providerconfig/entity"
	"bwh/core-api/pkg/webhook/signature"

	"github.com/stretchr/testify/assert"
)

func TestProviderConfig_TableName(t *testing.T) {
	// Arrange
	cfg := entity.ProviderConfig{}

	// Act
	tableName := cfg.TableName()

	// Assert
	assert.Equal(t, "provider_configs", tableName)
}

func TestProviderConfig_Validate_Success(t *testing.T) {
	// Arrange
	cfg := &entity.ProviderConfig{
		Name:   "github",
		Type:   "github",
		Secret: "s3cr3t",
	}

	// Act
	err := cfg.Validate()

	// Assert
	assert.NoError(t, err)
}

func TestProviderConfig_Validate_NameRequired(t *testing.T) {
	// Arrange
	cfg := &entity.ProviderConfig{
		Type:   "github",
		Secret: "s3cr3t",
	}

	// Act
	err := cfg.Validate()

	// Assert
	assert.Error(t, err)
	assert.Equal(t, entity.ErrProviderConfigNameRequired, err)
}

func TestProviderConfig_Validate_BadType(t *testing.T) {
	// Arrange
	cfg := &entity.ProviderConfig{
		Name: "unknown",
		Type: "not-a-real-provider",
	}

	// Act
	err := cfg.Validate()

	// Assert
	assert.Error(t, err)
	assert.Equal(t, entity.ErrProviderConfigBadType, err)
}

func TestProviderConfig_Validate_GenericDefaults(t *testing.T) {
	// Arrange
	cfg := &entity.ProviderConfig{
		Name: "my-generic-hook",
		Type: "generic",
	}

	// Act
	err := cfg.Validate()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "x-signature", cfg.SignatureHeader)
	assert.Equal(t, signature.SHA256, cfg.Algorithm)
}

func TestProviderConfig_Validate_GenericPreservesExplicitValues(t *testing.T) {
	// Arrange
	cfg := &entity.ProviderConfig{
		Name:            "my-generic-hook",
		Type:            "generic",
		SignatureHeader: "x-my-signature",
		Algorithm:       signature.SHA512,
	}

	// Act
	err := cfg.Validate()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "x-my-signature", cfg.SignatureHeader)
	assert.Equal(t, signature.SHA512, cfg.Algorithm)
}

func TestProviderConfig_Validate_TwilioType(t *testing.T) {
	// Arrange
	cfg := &entity.ProviderConfig{
		Name:      "twilio-sms",
		Type:      "twilio",
		TwilioURL: "https://example.com/webhooks/twilio",
	}

	// Act
	err := cfg.Validate()

	// Assert
	assert.NoError(t, err)
}
