package helper

import (
	"bwh/core-api/internal/modules/capture/entity"
	pcentity "bwh/core-api/internal/modules/providerconfig/entity"
)

// CaptureIndexFixture provides reusable test data builders for
// capture index entities.
type CaptureIndexFixture struct {
	ID         string
	CaptureID  string
	Provider   string
	EventType  string
	DeliveryID string
	Method     string
	Path       string
	SizeBytes  int64
	ReceivedAt int64
}

// NewCaptureIndexFixture creates a valid capture index fixture with
// sensible defaults.
func NewCaptureIndexFixture() *CaptureIndexFixture {
	return &CaptureIndexFixture{
		ID:         "11111111-1111-1111-1111-111111111111",
		CaptureID:  "22222222-2222-2222-2222-222222222222",
		Provider:   "github",
		EventType:  "push",
		DeliveryID: "delivery-001",
		Method:     "POST",
		Path:       "/webhooks/github",
		SizeBytes:  512,
		ReceivedAt: 1700000000000,
	}
}

// WithID sets a custom capture index ID.
func (f *CaptureIndexFixture) WithID(id string) *CaptureIndexFixture {
	f.ID = id
	return f
}

// WithCaptureID sets a custom capture ID.
func (f *CaptureIndexFixture) WithCaptureID(id string) *CaptureIndexFixture {
	f.CaptureID = id
	return f
}

// WithProvider sets a custom provider name.
func (f *CaptureIndexFixture) WithProvider(provider string) *CaptureIndexFixture {
	f.Provider = provider
	return f
}

// ToEntity converts the fixture to entity.CaptureIndex.
func (f *CaptureIndexFixture) ToEntity() *entity.CaptureIndex {
	return &entity.CaptureIndex{
		ID:           f.ID,
		CaptureID:    f.CaptureID,
		Provider:     f.Provider,
		EventType:    f.EventType,
		DeliveryID:   f.DeliveryID,
		Method:       f.Method,
		Path:         f.Path,
		SizeBytes:    f.SizeBytes,
		ReplayStatus: entity.ReplayStatusNone,
		ReceivedAt:   f.ReceivedAt,
	}
}

// ProviderConfigFixture provides reusable test data builders for
// provider configuration entities.
type ProviderConfigFixture struct {
	ID     string
	Name   string
	Type   string
	Secret string
}

// NewProviderConfigFixture creates a valid provider config fixture
// with sensible defaults.
func NewProviderConfigFixture() *ProviderConfigFixture {
	return &ProviderConfigFixture{
		ID:     "33333333-3333-3333-3333-333333333333",
		Name:   "github",
		Type:   "github",
		Secret: "test-secret",
	}
}

// WithName sets a custom provider config name.
func (f *ProviderConfigFixture) WithName(name string) *ProviderConfigFixture {
	f.Name = name
	return f
}

// WithType sets a custom provider config type.
func (f *ProviderConfigFixture) WithType(t string) *ProviderConfigFixture {
	f.Type = t
	return f
}

// ToEntity converts the fixture to entity.ProviderConfig.
func (f *ProviderConfigFixture) ToEntity() *pcentity.ProviderConfig {
	return &pcentity.ProviderConfig{
		ID:      f.ID,
		Name:    f.Name,
		Type:    f.Type,
		Secret:  f.Secret,
		Enabled: true,
	}
}
