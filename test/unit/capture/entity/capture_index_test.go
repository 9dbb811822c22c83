package entity_test

import (
	"testing"

	"bwh/core-api/internal/modules/capture/entity"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createValidCaptureIndex() *entity.CaptureIndex {
	return &entity.CaptureIndex{
		ID:           "capture-index-id-123",
		CaptureID:    "20260730T101500Z-abcd1234",
		Provider:     "github",
		EventType:    "push",
		DeliveryID:   "delivery-id-456",
		Method:       "POST",
		Path:         "/webhooks/github",
		SizeBytes:    512,
		ReplayStatus: entity.ReplayStatusNone,
		ReceivedAt:   1753862100000,
	}
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestCaptureIndex_TableName(t *testing.T) {
	// Arrange
	idx := entity.CaptureIndex{}

	// Act
	tableName := idx.TableName()

	// Assert
	assert.Equal(t, "capture_indices", tableName)
}

func TestCaptureIndex_Validate_Success(t *testing.T) {
	// Arrange
	idx := createValidCaptureIndex()

	// Act
	err := idx.Validate()

	// Assert
	assert.NoError(t, err)
}

func TestCaptureIndex_Validate_PathRequired(t *testing.T) {
	// Arrange
	idx := createValidCaptureIndex()
	idx.Path = ""

	// Act
	err := idx.Validate()

	// Assert
	assert.Error(t, err)
	assert.Equal(t, entity.ErrCaptureIndexPathRequired, err)
}

func TestCaptureIndex_Validate_DefaultsReplayStatus(t *testing.T) {
	// Arrange
	idx := createValidCaptureIndex()
	idx.ReplayStatus = ""

	// Act
	err := idx.Validate()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.ReplayStatusNone, idx.ReplayStatus)
}

func TestCaptureIndex_Validate_PreservesExplicitReplayStatus(t *testing.T) {
	// Arrange
	idx := createValidCaptureIndex()
	idx.ReplayStatus = entity.ReplayStatusSucceeded

	// Act
	err := idx.Validate()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.ReplayStatusSucceeded, idx.ReplayStatus)
}

// ============================================================================
// REPLAY ATTEMPT TESTS
// ============================================================================

func TestReplayAttempt_TableName(t *testing.T) {
	// Arrange
	attempt := entity.ReplayAttempt{}

	// Act
	tableName := attempt.TableName()

	// Assert
	assert.Equal(t, "replay_attempts", tableName)
}

func TestReplayAttempt_Validate_Success(t *testing.T) {
	// Arrange
	attempt := &entity.ReplayAttempt{
		ID:             "attempt-id-789",
		CaptureIndexID: "capture-index-id-123",
		TargetURL:      "https://example.com/webhook",
		StatusCode:     200,
		Succeeded:      true,
		DurationMs:     42,
	}

	// Act
	err := attempt.Validate()

	// Assert
	// ReplayAttempt.Validate() returns nil (no validation rules)
	assert.NoError(t, err)
}
