//go:build e2e
// +build e2e

package providerconfig_test

import (
	"testing"

	"bwh/core-api/internal/infrastructure/config"
	database "bwh/core-api/internal/infrastructure/db"
	"bwh/core-api/internal/infrastructure/logger"
	"bwh/core-api/internal/infrastructure/telemetry/tracer"
	"bwh/core-api/internal/infrastructure/validator"
	"bwh/core-api/internal/modules/providerconfig"
	"bwh/core-api/internal/pkg/apperror"
	"bwh/core-api/internal/pkg/response"
	"bwh/core-api/test/helper"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a test Fiber app with all dependencies, using
// the same error-mapping shape as internal/infrastructure/http.Server so
// AppError-driven failures decode exactly like they would in production.
func setupTestServer(t *testing.T) (*helper.HTTPTestHelper, database.Database) {
	t.Helper()

	db := helper.SetupTestDB(t)

	cfg := &config.Config{
		App: config.AppConfig{
			Name: "core-api-test",
			Env:  "test",
		},
	}
	log := logger.NewNoOpLogger()
	trc := tracer.NewNoOpTracer()
	val := validator.NewPlaygroundValidator()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := err.Error()
			errCode := "ERR_500"
			var details any

			if e, ok := err.(*apperror.AppError); ok {
				code = e.GetHttpStatus()
				message = e.Message
				errCode = e.Code
				details = e.Details
			}

			return c.Status(code).JSON(response.Http{
				Success:   false,
				Message:   message,
				ErrorCode: errCode,
				Errors:    details,
			})
		},
	})

	providerconfig.RegisterModule(providerconfig.ModuleConfig{
		Config: cfg,
		Server: app,
		DB:     db,
		Log:    log,
		Val:    val,
		Tracer: trc,
	})

	return helper.NewHTTPTestHelper(app, t), db
}

func TestCreateProviderConfig_E2E_Success(t *testing.T) {
	httpHelper, db := setupTestServer(t)
	defer helper.CleanupTestDB(t, db)

	helper.TruncateTables(t, db.GetDB(), "provider_configs")

	requestBody := map[string]any{
		"name":   "github-e2e",
		"type":   "github",
		"secret": "s3cr3t",
	}

	resp := httpHelper.POST("/provider-configs/", requestBody)

	var got map[string]any
	httpHelper.AssertJSONResponse(resp, 201, &got)

	assert.Equal(t, true, got["success"])
	assert.Equal(t, "provider config created", got["message"])

	data, ok := got["data"].(map[string]any)
	require.True(t, ok, "response data should be a map")

	assert.Equal(t, "github-e2e", data["name"])
	assert.Equal(t, "github", data["type"])
	assert.NotEmpty(t, data["id"], "provider config id should be generated")
}

func TestCreateProviderConfig_E2E_ValidationError(t *testing.T) {
	httpHelper, db := setupTestServer(t)
	defer helper.CleanupTestDB(t, db)

	testCases := []struct {
		name           string
		requestBody    map[string]any
		expectedStatus int
	}{
		{
			name: "empty name",
			requestBody: map[string]any{
				"name": "",
				"type": "github",
			},
			expectedStatus: 400,
		},
		{
			name: "empty type",
			requestBody: map[string]any{
				"name": "some-provider",
				"type": "",
			},
			expectedStatus: 400,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := httpHelper.POST("/provider-configs/", tc.requestBody)

			var got map[string]any
			httpHelper.AssertJSONResponse(resp, tc.expectedStatus, &got)

			assert.Equal(t, false, got["success"])

			details, ok := got["errors"].([]any)
			require.True(t, ok, "errors should be an array")
			require.NotEmpty(t, details)
		})
	}
}

func TestCreateProviderConfig_E2E_DuplicateName(t *testing.T) {
	httpHelper, db := setupTestServer(t)
	defer helper.CleanupTestDB(t, db)

	helper.TruncateTables(t, db.GetDB(), "provider_configs")

	requestBody := map[string]any{
		"name": "dup-e2e",
		"type": "github",
	}

	resp1 := httpHelper.POST("/provider-configs/", requestBody)
	var ok1 map[string]any
	httpHelper.AssertJSONResponse(resp1, 201, &ok1)
	assert.Equal(t, true, ok1["success"])

	resp2 := httpHelper.POST("/provider-configs/", requestBody)
	var got map[string]any
	httpHelper.AssertJSONResponse(resp2, 400, &got)

	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["message"], "already exists")
}

func TestCreateProviderConfig_E2E_MalformedJSON(t *testing.T) {
	httpHelper, db := setupTestServer(t)
	defer helper.CleanupTestDB(t, db)

	resp := httpHelper.POST("/provider-configs/", "invalid json")

	var got map[string]any
	httpHelper.AssertJSONResponse(resp, 400, &got)
	assert.Equal(t, false, got["success"])
}

func TestCreateProviderConfig_E2E_BadType(t *testing.T) {
	httpHelper, db := setupTestServer(t)
	defer helper.CleanupTestDB(t, db)

	helper.TruncateTables(t, db.GetDB(), "provider_configs")

	requestBody := map[string]any{
		"name": "bad-type-e2e",
		"type": "not-a-real-provider",
	}

	resp := httpHelper.POST("/provider-configs/", requestBody)

	var got map[string]any
	httpHelper.AssertJSONResponse(resp, 400, &got)
	assert.Equal(t, false, got["success"])
}

func TestCreateProviderConfig_E2E_GenericDefaults(t *testing.T) {
	httpHelper, db := setupTestServer(t)
	defer helper.CleanupTestDB(t, db)

	helper.TruncateTables(t, db.GetDB(), "provider_configs")

	requestBody := map[string]any{
		"name": "my-generic-hook-e2e",
		"type": "generic",
	}

	resp := httpHelper.POST("/provider-configs/", requestBody)

	var got map[string]any
	httpHelper.AssertJSONResponse(resp, 201, &got)

	data, ok := got["data"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "x-signature", data["signature_header"])
	assert.Equal(t, "sha256", data["algorithm"])
}
