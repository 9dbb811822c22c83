package capture_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bwh/core-api/pkg/capture"
	"bwh/core-api/pkg/webhook/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Execute_DefaultsToPOSTAndJSONContentType(t *testing.T) {
	var gotMethod, gotContentType, gotBody string

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	executor := capture.NewExecutor()
	result, err := executor.Execute(context.Background(), capture.ExecuteOptions{
		URL:  target.URL,
		Body: map[string]string{"hello": "world"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"hello":"world"}`, gotBody)
}

func TestExecutor_Execute_SignsWhenSecretAndProviderGiven(t *testing.T) {
	var gotSig string
	var gotBody []byte

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Hub-Signature-256")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	executor := capture.NewExecutor()
	_, err := executor.Execute(context.Background(), capture.ExecuteOptions{
		URL:      target.URL,
		Body:     map[string]string{"a": "b"},
		Secret:   "s3cr3t",
		Provider: "github",
	})
	require.NoError(t, err)

	want, err := signature.Hex(signature.SHA256, "s3cr3t", gotBody)
	require.NoError(t, err)
	assert.Equal(t, "sha256="+want, gotSig)
}

func TestExecutor_Execute_RespectsExplicitMethodAndHeaders(t *testing.T) {
	var gotMethod, gotCustom string

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCustom = r.Header.Get("X-Custom")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer target.Close()

	executor := capture.NewExecutor()
	result, err := executor.Execute(context.Background(), capture.ExecuteOptions{
		URL:     target.URL,
		Method:  http.MethodPatch,
		Headers: map[string]string{"X-Custom": "yes"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, result.Status)
	assert.Equal(t, "PATCH", gotMethod)
	assert.Equal(t, "yes", gotCustom)
}

func TestExecutor_Execute_StringBodyPassedVerbatim(t *testing.T) {
	var gotBody string

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	executor := capture.NewExecutor()
	_, err := executor.Execute(context.Background(), capture.ExecuteOptions{
		URL:  target.URL,
		Body: "raw-text-body",
	})
	require.NoError(t, err)

	assert.Equal(t, "raw-text-body", gotBody)
}

func TestExecutor_Execute_UnknownProviderSigningFails(t *testing.T) {
	executor := capture.NewExecutor()

	_, err := executor.Execute(context.Background(), capture.ExecuteOptions{
		URL:      "http://example.com",
		Body:     map[string]string{"a": "b"},
		Secret:   "s3cr3t",
		Provider: "not-a-provider",
	})

	assert.Error(t, err)
}
