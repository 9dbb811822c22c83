package capture_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bwh/core-api/pkg/capture"
	"bwh/core-api/pkg/webhook/providers"
	"bwh/core-api/pkg/webhook/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*capture.Server, *capture.FSStore) {
	t.Helper()
	store := newTestStore(t)
	detector := capture.NewDetectorRegistry()
	server := capture.NewServer(store, detector, capture.ServerConfig{})
	return server, store
}

func doRequest(t *testing.T, server *capture.Server, req *http.Request) *http.Response {
	t.Helper()
	resp, err := server.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestServer_CatchAll_CapturesArbitraryRequest(t *testing.T) {
	server, store := newTestServer(t)

	body := []byte(`{"ref":"main"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "push")

	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeJSON(t, resp)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "capture recorded", out["message"])

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "github", all[0].Capture.Provider)
	assert.Equal(t, "push", all[0].Capture.Headers["X-Github-Event"])
}

func TestServer_CatchAll_VerifiesAgainstRegisteredProvider(t *testing.T) {
	store := newTestStore(t)
	detector := capture.NewDetectorRegistry()
	reg := providers.NewRegistry()
	reg.Register(providers.NewGitHub("s3cr3t"))
	server := capture.NewServer(store, detector, capture.ServerConfig{Providers: reg})

	body := []byte(`{"ref":"main"}`)
	sum, err := signature.Hex(signature.SHA256, "s3cr3t", body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "push")
	req.Header.Set("X-Hub-Signature-256", "sha256="+sum)

	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "github", all[0].Capture.Provider)
	assert.True(t, all[0].Capture.Verified)
}

func TestServer_CatchAll_UnverifiedWhenSignatureWrong(t *testing.T) {
	store := newTestStore(t)
	detector := capture.NewDetectorRegistry()
	reg := providers.NewRegistry()
	reg.Register(providers.NewGitHub("s3cr3t"))
	server := capture.NewServer(store, detector, capture.ServerConfig{Providers: reg})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewReader([]byte(`{"ref":"main"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "push")
	req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")

	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "github", all[0].Capture.Provider)
	assert.False(t, all[0].Capture.Verified)
}

func TestServer_HandleList(t *testing.T) {
	server, store := newTestServer(t)
	_, err := store.Save(context.Background(), sampleRecord("github", "/a"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/_captures/", nil)
	resp := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeJSON(t, resp)
	assert.Equal(t, true, out["success"])
	captures, ok := out["captures"].([]any)
	require.True(t, ok)
	assert.Len(t, captures, 1)
}

func TestServer_HandleGet_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/_captures/missing-id", nil)
	resp := doRequest(t, server, req)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_HandleGet_Found(t *testing.T) {
	server, store := newTestServer(t)
	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(context.Background(), rec)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/_captures/"+rec.ID, nil)
	resp := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeJSON(t, resp)
	assert.Equal(t, true, out["success"])
}

func TestServer_HandleDelete(t *testing.T) {
	server, store := newTestServer(t)
	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(context.Background(), rec)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/_captures/"+rec.ID, nil)
	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = store.Get(context.Background(), rec.ID)
	assert.ErrorIs(t, err, capture.ErrNotFound)
}

func TestServer_HandleDeleteAll(t *testing.T) {
	server, store := newTestServer(t)
	_, err := store.Save(context.Background(), sampleRecord("github", "/a"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), sampleRecord("stripe", "/b"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/_captures/", nil)
	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServer_HandleSearch(t *testing.T) {
	server, store := newTestServer(t)
	gh := sampleRecord("github", "/webhooks/github")
	gh.Provider = "github"
	_, err := store.Save(context.Background(), gh)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/_captures/search?q=github", nil)
	resp := doRequest(t, server, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeJSON(t, resp)
	captures, ok := out["captures"].([]any)
	require.True(t, ok)
	assert.Len(t, captures, 1)
}

func TestServer_HandleReplay_NoDispatcherConfigured(t *testing.T) {
	server, store := newTestServer(t)
	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(context.Background(), rec)
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"targetUrl": "http://example.com"})
	req := httptest.NewRequest(http.MethodPost, "/_captures/"+rec.ID+"/replay", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestServer_HandleReplay_WithDispatcher(t *testing.T) {
	store := newTestStore(t)
	detector := capture.NewDetectorRegistry()
	dispatcher := capture.NewDispatcher(store, nil)
	server := capture.NewServer(store, detector, capture.ServerConfig{Dispatcher: dispatcher})

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(context.Background(), rec)
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"targetUrl": target.URL})
	req := httptest.NewRequest(http.MethodPost, "/_captures/"+rec.ID+"/replay", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeJSON(t, resp)
	assert.Equal(t, true, out["success"])
}

func TestServer_HandleReplay_MissingTargetURL(t *testing.T) {
	store := newTestStore(t)
	detector := capture.NewDetectorRegistry()
	dispatcher := capture.NewDispatcher(store, nil)
	server := capture.NewServer(store, detector, capture.ServerConfig{Dispatcher: dispatcher})

	req := httptest.NewRequest(http.MethodPost, "/_captures/some-id/replay", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp := doRequest(t, server, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
