package capture_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bwh/core-api/pkg/capture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Replay_StripsHopByHopHeadersAndForwardsBody(t *testing.T) {
	var gotMethod, gotBody string
	var gotHeaders http.Header

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	}))
	defer target.Close()

	store := newTestStore(t)
	ctx := context.Background()

	rec := capture.NewRecord("POST", "http://original/webhooks/github",
		"/webhooks/github",
		map[string]string{"X-GitHub-Event": "push", "Host": "original", "Connection": "keep-alive"},
		nil, []byte(`{"ref":"main"}`), "application/json")
	saved, err := store.Save(ctx, rec)
	require.NoError(t, err)

	dispatcher := capture.NewDispatcher(store, nil)
	result, err := dispatcher.Replay(ctx, saved.Capture.ID, capture.ReplayOptions{TargetURL: target.URL})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, result.Status)
	assert.Equal(t, "ok", result.BodyText)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, `{"ref":"main"}`, gotBody)
	assert.Equal(t, "push", gotHeaders.Get("X-GitHub-Event"))
	assert.NotEqual(t, "keep-alive", gotHeaders.Get("Connection"))
}

func TestDispatcher_Replay_OverridesMethodAndHeaders(t *testing.T) {
	var gotMethod string
	var gotHeader string

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Override")
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	store := newTestStore(t)
	ctx := context.Background()

	rec := capture.NewRecord("POST", "http://original/x", "/x", map[string]string{}, nil, []byte(`{}`), "application/json")
	saved, err := store.Save(ctx, rec)
	require.NoError(t, err)

	dispatcher := capture.NewDispatcher(store, nil)
	_, err = dispatcher.Replay(ctx, saved.Capture.ID, capture.ReplayOptions{
		TargetURL: target.URL,
		Method:    http.MethodPut,
		Headers:   map[string]string{"X-Override": "yes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "yes", gotHeader)
}

func TestDispatcher_Replay_UnknownCaptureID(t *testing.T) {
	store := newTestStore(t)
	dispatcher := capture.NewDispatcher(store, nil)

	_, err := dispatcher.Replay(context.Background(), "missing", capture.ReplayOptions{TargetURL: "http://x"})
	assert.ErrorIs(t, err, capture.ErrNotFound)
}

func TestDispatcher_Replay_TransportFailureWrapsExecutionError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := capture.NewRecord("POST", "http://original/x", "/x", nil, nil, []byte(`{}`), "application/json")
	saved, err := store.Save(ctx, rec)
	require.NoError(t, err)

	dispatcher := capture.NewDispatcher(store, nil)
	_, err = dispatcher.Replay(ctx, saved.Capture.ID, capture.ReplayOptions{TargetURL: "http://127.0.0.1:0"})

	require.Error(t, err)
	var execErr *capture.ExecutionError
	assert.ErrorAs(t, err, &execErr)
}
