package webhook_test

import (
	"testing"

	"bwh/core-api/pkg/webhook"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowerCasesKeys(t *testing.T) {
	raw := map[string]string{"X-GitHub-Event": "push", "Content-Type": "application/json"}

	h := webhook.Normalize(raw)

	v, ok := h.Get("x-github-event")
	assert.True(t, ok)
	assert.Equal(t, "push", v)
}

func TestNormalizeMulti_TakesFirstValue(t *testing.T) {
	raw := map[string][]string{
		"X-Signature": {"first", "second"},
		"Empty":       {},
	}

	h := webhook.NormalizeMulti(raw)

	v, ok := h.Get("x-signature")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	_, ok = h.Get("empty")
	assert.False(t, ok)
}

func TestHeaders_Get_CaseInsensitive(t *testing.T) {
	h := webhook.Headers{"x-signature": "abc"}

	v, ok := h.Get("X-SIGNATURE")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = h.Get("x-missing")
	assert.False(t, ok)
}

func TestHeaders_Clone_IsIndependent(t *testing.T) {
	h := webhook.Headers{"a": "1"}

	clone := h.Clone()
	clone["a"] = "2"
	clone["b"] = "3"

	assert.Equal(t, "1", h["a"])
	_, ok := h["b"]
	assert.False(t, ok)
}
