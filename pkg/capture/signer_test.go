package capture_test

import (
	"strings"
	"testing"

	"bwh/core-api/pkg/capture"
	"bwh/core-api/pkg/webhook/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_GitHub(t *testing.T) {
	body := []byte(`{"zen":"keep it logically awesome"}`)
	headers := map[string]string{}

	err := capture.Sign("github", "s3cr3t", "", body, headers)
	require.NoError(t, err)

	want, err := signature.Hex(signature.SHA256, "s3cr3t", body)
	require.NoError(t, err)
	assert.Equal(t, "sha256="+want, headers["X-Hub-Signature-256"])
}

func TestSign_Stripe(t *testing.T) {
	body := []byte(`{"type":"charge.succeeded"}`)
	headers := map[string]string{}

	err := capture.Sign("stripe", "s3cr3t", "", body, headers)
	require.NoError(t, err)

	sig := headers["Stripe-Signature"]
	assert.Contains(t, sig, "t=")
	assert.Contains(t, sig, "v1=")
}

func TestSign_Shopify(t *testing.T) {
	body := []byte(`{"id":1}`)
	headers := map[string]string{}

	err := capture.Sign("shopify", "s3cr3t", "", body, headers)
	require.NoError(t, err)

	want, err := signature.Base64(signature.SHA256, "s3cr3t", body)
	require.NoError(t, err)
	assert.Equal(t, want, headers["X-Shopify-Hmac-SHA256"])
}

func TestSign_Slack(t *testing.T) {
	body := []byte(`{"type":"event_callback"}`)
	headers := map[string]string{}

	err := capture.Sign("slack", "s3cr3t", "", body, headers)
	require.NoError(t, err)

	assert.NotEmpty(t, headers["X-Slack-Request-Timestamp"])
	assert.True(t, strings.HasPrefix(headers["X-Slack-Signature"], "v0="))
}

func TestSign_SvixFamily_GeneratesIDWhenMissing(t *testing.T) {
	body := []byte(`{"foo":"bar"}`)
	headers := map[string]string{}

	err := capture.Sign("svix", "whsec_test", "", body, headers)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(headers["Svix-Id"], "msg_"))
	assert.NotEmpty(t, headers["Svix-Timestamp"])
	assert.True(t, strings.HasPrefix(headers["Svix-Signature"], "v1,"))
}

func TestSign_SvixFamily_PreservesExistingID(t *testing.T) {
	body := []byte(`{"foo":"bar"}`)
	headers := map[string]string{"Svix-Id": "msg_existing"}

	err := capture.Sign("clerk", "whsec_test", "", body, headers)
	require.NoError(t, err)

	assert.Equal(t, "msg_existing", headers["Svix-Id"])
}

func TestSign_SendGrid(t *testing.T) {
	body := []byte(`[{"event":"delivered"}]`)
	headers := map[string]string{}

	err := capture.Sign("sendgrid", "s3cr3t", "", body, headers)
	require.NoError(t, err)

	assert.NotEmpty(t, headers["X-Twilio-Email-Event-Webhook-Timestamp"])
	assert.NotEmpty(t, headers["X-Twilio-Email-Event-Webhook-Signature"])
}

func TestSign_LinearAndGeneric(t *testing.T) {
	for _, providerName := range []string{"linear", "generic"} {
		headers := map[string]string{}
		err := capture.Sign(providerName, "s3cr3t", "", []byte(`{}`), headers)
		require.NoError(t, err)
		assert.NotEmpty(t, headers["Linear-Signature"])
	}
}

func TestSign_Ragie(t *testing.T) {
	headers := map[string]string{}
	err := capture.Sign("ragie", "s3cr3t", "", []byte(`{}`), headers)
	require.NoError(t, err)
	assert.NotEmpty(t, headers["X-Ragie-Signature"])
}

func TestSign_Twilio(t *testing.T) {
	body := []byte(`Body=hi&From=%2B15551234567`)
	headers := map[string]string{}
	url := "https://example.com/webhooks/sms"

	err := capture.Sign("twilio", "s3cr3t", url, body, headers)
	require.NoError(t, err)

	want, err := signature.Base64(signature.SHA1, "s3cr3t", signature.BaseURLBody(url, body))
	require.NoError(t, err)
	assert.Equal(t, want, headers["X-Twilio-Signature"])
}

func TestSign_UnknownProvider_ReturnsError(t *testing.T) {
	err := capture.Sign("not-a-provider", "s3cr3t", "", []byte(`{}`), map[string]string{})
	assert.Error(t, err)
}
