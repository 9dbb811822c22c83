package capture

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bwh/core-api/pkg/webhook/signature"
)

// Sign synthesizes the signature headers a replayed/executed request
// needs, the inverse of the verifiers in pkg/webhook/providers. It
// mutates headers in place. url is only consumed by schemes that sign
// over the request URL (Twilio); other providers ignore it.
func Sign(providerName, secret, url string, body []byte, headers map[string]string) error {
	switch providerName {
	case "github":
		sum, err := signature.Hex(signature.SHA256, secret, signature.BaseDirect(body))
		if err != nil {
			return err
		}
		headers["X-Hub-Signature-256"] = "sha256=" + sum

	case "stripe":
		ts := currentTimestamp()
		sum, err := signature.Hex(signature.SHA256, secret, signature.BaseTimestampDotBody(ts, body))
		if err != nil {
			return err
		}
		headers["Stripe-Signature"] = fmt.Sprintf("t=%s,v1=%s", ts, sum)

	case "shopify":
		sum, err := signature.Base64(signature.SHA256, secret, signature.BaseDirect(body))
		if err != nil {
			return err
		}
		headers["X-Shopify-Hmac-SHA256"] = sum

	case "slack":
		ts := currentTimestamp()
		sum, err := signature.Hex(signature.SHA256, secret, signature.BaseSlackV0(ts, body))
		if err != nil {
			return err
		}
		headers["X-Slack-Request-Timestamp"] = ts
		headers["X-Slack-Signature"] = "v0=" + sum

	case "svix", "clerk", "recall":
		id := headers["Svix-Id"]
		if id == "" {
			id = "msg_" + uuid.NewString()
		}
		ts := currentTimestamp()
		sum, err := signature.Base64(signature.SHA256, secret, signature.BaseIDTimestampBody(id, ts, body))
		if err != nil {
			return err
		}
		headers["Svix-Id"] = id
		headers["Svix-Timestamp"] = ts
		headers["Svix-Signature"] = "v1," + sum

	case "sendgrid":
		ts := currentTimestamp()
		sum, err := signature.Base64(signature.SHA256, secret, signature.BaseConcat(ts, body))
		if err != nil {
			return err
		}
		headers["X-Twilio-Email-Event-Webhook-Timestamp"] = ts
		headers["X-Twilio-Email-Event-Webhook-Signature"] = sum

	case "linear", "generic":
		sum, err := signature.Hex(signature.SHA256, secret, signature.BaseDirect(body))
		if err != nil {
			return err
		}
		headers["Linear-Signature"] = sum

	case "ragie":
		sum, err := signature.Hex(signature.SHA256, secret, signature.BaseDirect(body))
		if err != nil {
			return err
		}
		headers["X-Ragie-Signature"] = sum

	case "twilio":
		sum, err := signature.Base64(signature.SHA1, secret, signature.BaseURLBody(url, body))
		if err != nil {
			return err
		}
		headers["X-Twilio-Signature"] = sum

	default:
		return fmt.Errorf("capture: no signature scheme known for provider %q", providerName)
	}
	return nil
}

func currentTimestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}
