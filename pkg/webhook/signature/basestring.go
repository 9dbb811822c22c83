package signature

import "strings"

// BaseDirect is basestring scheme (a): the body alone.
func BaseDirect(body []byte) []byte { return body }

// BaseTimestampDotBody is scheme (b): "timestamp.body" (Stripe).
func BaseTimestampDotBody(timestamp string, body []byte) []byte {
	var b strings.Builder
	b.Grow(len(timestamp) + 1 + len(body))
	b.WriteString(timestamp)
	b.WriteByte('.')
	b.Write(body)
	return []byte(b.String())
}

// BaseSlackV0 is scheme (c): "v0:timestamp:body".
func BaseSlackV0(timestamp string, body []byte) []byte {
	var b strings.Builder
	b.Grow(3 + len(timestamp) + 1 + len(body))
	b.WriteString("v0:")
	b.WriteString(timestamp)
	b.WriteByte(':')
	b.Write(body)
	return []byte(b.String())
}

// BaseIDTimestampBody is scheme (d): "id.timestamp.body" (Svix family).
func BaseIDTimestampBody(id, timestamp string, body []byte) []byte {
	var b strings.Builder
	b.Grow(len(id) + 1 + len(timestamp) + 1 + len(body))
	b.WriteString(id)
	b.WriteByte('.')
	b.WriteString(timestamp)
	b.WriteByte('.')
	b.Write(body)
	return []byte(b.String())
}

// BaseURLBody is scheme (e): "url" concatenated with "body" (Twilio).
func BaseURLBody(url string, body []byte) []byte {
	return BaseConcat(url, body)
}

// BaseConcat concatenates a prefix string directly with body, no
// separator (Twilio's "url+body", SendGrid's "timestamp+body").
func BaseConcat(prefix string, body []byte) []byte {
	buf := make([]byte, 0, len(prefix)+len(body))
	buf = append(buf, prefix...)
	buf = append(buf, body...)
	return buf
}
