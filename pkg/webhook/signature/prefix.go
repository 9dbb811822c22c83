package signature

import "strings"

// StripPrefix removes an expected prefix (e.g. "sha256=") from a
// signature header value; ok is false if the prefix is absent, which
// the caller must treat as a verification failure, never a panic.
func StripPrefix(value, prefix string) (string, bool) {
	if !strings.HasPrefix(value, prefix) {
		return "", false
	}
	return value[len(prefix):], true
}

// ParseCompound parses Stripe's compound "t=…,v1=…,v1=…" header into the
// timestamp and every signature candidate under key. Multiple values for
// key occur during secret rotation; callers should accept any match.
func ParseCompound(header, key string) (timestamp string, values []string, ok bool) {
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case key:
			values = append(values, kv[1])
		}
	}
	ok = timestamp != "" && len(values) > 0
	return
}
