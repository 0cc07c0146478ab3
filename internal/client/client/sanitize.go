package client

import (
	"strings"
)

const (
	maskedValue = "***"
	// maxLoggedBody bounds response bodies in debug logs.
	maxLoggedBody = 500
)

// sensitiveKeys are compared after lower-casing and dropping '_' and '-'.
var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"confirm":         {},
	"confirmpassword": {},
	"aadhaar":         {},
	"aadhar":          {},
	"aadhaarnumber":   {},
	"aadharnumber":    {},
	"token":           {},
	"accesstoken":     {},
	"idtoken":         {},
	"jwt":             {},
}

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	k = strings.NewReplacer("_", "", "-", "").Replace(k)
	_, ok := sensitiveKeys[k]
	return ok
}

// Sanitize returns a copy of v (a decoded JSON value) with credential-like
// fields masked at any depth.
func Sanitize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if isSensitive(k) {
				out[k] = maskedValue
				continue
			}
			out[k] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Sanitize(val)
		}
		return out
	default:
		return v
	}
}

// sanitizedJSON renders any body (struct, map, text) for logging with
// credentials masked.
func sanitizedJSON(body any) string {
	if body == nil {
		return ""
	}
	if s, ok := body.(string); ok {
		return s
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "<unserializable>"
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "<unserializable>"
	}
	out, err := json.Marshal(Sanitize(generic))
	if err != nil {
		return "<unserializable>"
	}
	return string(out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
