// Package httputil provides HTTP validation helpers and request inspection
// shared by the validator and handler packages.
package httputil

import (
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// OperationMethods lists the lowercase HTTP methods an OAS 3.0 path item may hold.
var OperationMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// standardStatusCodes contains the RFC 9110 status codes relevant to identity provider endpoints
// plus the remaining registered codes, used to warn about non-standard codes in strict mode.
var standardStatusCodes = map[int]bool{
	100: true, 101: true, 102: true, 103: true,
	200: true, 201: true, 202: true, 203: true, 204: true, 205: true, 206: true, 207: true, 208: true, 226: true,
	300: true, 301: true, 302: true, 303: true, 304: true, 305: true, 307: true, 308: true,
	400: true, 401: true, 402: true, 403: true, 404: true, 405: true, 406: true, 407: true, 408: true,
	409: true, 410: true, 411: true, 412: true, 413: true, 414: true, 415: true, 416: true, 417: true,
	418: true, 421: true, 422: true, 423: true, 424: true, 425: true, 426: true, 428: true, 429: true,
	431: true, 451: true,
	500: true, 501: true, 502: true, 503: true, 504: true, 505: true, 506: true, 507: true, 508: true,
	510: true, 511: true,
}

// ValidateStatusCode checks if a responses key is valid in OAS 3.0:
// "default", an x- extension, a wildcard such as "2XX", or a numeric code 100-599.
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= MinStatusCode && n <= MaxStatusCode
}

// IsStandardStatusCode reports whether code is a registered HTTP status code.
func IsStandardStatusCode(code string) bool {
	n, err := strconv.Atoi(code)
	return err == nil && standardStatusCodes[n]
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and rejects */subtype.
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}
	if typ, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return typ != "" && typ != "*" && !strings.Contains(typ, "/")
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

// PrefersYAML reports whether an Accept header ranks a YAML media type above JSON.
// Ties and missing q-values keep JSON, the default document format.
func PrefersYAML(accept string) bool {
	var yamlQ, jsonQ float64 = -1, -1
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		switch mt {
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			yamlQ = max(yamlQ, q)
		case "application/json", "application/*", "*/*":
			jsonQ = max(jsonQ, q)
		}
	}
	return yamlQ > 0 && yamlQ > jsonQ
}

// RequestScheme returns "https" for TLS requests or, when trustProxy is set,
// when a proxy says so in X-Forwarded-Proto, and "http" otherwise.
func RequestScheme(r *http.Request, trustProxy bool) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); trustProxy && proto != "" {
		proto = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
		if proto == "https" || proto == "http" {
			return proto
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// BaseURL returns the scheme and host the request was addressed to, with no
// trailing slash. Forwarded headers are read only when trustProxy is set.
func BaseURL(r *http.Request, trustProxy bool) string {
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); trustProxy && fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return RequestScheme(r, trustProxy) + "://" + host
}

// ClientIP returns the caller's address. The leftmost X-Forwarded-For entry is
// used only when trustProxy is set; otherwise the connection's remote address.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ip := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
