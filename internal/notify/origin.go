package notify

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

var (
	originMu        sync.RWMutex
	allowedOrigins  map[string]struct{}
	allowAllOrigins bool
)

// SetAllowedOrigins configures which HTTP origins may open an events
// subscription. "*" allows every origin; invalid entries are ignored with
// a log line.
func SetAllowedOrigins(origins []string) {
	normalized := make(map[string]struct{}, len(origins))
	allowAll := false

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
			continue
		}
		n, ok := normalizeOrigin(trimmed)
		if !ok {
			log.Printf("Ignoring invalid origin in configuration: %q", origin)
			continue
		}
		normalized[n] = struct{}{}
	}

	originMu.Lock()
	allowedOrigins = normalized
	allowAllOrigins = allowAll
	originMu.Unlock()
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}

func isOriginAllowed(r *http.Request) bool {
	originHeader := r.Header.Get("Origin")
	if originHeader == "" {
		// Non-browser clients (the command-line front end) send no Origin.
		return true
	}

	normalized, ok := normalizeOrigin(originHeader)
	if !ok {
		return false
	}

	originMu.RLock()
	defer originMu.RUnlock()

	if allowAllOrigins {
		return true
	}
	_, exists := allowedOrigins[normalized]
	return exists
}

func checkOrigin(r *http.Request) bool {
	if isOriginAllowed(r) {
		return true
	}
	log.Printf("Blocked events connection from disallowed origin: %q", r.Header.Get("Origin"))
	return false
}
