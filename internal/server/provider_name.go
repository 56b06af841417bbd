package server

import (
	"strings"

	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving it from the instance
// when not explicitly configured. Metrics and logs share it.
func normalizeProviderName(raw string, provider providers.SportsService) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if named, ok := provider.(interface{ Name() string }); ok {
		return strings.ToLower(named.Name())
	}
	return "provider"
}
