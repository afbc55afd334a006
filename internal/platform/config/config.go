package config

import (
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// MarketplaceAPIURL is the upstream marketplace REST service. Empty
	// selects the embedded in-memory upstream, which is what local
	// development and the test suite run against.
	MarketplaceAPIURL string
	ImageUploadURL    string

	SessionCookieName string

	// OwnerViewProfileFallback controls whether creator dashboards price
	// against the creator's profile location when no country is selected.
	OwnerViewProfileFallback bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "courseify"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	cookie := os.Getenv("SESSION_COOKIE_NAME")
	if cookie == "" {
		cookie = "courseify_sid"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		MarketplaceAPIURL: strings.TrimRight(os.Getenv("MARKETPLACE_API_URL"), "/"),
		ImageUploadURL:    os.Getenv("IMAGE_UPLOAD_URL"),

		SessionCookieName: cookie,

		OwnerViewProfileFallback: envBool("OWNER_VIEW_PROFILE_FALLBACK", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
