package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
)

type Service struct {
	Catalog ports.Catalog
	Prefs   ports.PreferenceStore
	Clock   ports.Clock
	Logger  *slog.Logger
}

// Selected returns the country the session currently views prices as. A
// missing or unknown persisted preference falls back to the sentinel rather
// than failing the view.
func (s Service) Selected(ctx context.Context, sessionID string) (ports.Country, error) {
	if strings.TrimSpace(sessionID) == "" {
		return s.Catalog.Sentinel(), nil
	}
	record, found, err := s.Prefs.Get(ctx, sessionID)
	if err != nil {
		return ports.Country{}, err
	}
	if !found {
		return s.Catalog.Sentinel(), nil
	}
	country, ok := s.Catalog.ByCode(record.CountryCode)
	if !ok {
		return s.Catalog.Sentinel(), nil
	}
	return country, nil
}

// Select persists an explicit location choice for the session. The code must
// exist in the catalog; the sentinel code resets the session to global pricing.
func (s Service) Select(ctx context.Context, sessionID string, code string) (ports.Country, error) {
	sessionID = strings.TrimSpace(sessionID)
	code = strings.TrimSpace(code)
	if sessionID == "" || code == "" {
		return ports.Country{}, domainerrors.ErrInvalidRequest
	}
	country, ok := s.Catalog.ByCode(code)
	if !ok {
		return ports.Country{}, domainerrors.ErrUnknownCountry
	}
	if err := s.Prefs.Put(ctx, ports.PreferenceRecord{
		SessionID:   sessionID,
		CountryCode: country.Code,
		UpdatedAt:   s.now(),
	}); err != nil {
		return ports.Country{}, err
	}
	resolveLogger(s.Logger).Info("location preference updated",
		"event", "location_preference_updated",
		"module", "catalog-experience/location-service",
		"layer", "application",
		"session_id", sessionID,
		"country_code", country.Code,
	)
	return country, nil
}

// ResolveParam produces the `location` query value for upstream catalog calls.
// Precedence: explicitly selected non-sentinel country (by name), then the
// signed-in user's profile location when the fallback is enabled, then empty,
// which lets the upstream apply its own default (USD).
func (s Service) ResolveParam(selected *ports.Country, profileLocation string, opts ports.ResolveOptions) string {
	if selected != nil && !selected.IsSentinel() {
		return selected.Name
	}
	if opts.ProfileFallback && strings.TrimSpace(profileLocation) != "" {
		return profileLocation
	}
	return ""
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
