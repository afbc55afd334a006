package application

import (
	"context"
	"errors"
	"testing"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/adapters/memory"
	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
)

func newService(t *testing.T) Service {
	t.Helper()
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	store := memory.NewStore()
	return Service{Catalog: catalog, Prefs: store, Clock: store}
}

func TestResolveParamPrefersSelectedCountryName(t *testing.T) {
	service := newService(t)
	country, ok := service.Catalog.ByCode("GB")
	if !ok {
		t.Fatal("expected GB in catalog")
	}
	got := service.ResolveParam(&country, "Canada", ports.ResolveOptions{ProfileFallback: true})
	if got != "United Kingdom" {
		t.Fatalf("expected United Kingdom, got %q", got)
	}
}

func TestResolveParamSentinelFallsBackToProfile(t *testing.T) {
	service := newService(t)
	sentinel := service.Catalog.Sentinel()
	got := service.ResolveParam(&sentinel, "India", ports.ResolveOptions{ProfileFallback: true})
	if got != "India" {
		t.Fatalf("expected India, got %q", got)
	}
}

func TestResolveParamSentinelWithoutProfileIsEmpty(t *testing.T) {
	service := newService(t)
	sentinel := service.Catalog.Sentinel()
	if got := service.ResolveParam(&sentinel, "", ports.ResolveOptions{ProfileFallback: true}); got != "" {
		t.Fatalf("expected empty param, got %q", got)
	}
	if got := service.ResolveParam(nil, "", ports.ResolveOptions{ProfileFallback: true}); got != "" {
		t.Fatalf("expected empty param for nil selection, got %q", got)
	}
}

func TestResolveParamOwnerViewCanSkipProfileFallback(t *testing.T) {
	service := newService(t)
	sentinel := service.Catalog.Sentinel()
	got := service.ResolveParam(&sentinel, "India", ports.ResolveOptions{ProfileFallback: false})
	if got != "" {
		t.Fatalf("expected empty param with fallback disabled, got %q", got)
	}
}

func TestByCodeReturnsFirstMatchForDuplicateCodes(t *testing.T) {
	service := newService(t)
	country, ok := service.Catalog.ByCode("IN")
	if !ok {
		t.Fatal("expected IN in catalog")
	}
	if country.Name != "Default INR" {
		t.Fatalf("expected first IN entry (Default INR), got %q", country.Name)
	}
}

func TestSelectedDefaultsToSentinel(t *testing.T) {
	service := newService(t)
	country, err := service.Selected(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("selected failed: %v", err)
	}
	if !country.IsSentinel() {
		t.Fatalf("expected sentinel, got %+v", country)
	}
}

func TestSelectPersistsPreference(t *testing.T) {
	service := newService(t)
	if _, err := service.Select(context.Background(), "sess-1", "JP"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	country, err := service.Selected(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("selected failed: %v", err)
	}
	if country.Code != "JP" || country.Currency != "JPY" {
		t.Fatalf("expected persisted JP selection, got %+v", country)
	}
}

func TestSelectRejectsUnknownCode(t *testing.T) {
	service := newService(t)
	_, err := service.Select(context.Background(), "sess-1", "ZZ")
	if !errors.Is(err, domainerrors.ErrUnknownCountry) {
		t.Fatalf("expected ErrUnknownCountry, got %v", err)
	}
}

func TestSelectSentinelResetsToGlobal(t *testing.T) {
	service := newService(t)
	if _, err := service.Select(context.Background(), "sess-1", "DE"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	country, err := service.Select(context.Background(), "sess-1", ports.SentinelCode)
	if err != nil {
		t.Fatalf("select sentinel failed: %v", err)
	}
	if !country.IsSentinel() {
		t.Fatalf("expected sentinel, got %+v", country)
	}
}
