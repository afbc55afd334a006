package application

import (
	"strings"
	"testing"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/ports"
)

func floatPtr(v float64) *float64 { return &v }

func TestSelectDisplayPriceFallsBackToBaseUSD(t *testing.T) {
	service := Service{}
	price := service.SelectDisplayPrice(floatPtr(49.99), nil)
	if !price.HasAmount || price.Amount != 49.99 || price.Currency != "USD" {
		t.Fatalf("expected 49.99 USD, got %+v", price)
	}
	if price.HasMultiplier() {
		t.Fatalf("expected no multiplier, got %+v", price)
	}
}

func TestSelectDisplayPriceUsesLocalizedPair(t *testing.T) {
	service := Service{}
	info := &ports.LocalizedPriceInfo{
		OriginalPriceUSD:  49.99,
		OriginalCurrency:  "USD",
		LocalizedPrice:    floatPtr(4150),
		LocalizedCurrency: "INR",
		AppliedMultiplier: floatPtr(1.2),
	}
	price := service.SelectDisplayPrice(floatPtr(49.99), info)
	if price.Amount != 4150 || price.Currency != "INR" {
		t.Fatalf("expected 4150 INR, got %+v", price)
	}
	if price.Multiplier != 1.2 {
		t.Fatalf("expected multiplier 1.2, got %+v", price)
	}
}

func TestSelectDisplayPriceIgnoresPartialLocalization(t *testing.T) {
	service := Service{}
	info := &ports.LocalizedPriceInfo{
		OriginalPriceUSD: 49.99,
		OriginalCurrency: "USD",
		LocalizedPrice:   floatPtr(4150),
		// LocalizedCurrency missing: the pair is unusable.
	}
	price := service.SelectDisplayPrice(floatPtr(49.99), info)
	if price.Amount != 49.99 || price.Currency != "USD" {
		t.Fatalf("expected USD fallback, got %+v", price)
	}
}

func TestSelectDisplayPriceUnitMultiplierNotSurfaced(t *testing.T) {
	service := Service{}
	info := &ports.LocalizedPriceInfo{
		LocalizedPrice:    floatPtr(100),
		LocalizedCurrency: "EUR",
		AppliedMultiplier: floatPtr(1),
	}
	price := service.SelectDisplayPrice(floatPtr(80), info)
	if price.HasMultiplier() {
		t.Fatalf("multiplier of 1 must not be surfaced: %+v", price)
	}
}

func TestSelectDisplayPriceMissingBase(t *testing.T) {
	service := Service{}
	price := service.SelectDisplayPrice(nil, nil)
	if price.HasAmount {
		t.Fatalf("expected no amount, got %+v", price)
	}
	if got := service.Format(price); got != "N/A" {
		t.Fatalf("expected N/A, got %q", got)
	}
}

func TestFormatMissingCurrencyIsNA(t *testing.T) {
	service := Service{}
	got := service.Format(ports.DisplayPrice{Amount: 10, HasAmount: true})
	if got != "N/A" {
		t.Fatalf("expected N/A, got %q", got)
	}
}

func TestFormatValidCurrencyNeverNA(t *testing.T) {
	service := Service{}
	got := service.Format(ports.DisplayPrice{Amount: 4150, HasAmount: true, Currency: "INR"})
	if got == "N/A" || got == "" {
		t.Fatalf("expected formatted price, got %q", got)
	}
	if !strings.Contains(got, "4,150") && !strings.Contains(got, "4150") {
		t.Fatalf("expected amount in output, got %q", got)
	}
}

func TestFormatUnknownCurrencyFallsBack(t *testing.T) {
	service := Service{}
	got := service.Format(ports.DisplayPrice{Amount: 12.5, HasAmount: true, Currency: "ZZZ"})
	if got != "12.50 ZZZ" {
		t.Fatalf("expected plain fallback, got %q", got)
	}
}

func TestRestrictionBlacklisted(t *testing.T) {
	service := Service{}
	restriction := service.Restriction(&ports.LocalizedPriceInfo{
		IsBlacklisted: true,
		Message:       "Not available in your region",
	})
	if !restriction.Blacklisted || restriction.Message != "Not available in your region" {
		t.Fatalf("unexpected restriction: %+v", restriction)
	}
}

func TestRestrictionBlacklistedWithoutMessageGetsDefault(t *testing.T) {
	service := Service{}
	restriction := service.Restriction(&ports.LocalizedPriceInfo{IsBlacklisted: true})
	if !restriction.Blacklisted || restriction.Message == "" {
		t.Fatalf("expected default message, got %+v", restriction)
	}
}

func TestRestrictionClear(t *testing.T) {
	service := Service{}
	if r := service.Restriction(nil); r.Blacklisted {
		t.Fatalf("nil info must not be blacklisted: %+v", r)
	}
	if r := service.Restriction(&ports.LocalizedPriceInfo{}); r.Blacklisted {
		t.Fatalf("clear info must not be blacklisted: %+v", r)
	}
}
