package webui

import (
	"strings"
	"testing"

	gatewayports "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	locationports "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
	pricingapp "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/application"
	pricingports "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/ports"
)

func f64(v float64) *float64 { return &v }

func TestCourseCardUsesLocalizedPrice(t *testing.T) {
	builder := Builder{Pricing: pricingapp.Service{}}
	card := builder.CourseCard(gatewayports.Course{
		CourseID: "c1",
		Title:    "Go Basics",
		PriceUSD: 50,
		Creator:  gatewayports.CreatorRef{ID: "u1", User: &gatewayports.User{Name: "Asha Verma"}},
		Pricing: &pricingports.LocalizedPriceInfo{
			OriginalPriceUSD:  50,
			LocalizedPrice:    f64(4150),
			LocalizedCurrency: "INR",
			AppliedMultiplier: f64(1.2),
		},
	}, "")

	if !strings.Contains(card.Price.Label, "4,150") {
		t.Fatalf("label = %q, want localized INR amount", card.Price.Label)
	}
	if card.Price.MultiplierNote != "(x1.2)" {
		t.Fatalf("multiplier note = %q", card.Price.MultiplierNote)
	}
	if card.CreatorName != "Asha Verma" {
		t.Fatalf("creator = %q", card.CreatorName)
	}
	if card.Restricted {
		t.Fatal("unrestricted course marked restricted")
	}
}

func TestCourseCardBlacklistSuppressesPurchase(t *testing.T) {
	builder := Builder{Pricing: pricingapp.Service{}}
	card := builder.CourseCard(gatewayports.Course{
		CourseID: "c1",
		PriceUSD: 50,
		Pricing: &pricingports.LocalizedPriceInfo{
			OriginalPriceUSD: 50,
			IsBlacklisted:    true,
			Message:          "Not available in Cuba.",
		},
	}, "")

	if !card.Restricted {
		t.Fatal("blacklisted course not marked restricted")
	}
	if card.RestrictionMessage != "Not available in Cuba." {
		t.Fatalf("restriction message = %q", card.RestrictionMessage)
	}
	if card.Price.Label == "" || card.Price.Label == "N/A" {
		t.Fatalf("price label = %q, blacklisted course should still show its price", card.Price.Label)
	}
}

func TestCourseCardOwnership(t *testing.T) {
	builder := Builder{Pricing: pricingapp.Service{}}
	course := gatewayports.Course{CourseID: "c1", PriceUSD: 10, Creator: gatewayports.CreatorRef{ID: "u1"}}

	if !builder.CourseCard(course, "u1").Owned {
		t.Fatal("creator's own course not marked owned")
	}
	if builder.CourseCard(course, "u2").Owned {
		t.Fatal("someone else's course marked owned")
	}
	if builder.CourseCard(course, "").Owned {
		t.Fatal("anonymous viewer owns nothing")
	}
}

func TestPackageCardFallsBackToBaseTotal(t *testing.T) {
	builder := Builder{Pricing: pricingapp.Service{}}
	card := builder.PackageCard(gatewayports.Package{
		PackageID:         "p1",
		Title:             "Bundle",
		BaseTotalPriceUSD: f64(120),
		CourseIDs:         []string{"c1", "c2", "c3"},
	}, "")

	if !strings.Contains(card.Price.Label, "120") {
		t.Fatalf("label = %q, want USD base total", card.Price.Label)
	}
	if card.CourseCount != 3 {
		t.Fatalf("course count = %d, want 3", card.CourseCount)
	}
}

func TestNavForCollapsesDuplicateCodes(t *testing.T) {
	catalog := locationports.Catalog{
		{Code: locationports.SentinelCode, Name: "Global (USD)", Currency: "USD"},
		{Code: "IN", Name: "Default INR", Currency: "INR"},
		{Code: "IN", Name: "India", Currency: "INR"},
		{Code: "US", Name: "United States", Currency: "USD"},
	}
	nav := NavFor(catalog, catalog[1], "Asha Verma")

	if len(nav.Countries) != 3 {
		t.Fatalf("got %d options, want 3", len(nav.Countries))
	}
	if nav.Countries[1].Name != "Default INR" {
		t.Fatalf("duplicate code kept %q, want first entry", nav.Countries[1].Name)
	}
	if !nav.Countries[1].Selected {
		t.Fatal("selected country not marked")
	}
	if nav.PricingNote != "Prices shown for: Default INR" {
		t.Fatalf("pricing note = %q", nav.PricingNote)
	}
	if !nav.LoggedIn || nav.UserName != "Asha Verma" {
		t.Fatal("auth state not carried into nav")
	}
}

func TestNavForSentinelHidesPricingNote(t *testing.T) {
	catalog := locationports.Catalog{
		{Code: locationports.SentinelCode, Name: "Global (USD)", Currency: "USD"},
	}
	nav := NavFor(catalog, catalog[0], "")

	if nav.PricingNote != "" {
		t.Fatalf("pricing note = %q, want empty for sentinel", nav.PricingNote)
	}
	if nav.LoggedIn {
		t.Fatal("anonymous nav marked logged in")
	}
}
