package webui

import (
	"fmt"
	"strconv"

	gatewayports "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	locationports "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
	pricingapp "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/application"
)

type CountryOption struct {
	Code     string
	Name     string
	Selected bool
}

// Nav is the chrome shared by every page: auth state and the location
// selector.
type Nav struct {
	LoggedIn    bool
	UserName    string
	Countries   []CountryOption
	PricingNote string
}

type PriceView struct {
	Label          string
	MultiplierNote string
}

type CourseCard struct {
	CourseID           string
	Title              string
	Description        string
	CreatorName        string
	Image              string
	Price              PriceView
	Restricted         bool
	RestrictionMessage string
	Owned              bool
}

type PackageCard struct {
	PackageID          string
	Title              string
	CreatorName        string
	Image              string
	CourseCount        int
	Courses            []CourseCard
	Price              PriceView
	Restricted         bool
	RestrictionMessage string
	Owned              bool
}

// Builder turns gateway entities into render-ready view models. All pricing
// decisions go through the pricing service so cards and detail pages cannot
// drift apart.
type Builder struct {
	Pricing pricingapp.Service
}

func (b Builder) CourseCard(course gatewayports.Course, viewerID string) CourseCard {
	base := course.PriceUSD
	price := b.Pricing.SelectDisplayPrice(&base, course.Pricing)
	restriction := b.Pricing.Restriction(course.Pricing)
	return CourseCard{
		CourseID:           course.CourseID,
		Title:              course.Title,
		Description:        course.Description,
		CreatorName:        course.Creator.DisplayName(),
		Image:              course.Image,
		Price:              PriceView{Label: b.Pricing.Format(price), MultiplierNote: multiplierNote(price.Multiplier)},
		Restricted:         restriction.Blacklisted,
		RestrictionMessage: restriction.Message,
		Owned:              viewerID != "" && course.Creator.ID == viewerID,
	}
}

func (b Builder) CourseCards(courses []gatewayports.Course, viewerID string) []CourseCard {
	cards := make([]CourseCard, 0, len(courses))
	for _, course := range courses {
		cards = append(cards, b.CourseCard(course, viewerID))
	}
	return cards
}

func (b Builder) PackageCard(pkg gatewayports.Package, viewerID string) PackageCard {
	price := b.Pricing.SelectDisplayPrice(pkg.BaseTotalPriceUSD, pkg.Pricing)
	restriction := b.Pricing.Restriction(pkg.Pricing)

	members := make([]CourseCard, 0, len(pkg.Courses))
	for _, course := range pkg.Courses {
		memberBase := course.PriceUSD
		memberPrice := b.Pricing.SelectDisplayPrice(&memberBase, nil)
		members = append(members, CourseCard{
			CourseID: course.CourseID,
			Title:    course.Title,
			Image:    course.Image,
			Price:    PriceView{Label: b.Pricing.Format(memberPrice)},
		})
	}

	count := len(pkg.Courses)
	if count == 0 {
		count = len(pkg.CourseIDs)
	}
	return PackageCard{
		PackageID:          pkg.PackageID,
		Title:              pkg.Title,
		CreatorName:        pkg.Creator.DisplayName(),
		Image:              pkg.Image,
		CourseCount:        count,
		Courses:            members,
		Price:              PriceView{Label: b.Pricing.Format(price), MultiplierNote: multiplierNote(price.Multiplier)},
		Restricted:         restriction.Blacklisted,
		RestrictionMessage: restriction.Message,
		Owned:              viewerID != "" && pkg.Creator.ID == viewerID,
	}
}

func (b Builder) PackageCards(pkgs []gatewayports.Package, viewerID string) []PackageCard {
	cards := make([]PackageCard, 0, len(pkgs))
	for _, pkg := range pkgs {
		cards = append(cards, b.PackageCard(pkg, viewerID))
	}
	return cards
}

// NavFor assembles the shared chrome. The pricing note mirrors the catalog
// pages: shown only for an explicit non-sentinel selection.
func NavFor(catalog locationports.Catalog, selected locationports.Country, userName string) Nav {
	nav := Nav{
		LoggedIn: userName != "",
		UserName: userName,
	}
	if !selected.IsSentinel() {
		nav.PricingNote = "Prices shown for: " + selected.Name
	}
	seen := map[string]bool{}
	for _, country := range catalog {
		// The selector keys on codes, so duplicate-code rows collapse to
		// their first (authoritative) entry.
		if seen[country.Code] {
			continue
		}
		seen[country.Code] = true
		nav.Countries = append(nav.Countries, CountryOption{
			Code:     country.Code,
			Name:     country.Name,
			Selected: country.Code == selected.Code,
		})
	}
	return nav
}

func multiplierNote(multiplier float64) string {
	if multiplier == 0 {
		return ""
	}
	return fmt.Sprintf("(x%s)", strconv.FormatFloat(multiplier, 'f', -1, 64))
}
