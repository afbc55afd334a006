package ports

import (
	"context"

	pricingports "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/ports"
)

type User struct {
	ID           string
	UserID       string
	Name         string
	Email        string
	Phone        string
	Location     string
	ProfileImage string
	CreatedAt    string
}

// CreatorRef is the resolved form of the upstream's polymorphic creatorId
// field, which arrives either as a bare object id or as a populated user
// document. User is nil in the bare-id case.
type CreatorRef struct {
	ID   string
	User *User
}

func (r CreatorRef) DisplayName() string {
	if r.User != nil && r.User.Name != "" {
		return r.User.Name
	}
	return "Unknown Creator"
}

type Course struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	PriceUSD    float64
	Image       string
	Creator     CreatorRef
	CreatedAt   string
	Pricing     *pricingports.LocalizedPriceInfo
}

// PackageCourse is the minimal course shape embedded in a populated package.
type PackageCourse struct {
	ID       string
	CourseID string
	Title    string
	PriceUSD float64
	Image    string
}

// Package carries its course set in exactly one of two forms: Courses when the
// upstream populated the references, CourseIDs when it returned bare ids. The
// gateway resolves the union once; views never re-check.
type Package struct {
	ID                string
	PackageID         string
	Title             string
	Courses           []PackageCourse
	CourseIDs         []string
	Creator           CreatorRef
	Image             string
	BaseTotalPriceUSD *float64
	CreatedAt         string
	Pricing           *pricingports.LocalizedPriceInfo
}

func (p Package) Populated() bool {
	return len(p.Courses) > 0 || len(p.CourseIDs) == 0
}

type CreateCourseInput struct {
	Title       string
	Description string
	PriceUSD    float64
	Image       string
}

type UpdateCourseInput struct {
	Title       *string
	Description *string
	PriceUSD    *float64
	Image       *string
}

type CreatePackageInput struct {
	Title     string
	CourseIDs []string
	Image     string
}

type UpdatePackageInput struct {
	Title *string
	Image *string
}

type Credentials struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	Location     string
	ProfileImage string
}

type AuthSession struct {
	Token string
	User  User
}

// TokenSource supplies the bearer token for authenticated upstream calls. An
// empty token is not an error locally; the upstream decides authorization.
type TokenSource interface {
	BearerToken(ctx context.Context) string
}

type TokenSourceFunc func(ctx context.Context) string

func (f TokenSourceFunc) BearerToken(ctx context.Context) string {
	return f(ctx)
}

// Upstream is the wire-level client for the marketplace REST API. Every
// method maps to exactly one network call; failures arrive pre-normalized as
// *domainerrors.APIError values.
type Upstream interface {
	ListCourses(ctx context.Context, location string) ([]Course, error)
	GetCourse(ctx context.Context, courseID string, location string) (Course, error)
	ListMyCourses(ctx context.Context, location string) ([]Course, error)
	CreateCourse(ctx context.Context, input CreateCourseInput) (Course, error)
	UpdateCourse(ctx context.Context, courseID string, input UpdateCourseInput) (Course, error)
	DeleteCourse(ctx context.Context, courseID string) error

	ListPackages(ctx context.Context, location string) ([]Package, error)
	GetPackage(ctx context.Context, packageID string, location string) (Package, error)
	ListMyPackages(ctx context.Context, location string) ([]Package, error)
	CreatePackage(ctx context.Context, input CreatePackageInput) (Package, error)
	UpdatePackage(ctx context.Context, packageID string, input UpdatePackageInput) (Package, error)
	DeletePackage(ctx context.Context, packageID string) error

	Login(ctx context.Context, credentials Credentials) (AuthSession, error)
	Register(ctx context.Context, input RegisterInput) (AuthSession, error)
	Me(ctx context.Context, token string) (User, error)
}
