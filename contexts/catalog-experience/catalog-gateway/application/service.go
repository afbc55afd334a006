package application

import (
	"context"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
)

// Service fronts the upstream client with the same local validation the
// marketplace applies server-side, so obviously bad payloads are rejected
// before any network call.
type Service struct {
	Upstream ports.Upstream
	Logger   *slog.Logger
}

func (s Service) ListCourses(ctx context.Context, location string) ([]ports.Course, error) {
	return s.Upstream.ListCourses(ctx, location)
}

func (s Service) GetCourse(ctx context.Context, courseID string, location string) (ports.Course, error) {
	if strings.TrimSpace(courseID) == "" {
		return ports.Course{}, domainerrors.NewValidation("course id is required")
	}
	return s.Upstream.GetCourse(ctx, strings.TrimSpace(courseID), location)
}

func (s Service) ListMyCourses(ctx context.Context, location string) ([]ports.Course, error) {
	return s.Upstream.ListMyCourses(ctx, location)
}

func (s Service) CreateCourse(ctx context.Context, input ports.CreateCourseInput) (ports.Course, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Image = strings.TrimSpace(input.Image)
	if fields := validateCourseFields(input.Title, input.PriceUSD, input.Image); len(fields) > 0 {
		return ports.Course{}, domainerrors.NewValidation("course payload is invalid", fields...)
	}
	course, err := s.Upstream.CreateCourse(ctx, input)
	if err != nil {
		return ports.Course{}, err
	}
	resolveLogger(s.Logger).Info("course created",
		"event", "course_created",
		"module", "catalog-experience/catalog-gateway",
		"layer", "application",
		"course_id", course.CourseID,
	)
	return course, nil
}

func (s Service) UpdateCourse(ctx context.Context, courseID string, input ports.UpdateCourseInput) (ports.Course, error) {
	if strings.TrimSpace(courseID) == "" {
		return ports.Course{}, domainerrors.NewValidation("course id is required")
	}
	var fields []domainerrors.FieldError
	if input.Title != nil && len(strings.TrimSpace(*input.Title)) < 3 {
		fields = append(fields, domainerrors.FieldError{Path: "title", Message: "Title must be at least 3 characters."})
	}
	if input.PriceUSD != nil && *input.PriceUSD <= 0 {
		fields = append(fields, domainerrors.FieldError{Path: "price", Message: "Price must be a positive number."})
	}
	if input.Image != nil && !emptyOrURL(*input.Image) {
		fields = append(fields, domainerrors.FieldError{Path: "image", Message: "Please enter a valid URL."})
	}
	if len(fields) > 0 {
		return ports.Course{}, domainerrors.NewValidation("course payload is invalid", fields...)
	}
	return s.Upstream.UpdateCourse(ctx, strings.TrimSpace(courseID), input)
}

func (s Service) DeleteCourse(ctx context.Context, courseID string) error {
	if strings.TrimSpace(courseID) == "" {
		return domainerrors.NewValidation("course id is required")
	}
	if err := s.Upstream.DeleteCourse(ctx, strings.TrimSpace(courseID)); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("course deleted",
		"event", "course_deleted",
		"module", "catalog-experience/catalog-gateway",
		"layer", "application",
		"course_id", courseID,
	)
	return nil
}

func (s Service) ListPackages(ctx context.Context, location string) ([]ports.Package, error) {
	return s.Upstream.ListPackages(ctx, location)
}

func (s Service) GetPackage(ctx context.Context, packageID string, location string) (ports.Package, error) {
	if strings.TrimSpace(packageID) == "" {
		return ports.Package{}, domainerrors.NewValidation("package id is required")
	}
	return s.Upstream.GetPackage(ctx, strings.TrimSpace(packageID), location)
}

func (s Service) ListMyPackages(ctx context.Context, location string) ([]ports.Package, error) {
	return s.Upstream.ListMyPackages(ctx, location)
}

func (s Service) CreatePackage(ctx context.Context, input ports.CreatePackageInput) (ports.Package, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Image = strings.TrimSpace(input.Image)
	var fields []domainerrors.FieldError
	if len(input.Title) < 3 {
		fields = append(fields, domainerrors.FieldError{Path: "title", Message: "Package title must be at least 3 characters."})
	}
	cleaned := make([]string, 0, len(input.CourseIDs))
	for _, id := range input.CourseIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		fields = append(fields, domainerrors.FieldError{Path: "courseIds", Message: "Please select at least one course for the package."})
	}
	if !emptyOrURL(input.Image) {
		fields = append(fields, domainerrors.FieldError{Path: "image", Message: "Please enter a valid URL."})
	}
	if len(fields) > 0 {
		return ports.Package{}, domainerrors.NewValidation("package payload is invalid", fields...)
	}
	input.CourseIDs = cleaned
	pkg, err := s.Upstream.CreatePackage(ctx, input)
	if err != nil {
		return ports.Package{}, err
	}
	resolveLogger(s.Logger).Info("package created",
		"event", "package_created",
		"module", "catalog-experience/catalog-gateway",
		"layer", "application",
		"package_id", pkg.PackageID,
	)
	return pkg, nil
}

func (s Service) UpdatePackage(ctx context.Context, packageID string, input ports.UpdatePackageInput) (ports.Package, error) {
	if strings.TrimSpace(packageID) == "" {
		return ports.Package{}, domainerrors.NewValidation("package id is required")
	}
	var fields []domainerrors.FieldError
	if input.Title != nil && len(strings.TrimSpace(*input.Title)) < 3 {
		fields = append(fields, domainerrors.FieldError{Path: "title", Message: "Package title must be at least 3 characters."})
	}
	if input.Image != nil && !emptyOrURL(*input.Image) {
		fields = append(fields, domainerrors.FieldError{Path: "image", Message: "Please enter a valid URL."})
	}
	if len(fields) > 0 {
		return ports.Package{}, domainerrors.NewValidation("package payload is invalid", fields...)
	}
	return s.Upstream.UpdatePackage(ctx, strings.TrimSpace(packageID), input)
}

func (s Service) DeletePackage(ctx context.Context, packageID string) error {
	if strings.TrimSpace(packageID) == "" {
		return domainerrors.NewValidation("package id is required")
	}
	return s.Upstream.DeletePackage(ctx, strings.TrimSpace(packageID))
}

func (s Service) Login(ctx context.Context, credentials ports.Credentials) (ports.AuthSession, error) {
	var fields []domainerrors.FieldError
	if !validEmail(credentials.Email) {
		fields = append(fields, domainerrors.FieldError{Path: "email", Message: "Invalid email address."})
	}
	if credentials.Password == "" {
		fields = append(fields, domainerrors.FieldError{Path: "password", Message: "Password is required."})
	}
	if len(fields) > 0 {
		return ports.AuthSession{}, domainerrors.NewValidation("login payload is invalid", fields...)
	}
	return s.Upstream.Login(ctx, credentials)
}

func (s Service) Register(ctx context.Context, input ports.RegisterInput) (ports.AuthSession, error) {
	var fields []domainerrors.FieldError
	if len(strings.TrimSpace(input.Name)) < 2 {
		fields = append(fields, domainerrors.FieldError{Path: "name", Message: "Name must be at least 2 characters."})
	}
	if !validEmail(input.Email) {
		fields = append(fields, domainerrors.FieldError{Path: "email", Message: "Invalid email address."})
	}
	if len(input.Password) < 6 {
		fields = append(fields, domainerrors.FieldError{Path: "password", Message: "Password must be at least 6 characters."})
	}
	if digitCount(input.Phone) < 10 {
		fields = append(fields, domainerrors.FieldError{Path: "phone", Message: "Phone number must be at least 10 digits."})
	}
	if !emptyOrURL(strings.TrimSpace(input.ProfileImage)) {
		fields = append(fields, domainerrors.FieldError{Path: "profileImage", Message: "Please enter a valid URL."})
	}
	if len(fields) > 0 {
		return ports.AuthSession{}, domainerrors.NewValidation("registration payload is invalid", fields...)
	}
	return s.Upstream.Register(ctx, input)
}

func (s Service) Me(ctx context.Context, token string) (ports.User, error) {
	return s.Upstream.Me(ctx, token)
}

func validateCourseFields(title string, price float64, image string) []domainerrors.FieldError {
	var fields []domainerrors.FieldError
	if len(title) < 3 {
		fields = append(fields, domainerrors.FieldError{Path: "title", Message: "Title must be at least 3 characters."})
	}
	if price <= 0 {
		fields = append(fields, domainerrors.FieldError{Path: "price", Message: "Price must be a positive number."})
	}
	if !emptyOrURL(image) {
		fields = append(fields, domainerrors.FieldError{Path: "image", Message: "Please enter a valid URL."})
	}
	return fields
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	return err == nil && addr.Address == strings.TrimSpace(value)
}

func emptyOrURL(value string) bool {
	if value == "" {
		return true
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func digitCount(value string) int {
	count := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
