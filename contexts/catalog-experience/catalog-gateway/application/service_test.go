package application

import (
	"context"
	"errors"
	"testing"

	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
)

// recordingUpstream counts calls so tests can assert that local validation
// rejected a payload before any network activity.
type recordingUpstream struct {
	calls int
}

func (r *recordingUpstream) ListCourses(context.Context, string) ([]ports.Course, error) {
	r.calls++
	return nil, nil
}
func (r *recordingUpstream) GetCourse(context.Context, string, string) (ports.Course, error) {
	r.calls++
	return ports.Course{}, nil
}
func (r *recordingUpstream) ListMyCourses(context.Context, string) ([]ports.Course, error) {
	r.calls++
	return nil, nil
}
func (r *recordingUpstream) CreateCourse(context.Context, ports.CreateCourseInput) (ports.Course, error) {
	r.calls++
	return ports.Course{}, nil
}
func (r *recordingUpstream) UpdateCourse(context.Context, string, ports.UpdateCourseInput) (ports.Course, error) {
	r.calls++
	return ports.Course{}, nil
}
func (r *recordingUpstream) DeleteCourse(context.Context, string) error {
	r.calls++
	return nil
}
func (r *recordingUpstream) ListPackages(context.Context, string) ([]ports.Package, error) {
	r.calls++
	return nil, nil
}
func (r *recordingUpstream) GetPackage(context.Context, string, string) (ports.Package, error) {
	r.calls++
	return ports.Package{}, nil
}
func (r *recordingUpstream) ListMyPackages(context.Context, string) ([]ports.Package, error) {
	r.calls++
	return nil, nil
}
func (r *recordingUpstream) CreatePackage(context.Context, ports.CreatePackageInput) (ports.Package, error) {
	r.calls++
	return ports.Package{}, nil
}
func (r *recordingUpstream) UpdatePackage(context.Context, string, ports.UpdatePackageInput) (ports.Package, error) {
	r.calls++
	return ports.Package{}, nil
}
func (r *recordingUpstream) DeletePackage(context.Context, string) error {
	r.calls++
	return nil
}
func (r *recordingUpstream) Login(context.Context, ports.Credentials) (ports.AuthSession, error) {
	r.calls++
	return ports.AuthSession{}, nil
}
func (r *recordingUpstream) Register(context.Context, ports.RegisterInput) (ports.AuthSession, error) {
	r.calls++
	return ports.AuthSession{}, nil
}
func (r *recordingUpstream) Me(context.Context, string) (ports.User, error) {
	r.calls++
	return ports.User{}, nil
}

func TestCreatePackageEmptyCourseIDsRejectedLocally(t *testing.T) {
	upstream := &recordingUpstream{}
	service := Service{Upstream: upstream}

	_, err := service.CreatePackage(context.Background(), ports.CreatePackageInput{
		Title:     "Starter Bundle",
		CourseIDs: nil,
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var apiErr *domainerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	found := false
	for _, field := range apiErr.FieldErrors {
		if field.Path == "courseIds" && field.Message == "Please select at least one course for the package." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected courseIds field error, got %+v", apiErr.FieldErrors)
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", upstream.calls)
	}
}

func TestCreateCourseInvalidFieldsRejectedLocally(t *testing.T) {
	upstream := &recordingUpstream{}
	service := Service{Upstream: upstream}

	_, err := service.CreateCourse(context.Background(), ports.CreateCourseInput{
		Title:    "Go",
		PriceUSD: -1,
		Image:    "not-a-url",
	})
	var apiErr *domainerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(apiErr.FieldErrors) != 3 {
		t.Fatalf("expected title, price, and image field errors, got %+v", apiErr.FieldErrors)
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", upstream.calls)
	}
}

func TestCreateCourseValidPayloadReachesUpstream(t *testing.T) {
	upstream := &recordingUpstream{}
	service := Service{Upstream: upstream}

	_, err := service.CreateCourse(context.Background(), ports.CreateCourseInput{
		Title:    "Go for Backend Engineers",
		PriceUSD: 49.99,
		Image:    "https://cdn.example.com/go.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if upstream.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", upstream.calls)
	}
}

func TestLoginRejectsBadEmailLocally(t *testing.T) {
	upstream := &recordingUpstream{}
	service := Service{Upstream: upstream}

	_, err := service.Login(context.Background(), ports.Credentials{Email: "nope", Password: "x"})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", upstream.calls)
	}
}

func TestRegisterValidationRules(t *testing.T) {
	upstream := &recordingUpstream{}
	service := Service{Upstream: upstream}

	_, err := service.Register(context.Background(), ports.RegisterInput{
		Name:     "A",
		Email:    "a@example.com",
		Password: "short",
		Phone:    "123",
	})
	var apiErr *domainerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	paths := map[string]bool{}
	for _, field := range apiErr.FieldErrors {
		paths[field.Path] = true
	}
	for _, want := range []string{"name", "password", "phone"} {
		if !paths[want] {
			t.Fatalf("expected %s field error, got %+v", want, apiErr.FieldErrors)
		}
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", upstream.calls)
	}
}

func TestGetCourseRequiresID(t *testing.T) {
	upstream := &recordingUpstream{}
	service := Service{Upstream: upstream}

	if _, err := service.GetCourse(context.Background(), "  ", ""); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", upstream.calls)
	}
}
