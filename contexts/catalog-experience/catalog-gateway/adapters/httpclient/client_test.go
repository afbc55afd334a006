package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
)

func staticToken(token string) ports.TokenSource {
	return ports.TokenSourceFunc(func(context.Context) string { return token })
}

func TestListCoursesSendsLocationAndBearer(t *testing.T) {
	var gotLocation, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocation = r.URL.Query().Get("location")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":[
			{"_id":"c1","courseId":"uuid-1","title":"Go Course","price":49.99,
			 "creatorId":{"_id":"u1","userId":"uu1","name":"Asha","email":"a@example.com"},
			 "localizedPriceInfo":{"originalPriceUSD":49.99,"originalCurrency":"USD",
			   "localizedPrice":4150,"localizedCurrency":"INR","appliedMultiplier":1.2}}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok-123"), server.Client(), nil)
	courses, err := client.ListCourses(context.Background(), "India")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotLocation != "India" {
		t.Fatalf("expected location=India, got %q", gotLocation)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if len(courses) != 1 {
		t.Fatalf("expected one course, got %d", len(courses))
	}
	course := courses[0]
	if course.Creator.User == nil || course.Creator.User.Name != "Asha" {
		t.Fatalf("expected populated creator, got %+v", course.Creator)
	}
	if course.Pricing == nil || course.Pricing.LocalizedCurrency != "INR" || *course.Pricing.LocalizedPrice != 4150 {
		t.Fatalf("expected localized pricing, got %+v", course.Pricing)
	}
}

func TestListCoursesOmitsLocationAndAuthWhenAbsent(t *testing.T) {
	var hadLocation, hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadLocation = r.URL.Query()["location"]
		hadAuth = r.Header.Get("Authorization") != ""
		w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, staticToken(""), server.Client(), nil)
	if _, err := client.ListCourses(context.Background(), ""); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if hadLocation {
		t.Fatal("location param must be omitted when empty")
	}
	if hadAuth {
		t.Fatal("authorization header must be omitted without a token")
	}
}

func TestGetCourseDecodesBareCreatorID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":
			{"_id":"c1","courseId":"uuid-1","title":"Go Course","price":49.99,"creatorId":"u1"}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, server.Client(), nil)
	course, err := client.GetCourse(context.Background(), "uuid-1", "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if course.Creator.ID != "u1" || course.Creator.User != nil {
		t.Fatalf("expected bare creator id, got %+v", course.Creator)
	}
	if course.Creator.DisplayName() != "Unknown Creator" {
		t.Fatalf("unexpected display name %q", course.Creator.DisplayName())
	}
}

func TestGetPackageDecodesCourseIDUnion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":
			{"_id":"p1","packageId":"uuid-p1","title":"Bundle","creatorId":"u1",
			 "courses":["c1","c2"],"baseTotalPriceUSD":79.98}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, server.Client(), nil)
	pkg, err := client.GetPackage(context.Background(), "uuid-p1", "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(pkg.CourseIDs) != 2 || len(pkg.Courses) != 0 {
		t.Fatalf("expected bare course ids, got %+v", pkg)
	}
	if pkg.BaseTotalPriceUSD == nil || *pkg.BaseTotalPriceUSD != 79.98 {
		t.Fatalf("expected base total, got %+v", pkg.BaseTotalPriceUSD)
	}
}

func TestGetPackageDecodesPopulatedCourses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":
			{"_id":"p1","packageId":"uuid-p1","title":"Bundle","creatorId":"u1",
			 "courses":[{"_id":"c1","courseId":"uuid-1","title":"Go Course","price":49.99}]}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, server.Client(), nil)
	pkg, err := client.GetPackage(context.Background(), "uuid-p1", "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(pkg.Courses) != 1 || pkg.Courses[0].Title != "Go Course" {
		t.Fatalf("expected populated courses, got %+v", pkg)
	}
}

func TestUpstreamErrorNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"fail","message":"You are not logged in"}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, server.Client(), nil)
	_, err := client.ListMyCourses(context.Background(), "")
	if !errors.Is(err, domainerrors.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	var apiErr *domainerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "You are not logged in" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestValidationErrorCarriesFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"fail","message":"Validation failed",
			"errors":[{"path":"title","message":"Title must be at least 3 characters."}]}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, server.Client(), nil)
	_, err := client.CreateCourse(context.Background(), ports.CreateCourseInput{Title: "Go", PriceUSD: 1})
	var apiErr *domainerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(apiErr.FieldErrors) != 1 || apiErr.FieldErrors[0].Path != "title" {
		t.Fatalf("expected title field error, got %+v", apiErr.FieldErrors)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, nil, nil, nil)
	_, err := client.ListCourses(context.Background(), "")
	if !errors.Is(err, domainerrors.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	var apiErr *domainerrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("expected status 0 for transport failure, got %d", apiErr.StatusCode)
	}
}

func TestLoginDecodesAuthEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","token":"jwt-abc",
			"data":{"user":{"_id":"u1","userId":"uu1","name":"Asha","email":"a@example.com","location":"India"}}}`))
	}))
	defer server.Close()

	client := New(server.URL, nil, server.Client(), nil)
	session, err := client.Login(context.Background(), ports.Credentials{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token != "jwt-abc" || session.User.Location != "India" {
		t.Fatalf("unexpected session %+v", session)
	}
}
