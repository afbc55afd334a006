package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	httptransport "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/transport/http"
)

// Client implements ports.Upstream against the marketplace REST API. All
// failures leave as *domainerrors.APIError; transport errors never reach
// callers raw.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  ports.TokenSource
	logger  *slog.Logger
}

func New(baseURL string, tokens ports.TokenSource, httpc *http.Client, logger *slog.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *Client) ListCourses(ctx context.Context, location string) ([]ports.Course, error) {
	var dtos []httptransport.CourseDTO
	if err := c.call(ctx, http.MethodGet, "/courses", locationQuery(location), nil, "", &dtos); err != nil {
		return nil, err
	}
	return toCourses(dtos), nil
}

func (c *Client) GetCourse(ctx context.Context, courseID string, location string) (ports.Course, error) {
	var dto httptransport.CourseDTO
	if err := c.call(ctx, http.MethodGet, "/courses/"+url.PathEscape(courseID), locationQuery(location), nil, "", &dto); err != nil {
		return ports.Course{}, err
	}
	return dto.ToCourse(), nil
}

func (c *Client) ListMyCourses(ctx context.Context, location string) ([]ports.Course, error) {
	var dtos []httptransport.CourseDTO
	if err := c.call(ctx, http.MethodGet, "/courses/my-courses", locationQuery(location), nil, "", &dtos); err != nil {
		return nil, err
	}
	return toCourses(dtos), nil
}

func (c *Client) CreateCourse(ctx context.Context, input ports.CreateCourseInput) (ports.Course, error) {
	body := httptransport.CreateCourseRequest{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.PriceUSD,
		Image:       input.Image,
	}
	var dto httptransport.CourseDTO
	if err := c.call(ctx, http.MethodPost, "/courses", nil, body, "", &dto); err != nil {
		return ports.Course{}, err
	}
	return dto.ToCourse(), nil
}

func (c *Client) UpdateCourse(ctx context.Context, courseID string, input ports.UpdateCourseInput) (ports.Course, error) {
	body := httptransport.UpdateCourseRequest{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.PriceUSD,
		Image:       input.Image,
	}
	var dto httptransport.CourseDTO
	if err := c.call(ctx, http.MethodPut, "/courses/"+url.PathEscape(courseID), nil, body, "", &dto); err != nil {
		return ports.Course{}, err
	}
	return dto.ToCourse(), nil
}

func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	return c.call(ctx, http.MethodDelete, "/courses/"+url.PathEscape(courseID), nil, nil, "", nil)
}

func (c *Client) ListPackages(ctx context.Context, location string) ([]ports.Package, error) {
	var dtos []httptransport.PackageDTO
	if err := c.call(ctx, http.MethodGet, "/packages", locationQuery(location), nil, "", &dtos); err != nil {
		return nil, err
	}
	return toPackages(dtos), nil
}

func (c *Client) GetPackage(ctx context.Context, packageID string, location string) (ports.Package, error) {
	var dto httptransport.PackageDTO
	if err := c.call(ctx, http.MethodGet, "/packages/"+url.PathEscape(packageID), locationQuery(location), nil, "", &dto); err != nil {
		return ports.Package{}, err
	}
	return dto.ToPackage(), nil
}

func (c *Client) ListMyPackages(ctx context.Context, location string) ([]ports.Package, error) {
	var dtos []httptransport.PackageDTO
	if err := c.call(ctx, http.MethodGet, "/packages/my-packages", locationQuery(location), nil, "", &dtos); err != nil {
		return nil, err
	}
	return toPackages(dtos), nil
}

func (c *Client) CreatePackage(ctx context.Context, input ports.CreatePackageInput) (ports.Package, error) {
	body := httptransport.CreatePackageRequest{
		Title:     input.Title,
		CourseIDs: input.CourseIDs,
		Image:     input.Image,
	}
	var dto httptransport.PackageDTO
	if err := c.call(ctx, http.MethodPost, "/packages/create", nil, body, "", &dto); err != nil {
		return ports.Package{}, err
	}
	return dto.ToPackage(), nil
}

func (c *Client) UpdatePackage(ctx context.Context, packageID string, input ports.UpdatePackageInput) (ports.Package, error) {
	body := httptransport.UpdatePackageRequest{
		Title: input.Title,
		Image: input.Image,
	}
	var dto httptransport.PackageDTO
	if err := c.call(ctx, http.MethodPut, "/packages/"+url.PathEscape(packageID), nil, body, "", &dto); err != nil {
		return ports.Package{}, err
	}
	return dto.ToPackage(), nil
}

func (c *Client) DeletePackage(ctx context.Context, packageID string) error {
	return c.call(ctx, http.MethodDelete, "/packages/"+url.PathEscape(packageID), nil, nil, "", nil)
}

func (c *Client) Login(ctx context.Context, credentials ports.Credentials) (ports.AuthSession, error) {
	body := httptransport.LoginRequest{Email: credentials.Email, Password: credentials.Password}
	return c.authCall(ctx, "/auth/login", body)
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (ports.AuthSession, error) {
	body := httptransport.RegisterRequest{
		Name:         input.Name,
		Email:        input.Email,
		Password:     input.Password,
		Phone:        input.Phone,
		Location:     input.Location,
		ProfileImage: input.ProfileImage,
	}
	return c.authCall(ctx, "/auth/register", body)
}

// Me verifies a token explicitly instead of going through the TokenSource: it
// runs during session restore, before the session is trusted.
func (c *Client) Me(ctx context.Context, token string) (ports.User, error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, "/auth/me", nil, nil, token)
	if err != nil {
		return ports.User{}, err
	}
	var envelope httptransport.AuthEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ports.User{}, c.decodeFailure(err)
	}
	return envelope.Data.User.ToUser(), nil
}

func (c *Client) authCall(ctx context.Context, path string, body any) (ports.AuthSession, error) {
	raw, err := c.roundTrip(ctx, http.MethodPost, path, nil, body, "")
	if err != nil {
		return ports.AuthSession{}, err
	}
	var envelope httptransport.AuthEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ports.AuthSession{}, c.decodeFailure(err)
	}
	return ports.AuthSession{
		Token: envelope.Token,
		User:  envelope.Data.User.ToUser(),
	}, nil
}

// call performs one request and decodes the {status, data} envelope into out.
// A nil out discards the body (deletes return no payload worth keeping).
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, token string, out any) error {
	raw, err := c.roundTrip(ctx, method, path, query, body, token)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var envelope httptransport.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return c.decodeFailure(err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return c.decodeFailure(err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any, tokenOverride string) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, c.decodeFailure(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, c.decodeFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")

	token := tokenOverride
	if token == "" && c.tokens != nil {
		token = c.tokens.BearerToken(ctx)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			"event", "gateway_transport_error",
			"module", "catalog-experience/catalog-gateway",
			"layer", "adapter",
			"method", method,
			"path", path,
			"error", err.Error(),
		)
		return nil, &domainerrors.APIError{
			Class:      domainerrors.ErrNetwork,
			StatusCode: 0,
			Message:    "could not reach the marketplace service",
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domainerrors.APIError{
			Class:      domainerrors.ErrNetwork,
			StatusCode: 0,
			Message:    "could not read the marketplace response",
		}
	}

	if resp.StatusCode >= 400 {
		return nil, c.normalizeFailure(resp.StatusCode, raw)
	}
	return raw, nil
}

func (c *Client) normalizeFailure(statusCode int, raw []byte) *domainerrors.APIError {
	apiErr := &domainerrors.APIError{
		Class:      domainerrors.Classify(statusCode),
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}
	var body httptransport.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		for _, fieldErr := range body.Errors {
			apiErr.FieldErrors = append(apiErr.FieldErrors, domainerrors.FieldError{
				Path:    fieldErr.Path,
				Message: fieldErr.Message,
			})
		}
	}
	return apiErr
}

func (c *Client) decodeFailure(err error) *domainerrors.APIError {
	c.logger.Warn("upstream payload decode failed",
		"event", "gateway_decode_error",
		"module", "catalog-experience/catalog-gateway",
		"layer", "adapter",
		"error", err.Error(),
	)
	return &domainerrors.APIError{
		Class:      domainerrors.ErrUpstream,
		StatusCode: 0,
		Message:    "unexpected response from the marketplace service",
	}
}

func locationQuery(location string) url.Values {
	if location == "" {
		return nil
	}
	return url.Values{"location": []string{location}}
}

func toCourses(dtos []httptransport.CourseDTO) []ports.Course {
	courses := make([]ports.Course, 0, len(dtos))
	for _, dto := range dtos {
		courses = append(courses, dto.ToCourse())
	}
	return courses
}

func toPackages(dtos []httptransport.PackageDTO) []ports.Package {
	packages := make([]ports.Package, 0, len(dtos))
	for _, dto := range dtos {
		packages = append(packages, dto.ToPackage())
	}
	return packages
}
