package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	gatewayerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	locationerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/domain/errors"
	locationhttp "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/transport/http"
	"github.com/16SULPHUR/courseify/internal/platform/webui"
)

type CourseListResponse struct {
	Status string             `json:"status"`
	Data   []webui.CourseCard `json:"data"`
}

type CourseResponse struct {
	Status string           `json:"status"`
	Data   webui.CourseCard `json:"data"`
}

type PackageListResponse struct {
	Status string              `json:"status"`
	Data   []webui.PackageCard `json:"data"`
}

type PackageResponse struct {
	Status string            `json:"status"`
	Data   webui.PackageCard `json:"data"`
}

type SessionResponse struct {
	Status string      `json:"status"`
	Data   SessionInfo `json:"data"`
}

type SessionInfo struct {
	State    string `json:"state"`
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// @Summary List courses
// @Description Returns the course catalog priced for the caller's effective location.
// @Tags catalog
// @Produce json
// @Success 200 {object} httpserver.CourseListResponse
// @Failure 502 {object} httpserver.ErrorResponse
// @Router /api/v1/courses [get]
func (s *Server) handleAPIListCourses(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	courses, err := s.gateway.Service.ListCourses(r.Context(), s.locationParam(pc, false))
	if err != nil {
		writeAPIFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CourseListResponse{
		Status: "success",
		Data:   s.views.CourseCards(courses, s.viewerID(pc)),
	})
}

// @Summary Get one course
// @Description Returns a single course priced for the caller's effective location.
// @Tags catalog
// @Produce json
// @Param course_id path string true "Course id"
// @Success 200 {object} httpserver.CourseResponse
// @Failure 404 {object} httpserver.ErrorResponse
// @Router /api/v1/courses/{course_id} [get]
func (s *Server) handleAPIGetCourse(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	course, err := s.gateway.Service.GetCourse(r.Context(), r.PathValue("course_id"), s.locationParam(pc, false))
	if err != nil {
		writeAPIFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CourseResponse{
		Status: "success",
		Data:   s.views.CourseCard(course, s.viewerID(pc)),
	})
}

// @Summary List packages
// @Description Returns the package catalog priced for the caller's effective location.
// @Tags catalog
// @Produce json
// @Success 200 {object} httpserver.PackageListResponse
// @Failure 502 {object} httpserver.ErrorResponse
// @Router /api/v1/packages [get]
func (s *Server) handleAPIListPackages(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	packages, err := s.gateway.Service.ListPackages(r.Context(), s.locationParam(pc, false))
	if err != nil {
		writeAPIFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PackageListResponse{
		Status: "success",
		Data:   s.views.PackageCards(packages, s.viewerID(pc)),
	})
}

// @Summary Get one package
// @Description Returns a single package priced for the caller's effective location.
// @Tags catalog
// @Produce json
// @Param package_id path string true "Package id"
// @Success 200 {object} httpserver.PackageResponse
// @Failure 404 {object} httpserver.ErrorResponse
// @Router /api/v1/packages/{package_id} [get]
func (s *Server) handleAPIGetPackage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	pkg, err := s.gateway.Service.GetPackage(r.Context(), r.PathValue("package_id"), s.locationParam(pc, false))
	if err != nil {
		writeAPIFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PackageResponse{
		Status: "success",
		Data:   s.views.PackageCard(pkg, s.viewerID(pc)),
	})
}

// @Summary List countries
// @Description Returns the country catalog with the caller's current selection marked.
// @Tags location
// @Produce json
// @Success 200 {object} http.ListCountriesResponse
// @Router /api/v1/countries [get]
func (s *Server) handleAPIListCountries(w http.ResponseWriter, r *http.Request) {
	resp, err := s.location.Handler.ListCountriesHandler(r.Context(), s.sessionID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, locationhttp.ErrorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Select a pricing country
// @Description Persists the caller's country selection for subsequent catalog calls.
// @Tags location
// @Accept json
// @Produce json
// @Param request body http.SelectLocationRequest true "Country selection"
// @Success 200 {object} http.SelectLocationResponse
// @Failure 400 {object} http.ErrorResponse
// @Router /api/v1/location [post]
func (s *Server) handleAPISelectLocation(w http.ResponseWriter, r *http.Request) {
	var req locationhttp.SelectLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, locationhttp.ErrorResponse{
			Code:    "invalid_json",
			Message: "request body must be valid JSON",
		})
		return
	}
	resp, err := s.location.Handler.SelectLocationHandler(r.Context(), s.sessionID(r), req)
	if err != nil {
		switch {
		case errors.Is(err, locationerrors.ErrUnknownCountry):
			writeJSON(w, http.StatusNotFound, locationhttp.ErrorResponse{
				Code:    "unknown_country",
				Message: err.Error(),
			})
		case errors.Is(err, locationerrors.ErrInvalidRequest):
			writeJSON(w, http.StatusBadRequest, locationhttp.ErrorResponse{
				Code:    "invalid_request",
				Message: err.Error(),
			})
		default:
			writeJSON(w, http.StatusInternalServerError, locationhttp.ErrorResponse{
				Code:    "internal_error",
				Message: "internal server error",
			})
		}
		return
	}
	s.cache.Drop(s.sessionID(r))
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Inspect session state
// @Description Reports the caller's session state without triggering a restore.
// @Tags session
// @Produce json
// @Success 200 {object} httpserver.SessionResponse
// @Router /api/v1/session [get]
func (s *Server) handleAPISession(w http.ResponseWriter, r *http.Request) {
	snapshot := s.sessions.Service.Peek(s.sessionID(r))
	info := SessionInfo{State: snapshot.State.String()}
	if snapshot.Authenticated() && snapshot.User != nil {
		info.UserID = snapshot.User.ID
		info.UserName = snapshot.User.Name
	}
	writeJSON(w, http.StatusOK, SessionResponse{Status: "success", Data: info})
}

func writeAPIFailure(w http.ResponseWriter, err error) {
	code, status := "upstream_error", http.StatusBadGateway
	switch {
	case errors.Is(err, gatewayerrors.ErrValidation):
		code, status = "invalid_request", http.StatusBadRequest
	case errors.Is(err, gatewayerrors.ErrAuth):
		code, status = "unauthorized", http.StatusUnauthorized
	case errors.Is(err, gatewayerrors.ErrNotFound):
		code, status = "not_found", http.StatusNotFound
	case errors.Is(err, gatewayerrors.ErrNetwork):
		code, status = "upstream_unreachable", http.StatusServiceUnavailable
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: failureMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
