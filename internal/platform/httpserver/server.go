package httpserver

import (
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	httpSwagger "github.com/swaggo/http-swagger"

	cataloggateway "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway"
	gatewayerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	locationservice "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service"
	locationports "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
	sessionservice "github.com/16SULPHUR/courseify/contexts/identity-access/session-service"
	sessionports "github.com/16SULPHUR/courseify/contexts/identity-access/session-service/ports"
	uploadservice "github.com/16SULPHUR/courseify/contexts/media/upload-service"
	"github.com/16SULPHUR/courseify/internal/platform/webui"
	"github.com/google/uuid"

	_ "github.com/16SULPHUR/courseify/internal/platform/httpserver/docs"
)

//go:embed static/*
var staticFS embed.FS

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string

	renderer *webui.Renderer
	views    webui.Builder
	cache    *webui.ViewCache

	location locationservice.Module
	gateway  cataloggateway.Module
	sessions sessionservice.Module
	uploads  uploadservice.Module

	countries locationports.Catalog

	cookieName           string
	ownerProfileFallback bool
}

type Dependencies struct {
	Location locationservice.Module
	Gateway  cataloggateway.Module
	Sessions sessionservice.Module
	Uploads  uploadservice.Module
	Views    webui.Builder
	Renderer *webui.Renderer

	Countries locationports.Catalog

	Logger *slog.Logger
	Addr   string

	CookieName           string
	OwnerProfileFallback bool
}

func New(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Addr == "" {
		deps.Addr = ":8080"
	}
	if deps.CookieName == "" {
		deps.CookieName = "courseify_sid"
	}

	s := &Server{
		mux:                  http.NewServeMux(),
		logger:               deps.Logger,
		addr:                 deps.Addr,
		renderer:             deps.Renderer,
		views:                deps.Views,
		cache:                webui.NewViewCache(),
		location:             deps.Location,
		gateway:              deps.Gateway,
		sessions:             deps.Sessions,
		uploads:              deps.Uploads,
		countries:            deps.Countries,
		cookieName:           deps.CookieName,
		ownerProfileFallback: deps.OwnerProfileFallback,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s)
}

// ServeHTTP ensures every request carries a browser session id before routing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.withSession(s.mux).ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /static/", http.FileServer(http.FS(staticFS)))

	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /courses", s.handleCoursesPage)
	s.mux.HandleFunc("GET /courses/{course_id}", s.handleCourseDetailPage)
	s.mux.HandleFunc("GET /packages", s.handlePackagesPage)
	s.mux.HandleFunc("GET /packages/{package_id}", s.handlePackageDetailPage)
	s.mux.HandleFunc("POST /location", s.handleSelectLocation)

	s.mux.HandleFunc("GET /login", s.handleLoginPage)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("GET /register", s.handleRegisterPage)
	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("POST /logout", s.handleLogout)

	s.mux.HandleFunc("GET /dashboard/my-courses", s.handleMyCoursesPage)
	s.mux.HandleFunc("GET /dashboard/my-packages", s.handleMyPackagesPage)
	s.mux.HandleFunc("GET /courses/new", s.handleNewCoursePage)
	s.mux.HandleFunc("POST /courses/new", s.handleCreateCourse)
	s.mux.HandleFunc("GET /courses/{course_id}/edit", s.handleEditCoursePage)
	s.mux.HandleFunc("POST /courses/{course_id}/edit", s.handleUpdateCourse)
	s.mux.HandleFunc("POST /courses/{course_id}/delete", s.handleDeleteCourse)
	s.mux.HandleFunc("GET /packages/new", s.handleNewPackagePage)
	s.mux.HandleFunc("POST /packages/new", s.handleCreatePackage)
	s.mux.HandleFunc("GET /packages/{package_id}/edit", s.handleEditPackagePage)
	s.mux.HandleFunc("POST /packages/{package_id}/edit", s.handleUpdatePackage)
	s.mux.HandleFunc("POST /packages/{package_id}/delete", s.handleDeletePackage)

	s.mux.HandleFunc("GET /api/v1/courses", s.handleAPIListCourses)
	s.mux.HandleFunc("GET /api/v1/courses/{course_id}", s.handleAPIGetCourse)
	s.mux.HandleFunc("GET /api/v1/packages", s.handleAPIListPackages)
	s.mux.HandleFunc("GET /api/v1/packages/{package_id}", s.handleAPIGetPackage)
	s.mux.HandleFunc("GET /api/v1/countries", s.handleAPIListCountries)
	s.mux.HandleFunc("POST /api/v1/location", s.handleAPISelectLocation)
	s.mux.HandleFunc("GET /api/v1/session", s.handleAPISession)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/courses", http.StatusFound)
}

// withSession resolves or mints the browser session cookie and tags the
// request context with its id.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(sessionports.WithSessionID(r.Context(), sessionID)))
	})
}

func (s *Server) sessionID(r *http.Request) string {
	return sessionports.SessionIDFromContext(r.Context())
}

// pageContext is the per-request bundle every page handler starts from.
type pageContext struct {
	SessionID string
	Session   sessionports.Snapshot
	Selected  locationports.Country
	Nav       webui.Nav
}

func (s *Server) pageContext(r *http.Request) pageContext {
	sessionID := s.sessionID(r)
	session := s.sessions.Service.Current(r.Context(), sessionID)

	selected, err := s.location.Service.Selected(r.Context(), sessionID)
	if err != nil {
		s.logger.Warn("location lookup failed",
			"event", "location_lookup_failed",
			"module", "internal/platform/httpserver",
			"error", err,
		)
		selected = s.countries.Sentinel()
	}

	userName := ""
	if session.Authenticated() && session.User != nil {
		userName = session.User.Name
	}
	return pageContext{
		SessionID: sessionID,
		Session:   session,
		Selected:  selected,
		Nav:       webui.NavFor(s.countries, selected, userName),
	}
}

// locationParam applies the selection-over-profile precedence for the
// current request.
func (s *Server) locationParam(pc pageContext, ownerView bool) string {
	profile := ""
	if pc.Session.Authenticated() && pc.Session.User != nil {
		profile = pc.Session.User.Location
	}
	opts := locationports.ResolveOptions{ProfileFallback: true}
	if ownerView {
		opts.ProfileFallback = s.ownerProfileFallback
	}
	return s.location.Service.ResolveParam(&pc.Selected, profile, opts)
}

func (s *Server) viewerID(pc pageContext) string {
	if pc.Session.Authenticated() && pc.Session.User != nil {
		return pc.Session.User.ID
	}
	return ""
}

// requireAuth gates a protected page. Restoring sessions get the holding
// page instead of a redirect so an in-flight restore never bounces a
// returning user to login.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request, pc pageContext) bool {
	switch pc.Session.State {
	case sessionports.StateAuthenticated:
		return true
	case sessionports.StateRestoring:
		s.render(w, "restoring", webui.Page{Title: "One moment", Nav: pc.Nav})
		return false
	default:
		http.Redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
		return false
	}
}

func (s *Server) render(w http.ResponseWriter, page string, data webui.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, page, data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type errorView struct {
	Heading   string
	Message   string
	Retryable bool
	RetryPath string
}

type notFoundView struct {
	Message string
}

// renderFailure maps a normalized gateway failure onto the right page. Auth
// failures clear the stored session before redirecting so a dead token is
// not retried forever.
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, pc pageContext, err error) {
	switch {
	case errors.Is(err, gatewayerrors.ErrAuth):
		_ = s.sessions.Service.Logout(r.Context(), pc.SessionID)
		http.Redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
	case errors.Is(err, gatewayerrors.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		s.render(w, "not_found", webui.Page{Title: "Not found", Nav: pc.Nav, Data: notFoundView{Message: failureMessage(err)}})
	case errors.Is(err, gatewayerrors.ErrNetwork):
		w.WriteHeader(http.StatusServiceUnavailable)
		s.render(w, "error", webui.Page{Title: "Connection problem", Nav: pc.Nav, Data: errorView{
			Heading:   "Connection problem",
			Message:   failureMessage(err),
			Retryable: true,
			RetryPath: r.URL.RequestURI(),
		}})
	default:
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, "error", webui.Page{Title: "Something went wrong", Nav: pc.Nav, Data: errorView{
			Heading: "Something went wrong",
			Message: failureMessage(err),
		}})
	}
}

func failureMessage(err error) string {
	var apiErr *gatewayerrors.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "The request could not be completed."
}

// fieldErrorMap flattens a validation failure into template-ready form
// errors. Non-validation errors yield nil.
func fieldErrorMap(err error) map[string]string {
	var apiErr *gatewayerrors.APIError
	if !errors.As(err, &apiErr) || len(apiErr.FieldErrors) == 0 {
		return nil
	}
	fields := make(map[string]string, len(apiErr.FieldErrors))
	for _, fe := range apiErr.FieldErrors {
		if _, seen := fields[fe.Path]; !seen {
			fields[fe.Path] = fe.Message
		}
	}
	return fields
}
