package httpserver

import (
	"errors"
	"net/http"
	"strings"

	gatewayerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	gatewayports "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	"github.com/16SULPHUR/courseify/internal/platform/webui"
)

type loginValues struct {
	Email string
}

type loginView struct {
	Redirect string
	Values   loginValues
	Errors   map[string]string
}

type registerValues struct {
	Name  string
	Email string
	Phone string
}

type registerView struct {
	Values registerValues
	Errors map[string]string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if pc.Session.Authenticated() {
		http.Redirect(w, r, safeRedirect(r.URL.Query().Get("redirect")), http.StatusSeeOther)
		return
	}
	s.render(w, "login", webui.Page{
		Title: "Log in",
		Nav:   pc.Nav,
		Data:  loginView{Redirect: r.URL.Query().Get("redirect")},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	credentials := gatewayports.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	redirect := r.PostFormValue("redirect")

	_, err := s.sessions.Service.Login(r.Context(), pc.SessionID, credentials)
	if err != nil {
		view := loginView{
			Redirect: redirect,
			Values:   loginValues{Email: credentials.Email},
			Errors:   fieldErrorMap(err),
		}
		switch {
		case errors.Is(err, gatewayerrors.ErrValidation), errors.Is(err, gatewayerrors.ErrAuth):
			s.render(w, "login", webui.Page{
				Title: "Log in",
				Nav:   pc.Nav,
				Error: failureMessage(err),
				Data:  view,
			})
		default:
			s.renderFailure(w, r, pc, err)
		}
		return
	}

	s.cache.Drop(pc.SessionID)
	http.Redirect(w, r, safeRedirect(redirect), http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if pc.Session.Authenticated() {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}
	s.render(w, "register", webui.Page{Title: "Create an account", Nav: pc.Nav, Data: registerView{}})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	input := gatewayports.RegisterInput{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Phone:    strings.TrimSpace(r.PostFormValue("phone")),
		Password: r.PostFormValue("password"),
	}

	_, err := s.sessions.Service.Register(r.Context(), pc.SessionID, input)
	if err != nil {
		view := registerView{
			Values: registerValues{Name: input.Name, Email: input.Email, Phone: input.Phone},
			Errors: fieldErrorMap(err),
		}
		if errors.Is(err, gatewayerrors.ErrValidation) {
			s.render(w, "register", webui.Page{
				Title: "Create an account",
				Nav:   pc.Nav,
				Error: failureMessage(err),
				Data:  view,
			})
			return
		}
		s.renderFailure(w, r, pc, err)
		return
	}

	s.cache.Drop(pc.SessionID)
	http.Redirect(w, r, "/courses", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(r)
	if err := s.sessions.Service.Logout(r.Context(), sessionID); err != nil {
		s.logger.Warn("logout failed",
			"event", "logout_failed",
			"module", "internal/platform/httpserver",
			"error", err,
		)
	}
	s.cache.Drop(sessionID)
	http.Redirect(w, r, "/courses", http.StatusSeeOther)
}

// safeRedirect keeps post-login redirects on-site. Anything absolute or
// schema-relative falls back to the catalog.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/courses"
	}
	return target
}
