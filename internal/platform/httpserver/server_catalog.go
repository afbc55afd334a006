package httpserver

import (
	"errors"
	"net/http"

	locationerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/domain/errors"
	"github.com/16SULPHUR/courseify/internal/platform/webui"
)

type coursesView struct {
	Courses []webui.CourseCard
}

type courseDetailView struct {
	Course webui.CourseCard
}

type packagesView struct {
	Packages []webui.PackageCard
}

type packageDetailView struct {
	Package webui.PackageCard
}

func (s *Server) handleCoursesPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	location := s.locationParam(pc, false)

	// Stamp before the fetch: a location change racing this request will
	// supersede the generation and the result is dropped on commit.
	generation := s.cache.Begin(pc.SessionID)
	courses, err := s.gateway.Service.ListCourses(r.Context(), location)
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	cards := s.views.CourseCards(courses, s.viewerID(pc))
	if !s.cache.Commit(pc.SessionID, generation, webui.CatalogSnapshot{Location: location, Courses: cards}) {
		if snapshot, ok := s.cache.Get(pc.SessionID); ok {
			cards = snapshot.Courses
		}
	}

	s.render(w, "courses", webui.Page{
		Title: "Courses",
		Nav:   pc.Nav,
		Data:  coursesView{Courses: cards},
	})
}

func (s *Server) handleCourseDetailPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	course, err := s.gateway.Service.GetCourse(r.Context(), r.PathValue("course_id"), s.locationParam(pc, false))
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "course_detail", webui.Page{
		Title: course.Title,
		Nav:   pc.Nav,
		Data:  courseDetailView{Course: s.views.CourseCard(course, s.viewerID(pc))},
	})
}

func (s *Server) handlePackagesPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	location := s.locationParam(pc, false)

	generation := s.cache.Begin(pc.SessionID)
	packages, err := s.gateway.Service.ListPackages(r.Context(), location)
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	cards := s.views.PackageCards(packages, s.viewerID(pc))
	if !s.cache.Commit(pc.SessionID, generation, webui.CatalogSnapshot{Location: location, Packages: cards}) {
		if snapshot, ok := s.cache.Get(pc.SessionID); ok {
			cards = snapshot.Packages
		}
	}

	s.render(w, "packages", webui.Page{
		Title: "Packages",
		Nav:   pc.Nav,
		Data:  packagesView{Packages: cards},
	})
}

func (s *Server) handlePackageDetailPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	pkg, err := s.gateway.Service.GetPackage(r.Context(), r.PathValue("package_id"), s.locationParam(pc, false))
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "package_detail", webui.Page{
		Title: pkg.Title,
		Nav:   pc.Nav,
		Data:  packageDetailView{Package: s.views.PackageCard(pkg, s.viewerID(pc))},
	})
}

func (s *Server) handleSelectLocation(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}

	code := r.PostFormValue("country")
	if _, err := s.location.Service.Select(r.Context(), pc.SessionID, code); err != nil {
		if errors.Is(err, locationerrors.ErrUnknownCountry) || errors.Is(err, locationerrors.ErrInvalidRequest) {
			http.Redirect(w, r, backTo(r), http.StatusSeeOther)
			return
		}
		s.renderFailure(w, r, pc, err)
		return
	}

	// Any snapshot fetched under the previous selection is now stale.
	s.cache.Drop(pc.SessionID)
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the page a form posted from, defaulting to the catalog.
func backTo(r *http.Request) string {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return "/courses"
	}
	return referer
}
