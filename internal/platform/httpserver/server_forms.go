package httpserver

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	gatewayerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	gatewayports "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	"github.com/16SULPHUR/courseify/internal/platform/webui"
)

const maxUploadBytes = 10 << 20

type courseFormValues struct {
	Title       string
	Description string
	Price       string
	Image       string
}

type courseFormView struct {
	Heading string
	Action  string
	Submit  string
	Values  courseFormValues
	Errors  map[string]string
}

type courseOption struct {
	CourseID string
	Title    string
	Checked  bool
}

type packageFormValues struct {
	Title string
	Image string
}

type packageFormView struct {
	Heading string
	Action  string
	Submit  string
	Values  packageFormValues
	Options []courseOption
	Errors  map[string]string
}

func (s *Server) handleMyCoursesPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	courses, err := s.gateway.Service.ListMyCourses(r.Context(), s.locationParam(pc, true))
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "my_courses", webui.Page{
		Title: "My Courses",
		Nav:   pc.Nav,
		Data:  coursesView{Courses: s.views.CourseCards(courses, s.viewerID(pc))},
	})
}

func (s *Server) handleMyPackagesPage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	packages, err := s.gateway.Service.ListMyPackages(r.Context(), s.locationParam(pc, true))
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "my_packages", webui.Page{
		Title: "My Packages",
		Nav:   pc.Nav,
		Data:  packagesView{Packages: s.views.PackageCards(packages, s.viewerID(pc))},
	})
}

func (s *Server) handleNewCoursePage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	s.render(w, "course_form", webui.Page{
		Title: "New course",
		Nav:   pc.Nav,
		Data:  courseFormView{Heading: "New course", Action: "/courses/new", Submit: "Create course"},
	})
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}

	values, price, formErr := s.parseCourseForm(r)
	view := courseFormView{Heading: "New course", Action: "/courses/new", Submit: "Create course", Values: values}
	if formErr != "" {
		view.Errors = map[string]string{"image": formErr}
		s.render(w, "course_form", webui.Page{Title: "New course", Nav: pc.Nav, Error: formErr, Data: view})
		return
	}

	_, err := s.gateway.Service.CreateCourse(r.Context(), gatewayports.CreateCourseInput{
		Title:       values.Title,
		Description: values.Description,
		PriceUSD:    price,
		Image:       values.Image,
	})
	if err != nil {
		if errors.Is(err, gatewayerrors.ErrValidation) {
			view.Errors = fieldErrorMap(err)
			s.render(w, "course_form", webui.Page{Title: "New course", Nav: pc.Nav, Error: failureMessage(err), Data: view})
			return
		}
		s.renderFailure(w, r, pc, err)
		return
	}
	http.Redirect(w, r, "/dashboard/my-courses", http.StatusSeeOther)
}

func (s *Server) handleEditCoursePage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	courseID := r.PathValue("course_id")
	course, err := s.gateway.Service.GetCourse(r.Context(), courseID, "")
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "course_form", webui.Page{
		Title: "Edit course",
		Nav:   pc.Nav,
		Data: courseFormView{
			Heading: "Edit course",
			Action:  "/courses/" + courseID + "/edit",
			Submit:  "Save changes",
			Values: courseFormValues{
				Title:       course.Title,
				Description: course.Description,
				Price:       strconv.FormatFloat(course.PriceUSD, 'f', -1, 64),
				Image:       course.Image,
			},
		},
	})
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	courseID := r.PathValue("course_id")

	values, price, formErr := s.parseCourseForm(r)
	view := courseFormView{Heading: "Edit course", Action: "/courses/" + courseID + "/edit", Submit: "Save changes", Values: values}
	if formErr != "" {
		view.Errors = map[string]string{"image": formErr}
		s.render(w, "course_form", webui.Page{Title: "Edit course", Nav: pc.Nav, Error: formErr, Data: view})
		return
	}

	_, err := s.gateway.Service.UpdateCourse(r.Context(), courseID, gatewayports.UpdateCourseInput{
		Title:       &values.Title,
		Description: &values.Description,
		PriceUSD:    &price,
		Image:       &values.Image,
	})
	if err != nil {
		if errors.Is(err, gatewayerrors.ErrValidation) {
			view.Errors = fieldErrorMap(err)
			s.render(w, "course_form", webui.Page{Title: "Edit course", Nav: pc.Nav, Error: failureMessage(err), Data: view})
			return
		}
		s.renderFailure(w, r, pc, err)
		return
	}
	http.Redirect(w, r, "/dashboard/my-courses", http.StatusSeeOther)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	if err := s.gateway.Service.DeleteCourse(r.Context(), r.PathValue("course_id")); err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	http.Redirect(w, r, "/dashboard/my-courses", http.StatusSeeOther)
}

func (s *Server) handleNewPackagePage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	options, err := s.courseOptions(r, nil)
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "package_form", webui.Page{
		Title: "New package",
		Nav:   pc.Nav,
		Data:  packageFormView{Heading: "New package", Action: "/packages/new", Submit: "Create package", Options: options},
	})
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}

	values, courseIDs, formErr := s.parsePackageForm(r)
	view := packageFormView{Heading: "New package", Action: "/packages/new", Submit: "Create package", Values: values}
	if formErr != "" {
		view.Options, _ = s.courseOptions(r, courseIDs)
		view.Errors = map[string]string{"image": formErr}
		s.render(w, "package_form", webui.Page{Title: "New package", Nav: pc.Nav, Error: formErr, Data: view})
		return
	}

	_, err := s.gateway.Service.CreatePackage(r.Context(), gatewayports.CreatePackageInput{
		Title:     values.Title,
		CourseIDs: courseIDs,
		Image:     values.Image,
	})
	if err != nil {
		if errors.Is(err, gatewayerrors.ErrValidation) {
			view.Options, _ = s.courseOptions(r, courseIDs)
			view.Errors = fieldErrorMap(err)
			s.render(w, "package_form", webui.Page{Title: "New package", Nav: pc.Nav, Error: failureMessage(err), Data: view})
			return
		}
		s.renderFailure(w, r, pc, err)
		return
	}
	http.Redirect(w, r, "/dashboard/my-packages", http.StatusSeeOther)
}

func (s *Server) handleEditPackagePage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	packageID := r.PathValue("package_id")
	pkg, err := s.gateway.Service.GetPackage(r.Context(), packageID, "")
	if err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	s.render(w, "package_form", webui.Page{
		Title: "Edit package",
		Nav:   pc.Nav,
		Data: packageFormView{
			Heading: "Edit package",
			Action:  "/packages/" + packageID + "/edit",
			Submit:  "Save changes",
			Values:  packageFormValues{Title: pkg.Title, Image: pkg.Image},
		},
	})
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	packageID := r.PathValue("package_id")

	values, _, formErr := s.parsePackageForm(r)
	view := packageFormView{Heading: "Edit package", Action: "/packages/" + packageID + "/edit", Submit: "Save changes", Values: values}
	if formErr != "" {
		view.Errors = map[string]string{"image": formErr}
		s.render(w, "package_form", webui.Page{Title: "Edit package", Nav: pc.Nav, Error: formErr, Data: view})
		return
	}

	_, err := s.gateway.Service.UpdatePackage(r.Context(), packageID, gatewayports.UpdatePackageInput{
		Title: &values.Title,
		Image: &values.Image,
	})
	if err != nil {
		if errors.Is(err, gatewayerrors.ErrValidation) {
			view.Errors = fieldErrorMap(err)
			s.render(w, "package_form", webui.Page{Title: "Edit package", Nav: pc.Nav, Error: failureMessage(err), Data: view})
			return
		}
		s.renderFailure(w, r, pc, err)
		return
	}
	http.Redirect(w, r, "/dashboard/my-packages", http.StatusSeeOther)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	pc := s.pageContext(r)
	if !s.requireAuth(w, r, pc) {
		return
	}
	if err := s.gateway.Service.DeletePackage(r.Context(), r.PathValue("package_id")); err != nil {
		s.renderFailure(w, r, pc, err)
		return
	}
	http.Redirect(w, r, "/dashboard/my-packages", http.StatusSeeOther)
}

// parseCourseForm reads the multipart course form and runs any attached
// image through the upload host. The returned message is a user-facing
// upload failure, empty on success.
func (s *Server) parseCourseForm(r *http.Request) (courseFormValues, float64, string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return courseFormValues{}, 0, "The form could not be read."
	}
	values := courseFormValues{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Image:       strings.TrimSpace(r.PostFormValue("imageUrl")),
	}
	price, _ := strconv.ParseFloat(values.Price, 64)

	imageURL, uploadErr := s.uploadedImage(r)
	if uploadErr != "" {
		return values, price, uploadErr
	}
	if imageURL != "" {
		values.Image = imageURL
	}
	return values, price, ""
}

func (s *Server) parsePackageForm(r *http.Request) (packageFormValues, []string, string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return packageFormValues{}, nil, "The form could not be read."
	}
	values := packageFormValues{
		Title: strings.TrimSpace(r.PostFormValue("title")),
		Image: strings.TrimSpace(r.PostFormValue("imageUrl")),
	}
	courseIDs := r.PostForm["courseIds"]

	imageURL, uploadErr := s.uploadedImage(r)
	if uploadErr != "" {
		return values, courseIDs, uploadErr
	}
	if imageURL != "" {
		values.Image = imageURL
	}
	return values, courseIDs, ""
}

func (s *Server) uploadedImage(r *http.Request) (string, string) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", ""
	}
	if err != nil {
		return "", "The image could not be read."
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	url, err := s.uploads.Service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		s.logger.Warn("image upload failed",
			"event", "image_upload_failed",
			"module", "internal/platform/httpserver",
			"error", err,
		)
		return "", "The image could not be uploaded. Try again."
	}
	return url, ""
}

func (s *Server) courseOptions(r *http.Request, checked []string) ([]courseOption, error) {
	courses, err := s.gateway.Service.ListMyCourses(r.Context(), "")
	if err != nil {
		return nil, err
	}
	checkedSet := make(map[string]bool, len(checked))
	for _, id := range checked {
		checkedSet[id] = true
	}
	options := make([]courseOption, 0, len(courses))
	for _, course := range courses {
		options = append(options, courseOption{
			CourseID: course.CourseID,
			Title:    course.Title,
			Checked:  checkedSet[course.CourseID],
		})
	}
	return options, nil
}
