package http

import (
	"encoding/json"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	pricingports "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/ports"
)

// Envelope is the upstream success wrapper: {"status": "success", "data": ...}.
type Envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// AuthEnvelope wraps login/register/me responses, which put the token next to
// the envelope and the user one level down.
type AuthEnvelope struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Data   struct {
		User UserDTO `json:"user"`
	} `json:"data"`
}

// ErrorBody is the upstream failure wrapper. Errors carries field-level
// validation messages when the upstream rejected a payload.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  []struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"errors"`
}

type UserDTO struct {
	ID           string `json:"_id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	ProfileImage string `json:"profileImage"`
	CreatedAt    string `json:"createdAt"`
}

func (d UserDTO) ToUser() ports.User {
	return ports.User{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Location:     d.Location,
		ProfileImage: d.ProfileImage,
		CreatedAt:    d.CreatedAt,
	}
}

// CreatorRefDTO decodes the polymorphic creatorId field: either a bare object
// id string or a populated user document.
type CreatorRefDTO struct {
	ID   string
	User *UserDTO
}

func (d *CreatorRefDTO) UnmarshalJSON(raw []byte) error {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		d.ID = id
		d.User = nil
		return nil
	}
	var user UserDTO
	if err := json.Unmarshal(raw, &user); err != nil {
		return err
	}
	d.ID = user.ID
	d.User = &user
	return nil
}

func (d CreatorRefDTO) toRef() ports.CreatorRef {
	ref := ports.CreatorRef{ID: d.ID}
	if d.User != nil {
		user := d.User.ToUser()
		ref.User = &user
	}
	return ref
}

type CourseDTO struct {
	ID          string                           `json:"_id"`
	CourseID    string                           `json:"courseId"`
	Title       string                           `json:"title"`
	Description string                           `json:"description"`
	Price       float64                          `json:"price"`
	Image       string                           `json:"image"`
	CreatorID   CreatorRefDTO                    `json:"creatorId"`
	CreatedAt   string                           `json:"createdAt"`
	Pricing     *pricingports.LocalizedPriceInfo `json:"localizedPriceInfo"`
}

func (d CourseDTO) ToCourse() ports.Course {
	return ports.Course{
		ID:          d.ID,
		CourseID:    d.CourseID,
		Title:       d.Title,
		Description: d.Description,
		PriceUSD:    d.Price,
		Image:       d.Image,
		Creator:     d.CreatorID.toRef(),
		CreatedAt:   d.CreatedAt,
		Pricing:     d.Pricing,
	}
}

type PackageCourseDTO struct {
	ID       string  `json:"_id"`
	CourseID string  `json:"courseId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// PackageCoursesDTO decodes the polymorphic courses array, whose elements are
// either bare object ids or minimal course documents. Mixed arrays are
// tolerated element by element.
type PackageCoursesDTO struct {
	Courses []PackageCourseDTO
	IDs     []string
}

func (d *PackageCoursesDTO) UnmarshalJSON(raw []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return err
	}
	d.Courses = nil
	d.IDs = nil
	for _, element := range elements {
		var id string
		if err := json.Unmarshal(element, &id); err == nil {
			d.IDs = append(d.IDs, id)
			continue
		}
		var course PackageCourseDTO
		if err := json.Unmarshal(element, &course); err != nil {
			return err
		}
		d.Courses = append(d.Courses, course)
	}
	return nil
}

type PackageDTO struct {
	ID                string                           `json:"_id"`
	PackageID         string                           `json:"packageId"`
	Title             string                           `json:"title"`
	Courses           PackageCoursesDTO                `json:"courses"`
	CreatorID         CreatorRefDTO                    `json:"creatorId"`
	Image             string                           `json:"image"`
	CreatedAt         string                           `json:"createdAt"`
	BaseTotalPriceUSD *float64                         `json:"baseTotalPriceUSD"`
	Pricing           *pricingports.LocalizedPriceInfo `json:"localizedPriceInfo"`
}

func (d PackageDTO) ToPackage() ports.Package {
	courses := make([]ports.PackageCourse, 0, len(d.Courses.Courses))
	for _, course := range d.Courses.Courses {
		courses = append(courses, ports.PackageCourse{
			ID:       course.ID,
			CourseID: course.CourseID,
			Title:    course.Title,
			PriceUSD: course.Price,
			Image:    course.Image,
		})
	}
	if len(courses) == 0 {
		courses = nil
	}
	return ports.Package{
		ID:                d.ID,
		PackageID:         d.PackageID,
		Title:             d.Title,
		Courses:           courses,
		CourseIDs:         d.Courses.IDs,
		Creator:           d.CreatorID.toRef(),
		Image:             d.Image,
		BaseTotalPriceUSD: d.BaseTotalPriceUSD,
		CreatedAt:         d.CreatedAt,
		Pricing:           d.Pricing,
	}
}

type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

type CreatePackageRequest struct {
	Title     string   `json:"title"`
	CourseIDs []string `json:"courseIds"`
	Image     string   `json:"image,omitempty"`
}

type UpdatePackageRequest struct {
	Title *string `json:"title,omitempty"`
	Image *string `json:"image,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Location     string `json:"location,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}
