package memory

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	domainerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	pricingports "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/ports"
)

// Store is an in-process stand-in for the marketplace REST API. It enforces
// the same authorization and pricing contract the real upstream does, so the
// rest of the frontend cannot tell the difference.
type Store struct {
	mu       sync.RWMutex
	tokens   ports.TokenSource
	users    map[string]seedUser // keyed by _id
	sessions map[string]string   // token -> user _id
	courses  map[string]ports.Course
	packages map[string]storedPackage
}

type seedUser struct {
	user     ports.User
	password string
}

type storedPackage struct {
	id        string
	packageID string
	title     string
	image     string
	creatorID string
	courseIDs []string // mongoose _ids of member courses
	createdAt string
}

// localizedRate mirrors the upstream pricing service's country table.
type localizedRate struct {
	currency    string
	rate        float64
	multiplier  float64
	blacklisted bool
	message     string
}

var pricingTable = map[string]localizedRate{
	"india":          {currency: "INR", rate: 83.0, multiplier: 1.0},
	"default inr":    {currency: "INR", rate: 83.0, multiplier: 1.2},
	"united states":  {currency: "USD", rate: 1.0, multiplier: 1.0},
	"united kingdom": {currency: "GBP", rate: 0.79, multiplier: 1.0},
	"canada":         {currency: "CAD", rate: 1.36, multiplier: 1.0},
	"australia":      {currency: "AUD", rate: 1.50, multiplier: 1.1},
	"germany":        {currency: "EUR", rate: 0.92, multiplier: 1.0},
	"france":         {currency: "EUR", rate: 0.92, multiplier: 1.0},
	"japan":          {currency: "JPY", rate: 155.0, multiplier: 1.0},
	"cuba":           {blacklisted: true, message: "Course purchases are not available in your region."},
}

func NewStore(tokens ports.TokenSource) *Store {
	creatorID := "u_" + uuid.NewString()
	learnerID := "u_" + uuid.NewString()

	users := map[string]seedUser{
		creatorID: {
			user: ports.User{
				ID:        creatorID,
				UserID:    uuid.NewString(),
				Name:      "Asha Verma",
				Email:     "asha@example.com",
				Phone:     "9876543210",
				Location:  "India",
				CreatedAt: "2024-01-12T09:00:00Z",
			},
			password: "password123",
		},
		learnerID: {
			user: ports.User{
				ID:        learnerID,
				UserID:    uuid.NewString(),
				Name:      "Tom Reed",
				Email:     "tom@example.com",
				Phone:     "5551234567",
				CreatedAt: "2024-02-03T14:30:00Z",
			},
			password: "password123",
		},
	}

	courses := map[string]ports.Course{}
	seedCourses := []struct {
		title, description string
		price              float64
	}{
		{"Go for Backend Engineers", "Build production HTTP services in Go.", 49.99},
		{"Practical SQL", "Schema design, indexing, and query tuning.", 29.99},
		{"Distributed Systems Primer", "Consensus, replication, and failure modes.", 79.99},
	}
	for _, seed := range seedCourses {
		id := "c_" + uuid.NewString()
		courses[id] = ports.Course{
			ID:          id,
			CourseID:    uuid.NewString(),
			Title:       seed.title,
			Description: seed.description,
			PriceUSD:    seed.price,
			Creator:     populatedCreator(users[creatorID].user),
			CreatedAt:   "2024-03-01T10:00:00Z",
		}
	}

	memberIDs := make([]string, 0, len(courses))
	for id := range courses {
		memberIDs = append(memberIDs, id)
	}
	sort.Strings(memberIDs)

	pkgID := "p_" + uuid.NewString()
	packages := map[string]storedPackage{
		pkgID: {
			id:        pkgID,
			packageID: uuid.NewString(),
			title:     "Backend Starter Bundle",
			creatorID: creatorID,
			courseIDs: memberIDs[:2],
			createdAt: "2024-03-10T08:00:00Z",
		},
	}

	return &Store{
		tokens:   tokens,
		users:    users,
		sessions: make(map[string]string),
		courses:  courses,
		packages: packages,
	}
}

func (s *Store) ListCourses(_ context.Context, location string) ([]ports.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.Course, 0, len(s.courses))
	for _, course := range s.courses {
		items = append(items, s.localizeCourse(course, location))
	}
	sortCourses(items)
	return items, nil
}

func (s *Store) GetCourse(_ context.Context, courseID string, location string) (ports.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.findCourse(courseID)
	if !ok {
		return ports.Course{}, notFound("course not found")
	}
	return s.localizeCourse(course, location), nil
}

func (s *Store) ListMyCourses(ctx context.Context, location string) ([]ports.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ports.Course, 0)
	for _, course := range s.courses {
		if course.Creator.ID == actor.ID {
			items = append(items, s.localizeCourse(course, location))
		}
	}
	sortCourses(items)
	return items, nil
}

func (s *Store) CreateCourse(ctx context.Context, input ports.CreateCourseInput) (ports.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return ports.Course{}, err
	}
	course := ports.Course{
		ID:          "c_" + uuid.NewString(),
		CourseID:    uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		PriceUSD:    input.PriceUSD,
		Image:       input.Image,
		Creator:     populatedCreator(actor),
		CreatedAt:   "2024-04-01T00:00:00Z",
	}
	s.courses[course.ID] = course
	return course, nil
}

func (s *Store) UpdateCourse(ctx context.Context, courseID string, input ports.UpdateCourseInput) (ports.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return ports.Course{}, err
	}
	course, ok := s.findCourse(courseID)
	if !ok {
		return ports.Course{}, notFound("course not found")
	}
	if course.Creator.ID != actor.ID {
		return ports.Course{}, forbidden("you do not own this course")
	}
	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.PriceUSD != nil {
		course.PriceUSD = *input.PriceUSD
	}
	if input.Image != nil {
		course.Image = *input.Image
	}
	s.courses[course.ID] = course
	return course, nil
}

func (s *Store) DeleteCourse(ctx context.Context, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	course, ok := s.findCourse(courseID)
	if !ok {
		return notFound("course not found")
	}
	if course.Creator.ID != actor.ID {
		return forbidden("you do not own this course")
	}
	delete(s.courses, course.ID)
	return nil
}

func (s *Store) ListPackages(_ context.Context, location string) ([]ports.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.Package, 0, len(s.packages))
	for _, stored := range s.packages {
		items = append(items, s.buildPackage(stored, location))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items, nil
}

func (s *Store) GetPackage(_ context.Context, packageID string, location string) (ports.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.findPackage(packageID)
	if !ok {
		return ports.Package{}, notFound("package not found")
	}
	return s.buildPackage(stored, location), nil
}

func (s *Store) ListMyPackages(ctx context.Context, location string) ([]ports.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ports.Package, 0)
	for _, stored := range s.packages {
		if stored.creatorID == actor.ID {
			items = append(items, s.buildPackage(stored, location))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items, nil
}

func (s *Store) CreatePackage(ctx context.Context, input ports.CreatePackageInput) (ports.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return ports.Package{}, err
	}
	for _, id := range input.CourseIDs {
		course, ok := s.courses[id]
		if !ok {
			return ports.Package{}, notFound("course not found: " + id)
		}
		if course.Creator.ID != actor.ID {
			return ports.Package{}, forbidden("package courses must belong to you")
		}
	}
	stored := storedPackage{
		id:        "p_" + uuid.NewString(),
		packageID: uuid.NewString(),
		title:     input.Title,
		image:     input.Image,
		creatorID: actor.ID,
		courseIDs: append([]string(nil), input.CourseIDs...),
		createdAt: "2024-04-01T00:00:00Z",
	}
	s.packages[stored.id] = stored
	return s.buildPackage(stored, ""), nil
}

func (s *Store) UpdatePackage(ctx context.Context, packageID string, input ports.UpdatePackageInput) (ports.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return ports.Package{}, err
	}
	stored, ok := s.findPackage(packageID)
	if !ok {
		return ports.Package{}, notFound("package not found")
	}
	if stored.creatorID != actor.ID {
		return ports.Package{}, forbidden("you do not own this package")
	}
	if input.Title != nil {
		stored.title = *input.Title
	}
	if input.Image != nil {
		stored.image = *input.Image
	}
	s.packages[stored.id] = stored
	return s.buildPackage(stored, ""), nil
}

func (s *Store) DeletePackage(ctx context.Context, packageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	stored, ok := s.findPackage(packageID)
	if !ok {
		return notFound("package not found")
	}
	if stored.creatorID != actor.ID {
		return forbidden("you do not own this package")
	}
	delete(s.packages, stored.id)
	return nil
}

func (s *Store) Login(_ context.Context, credentials ports.Credentials) (ports.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seeded := range s.users {
		if strings.EqualFold(seeded.user.Email, credentials.Email) {
			if seeded.password != credentials.Password {
				break
			}
			token := "memtok_" + uuid.NewString()
			s.sessions[token] = seeded.user.ID
			return ports.AuthSession{Token: token, User: seeded.user}, nil
		}
	}
	return ports.AuthSession{}, &domainerrors.APIError{
		Class:      domainerrors.ErrAuth,
		StatusCode: http.StatusUnauthorized,
		Message:    "Incorrect email or password",
	}
}

func (s *Store) Register(_ context.Context, input ports.RegisterInput) (ports.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seeded := range s.users {
		if strings.EqualFold(seeded.user.Email, input.Email) {
			return ports.AuthSession{}, &domainerrors.APIError{
				Class:      domainerrors.ErrValidation,
				StatusCode: http.StatusBadRequest,
				Message:    "Email already in use",
				FieldErrors: []domainerrors.FieldError{
					{Path: "email", Message: "Email already in use"},
				},
			}
		}
	}
	user := ports.User{
		ID:           "u_" + uuid.NewString(),
		UserID:       uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Location:     input.Location,
		ProfileImage: input.ProfileImage,
		CreatedAt:    "2024-04-01T00:00:00Z",
	}
	s.users[user.ID] = seedUser{user: user, password: input.Password}
	token := "memtok_" + uuid.NewString()
	s.sessions[token] = user.ID
	return ports.AuthSession{Token: token, User: user}, nil
}

func (s *Store) Me(_ context.Context, token string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	if !ok {
		return ports.User{}, unauthorized()
	}
	seeded, ok := s.users[userID]
	if !ok {
		return ports.User{}, unauthorized()
	}
	return seeded.user, nil
}

// RevokeToken invalidates a seeded session, simulating upstream expiry.
func (s *Store) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *Store) actor(ctx context.Context) (ports.User, error) {
	token := ""
	if s.tokens != nil {
		token = s.tokens.BearerToken(ctx)
	}
	if token == "" {
		return ports.User{}, unauthorized()
	}
	userID, ok := s.sessions[token]
	if !ok {
		return ports.User{}, unauthorized()
	}
	seeded, ok := s.users[userID]
	if !ok {
		return ports.User{}, unauthorized()
	}
	return seeded.user, nil
}

func (s *Store) findCourse(courseID string) (ports.Course, bool) {
	if course, ok := s.courses[courseID]; ok {
		return course, true
	}
	for _, course := range s.courses {
		if course.CourseID == courseID {
			return course, true
		}
	}
	return ports.Course{}, false
}

func (s *Store) findPackage(packageID string) (storedPackage, bool) {
	if stored, ok := s.packages[packageID]; ok {
		return stored, true
	}
	for _, stored := range s.packages {
		if stored.packageID == packageID {
			return stored, true
		}
	}
	return storedPackage{}, false
}

func (s *Store) localizeCourse(course ports.Course, location string) ports.Course {
	course.Pricing = localize(course.PriceUSD, location)
	return course
}

func (s *Store) buildPackage(stored storedPackage, location string) ports.Package {
	members := make([]ports.PackageCourse, 0, len(stored.courseIDs))
	total := 0.0
	for _, id := range stored.courseIDs {
		course, ok := s.courses[id]
		if !ok {
			continue
		}
		total += course.PriceUSD
		members = append(members, ports.PackageCourse{
			ID:       course.ID,
			CourseID: course.CourseID,
			Title:    course.Title,
			PriceUSD: course.PriceUSD,
			Image:    course.Image,
		})
	}
	creator := ports.CreatorRef{ID: stored.creatorID}
	if seeded, ok := s.users[stored.creatorID]; ok {
		user := seeded.user
		creator.User = &user
	}
	return ports.Package{
		ID:                stored.id,
		PackageID:         stored.packageID,
		Title:             stored.title,
		Courses:           members,
		Creator:           creator,
		Image:             stored.image,
		BaseTotalPriceUSD: &total,
		CreatedAt:         stored.createdAt,
		Pricing:           localize(total, location),
	}
}

func localize(baseUSD float64, location string) *pricingports.LocalizedPriceInfo {
	if location == "" {
		return nil
	}
	info := &pricingports.LocalizedPriceInfo{
		OriginalPriceUSD: baseUSD,
		OriginalCurrency: "USD",
	}
	rate, ok := pricingTable[strings.ToLower(strings.TrimSpace(location))]
	if !ok {
		info.Message = "No localized pricing for this location; showing USD."
		return info
	}
	if rate.blacklisted {
		info.IsBlacklisted = true
		info.Message = rate.message
		return info
	}
	localized := round2(baseUSD * rate.rate * rate.multiplier)
	info.LocalizedPrice = &localized
	info.LocalizedCurrency = rate.currency
	conversion := rate.rate
	info.ConversionRate = &conversion
	multiplier := rate.multiplier
	info.AppliedMultiplier = &multiplier
	return info
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func populatedCreator(user ports.User) ports.CreatorRef {
	u := user
	return ports.CreatorRef{ID: user.ID, User: &u}
}

func sortCourses(items []ports.Course) {
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
}

func notFound(message string) *domainerrors.APIError {
	return &domainerrors.APIError{
		Class:      domainerrors.ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func forbidden(message string) *domainerrors.APIError {
	return &domainerrors.APIError{
		Class:      domainerrors.ErrAuth,
		StatusCode: http.StatusForbidden,
		Message:    message,
	}
}

func unauthorized() *domainerrors.APIError {
	return &domainerrors.APIError{
		Class:      domainerrors.ErrAuth,
		StatusCode: http.StatusUnauthorized,
		Message:    "You are not logged in",
	}
}
