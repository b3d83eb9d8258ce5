package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	name     string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		name:     fmt.Sprintf("Test User %s", suffix),
		password: "testpassword123",
		role:     domain.RolePatient,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		Role:         b.role,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a user via the API and returns it with a token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":           b.email,
		"password":        b.password,
		"confirmPassword": b.password,
		"name":            b.name,
		"role":            string(b.role),
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: authResp.User.Email,
		Name:  authResp.User.Name,
		Role:  domain.Role(authResp.User.Role),
	}

	return user, authResp.Token
}

// PatientBuilder creates patient profiles
type PatientBuilder struct {
	user       *domain.User
	instructor *domain.User
	conditions string
	notes      string
}

func NewPatientBuilder() *PatientBuilder {
	return &PatientBuilder{}
}

func (b *PatientBuilder) WithUser(user *domain.User) *PatientBuilder {
	b.user = user
	return b
}

func (b *PatientBuilder) WithInstructor(instructor *domain.User) *PatientBuilder {
	b.instructor = instructor
	return b
}

func (b *PatientBuilder) WithConditions(conditions string) *PatientBuilder {
	b.conditions = conditions
	return b
}

func (b *PatientBuilder) Build(t *testing.T, db *gorm.DB) *domain.Patient {
	t.Helper()

	if b.user == nil {
		b.user, _ = NewUserBuilder().WithRole(domain.RolePatient).Build(t, db)
	}
	if b.instructor == nil {
		b.instructor, _ = NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, db)
	}

	patient := &domain.Patient{
		ID:                uuid.New(),
		UserID:            b.user.ID,
		InstructorID:      b.instructor.ID,
		MedicalConditions: b.conditions,
		Notes:             b.notes,
		CreatedAt:         time.Now(),
		User:              b.user,
	}

	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}

	return patient
}

// TherapyTypeBuilder creates therapy types
type TherapyTypeBuilder struct {
	name            string
	targetCondition string
}

func NewTherapyTypeBuilder() *TherapyTypeBuilder {
	return &TherapyTypeBuilder{
		name:            fmt.Sprintf("Therapy %s", uuid.New().String()[:8]),
		targetCondition: "anxiety",
	}
}

func (b *TherapyTypeBuilder) WithName(name string) *TherapyTypeBuilder {
	b.name = name
	return b
}

func (b *TherapyTypeBuilder) Build(t *testing.T, db *gorm.DB) *domain.TherapyType {
	t.Helper()

	therapyType := &domain.TherapyType{
		ID:              uuid.New(),
		Name:            b.name,
		TargetCondition: b.targetCondition,
	}

	if err := db.Create(therapyType).Error; err != nil {
		t.Fatalf("failed to create therapy type: %v", err)
	}

	return therapyType
}

// PostureBuilder creates catalog postures
type PostureBuilder struct {
	sanskritName    string
	spanishName     string
	durationSeconds int
	therapyTypeIDs  []uuid.UUID
}

func NewPostureBuilder() *PostureBuilder {
	suffix := uuid.New().String()[:8]
	return &PostureBuilder{
		sanskritName:    fmt.Sprintf("Asana %s", suffix),
		spanishName:     fmt.Sprintf("Postura %s", suffix),
		durationSeconds: 90,
	}
}

func (b *PostureBuilder) WithNames(sanskrit, spanish string) *PostureBuilder {
	b.sanskritName = sanskrit
	b.spanishName = spanish
	return b
}

func (b *PostureBuilder) WithDuration(seconds int) *PostureBuilder {
	b.durationSeconds = seconds
	return b
}

// WithTherapyTypes tags the posture as belonging to the given therapy types.
func (b *PostureBuilder) WithTherapyTypes(ids ...uuid.UUID) *PostureBuilder {
	b.therapyTypeIDs = ids
	return b
}

func (b *PostureBuilder) Build(t *testing.T, db *gorm.DB) *domain.Posture {
	t.Helper()

	posture := &domain.Posture{
		ID:              uuid.New(),
		SanskritName:    b.sanskritName,
		SpanishName:     b.spanishName,
		Instructions:    "Mantén la postura respirando profundamente.",
		Benefits:        "Mejora la flexibilidad y calma la mente.",
		DurationSeconds: b.durationSeconds,
	}

	if len(b.therapyTypeIDs) > 0 {
		membership, err := json.Marshal(b.therapyTypeIDs)
		if err != nil {
			t.Fatalf("failed to marshal therapy type ids: %v", err)
		}
		posture.TherapyTypeIDs = datatypes.JSON(membership)
	}

	if err := db.Create(posture).Error; err != nil {
		t.Fatalf("failed to create posture: %v", err)
	}

	return posture
}

// SeriesBuilder creates series with an ordered posture sequence
type SeriesBuilder struct {
	name        string
	instructor  *domain.User
	therapyType *domain.TherapyType
	postureIDs  []uuid.UUID
	durations   []int
	estimated   int
}

func NewSeriesBuilder() *SeriesBuilder {
	return &SeriesBuilder{
		name: fmt.Sprintf("Serie %s", uuid.New().String()[:8]),
	}
}

func (b *SeriesBuilder) WithName(name string) *SeriesBuilder {
	b.name = name
	return b
}

func (b *SeriesBuilder) WithInstructor(instructor *domain.User) *SeriesBuilder {
	b.instructor = instructor
	return b
}

func (b *SeriesBuilder) WithTherapyType(therapyType *domain.TherapyType) *SeriesBuilder {
	b.therapyType = therapyType
	return b
}

// WithPostures sets the ordered sequence and parallel durations. durations
// may be nil to fall back to catalog durations.
func (b *SeriesBuilder) WithPostures(postureIDs []uuid.UUID, durations []int) *SeriesBuilder {
	b.postureIDs = postureIDs
	b.durations = durations
	return b
}

func (b *SeriesBuilder) WithEstimatedDuration(minutes int) *SeriesBuilder {
	b.estimated = minutes
	return b
}

func (b *SeriesBuilder) Build(t *testing.T, db *gorm.DB) *domain.Series {
	t.Helper()

	if b.instructor == nil {
		b.instructor, _ = NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, db)
	}
	if b.therapyType == nil {
		b.therapyType = NewTherapyTypeBuilder().Build(t, db)
	}
	if b.postureIDs == nil {
		for i := 0; i < domain.MinSeriesPostures; i++ {
			posture := NewPostureBuilder().Build(t, db)
			b.postureIDs = append(b.postureIDs, posture.ID)
		}
	}
	durations := b.durations
	if durations == nil {
		durations = []int{}
	}

	postureIDs, err := json.Marshal(b.postureIDs)
	if err != nil {
		t.Fatalf("failed to marshal posture ids: %v", err)
	}
	postureDurations, err := json.Marshal(durations)
	if err != nil {
		t.Fatalf("failed to marshal durations: %v", err)
	}

	series := &domain.Series{
		ID:                       uuid.New(),
		Name:                     b.name,
		InstructorID:             b.instructor.ID,
		TherapyTypeID:            b.therapyType.ID,
		RecommendedSessions:      10,
		EstimatedDurationMinutes: b.estimated,
		PostureIDs:               datatypes.JSON(postureIDs),
		PostureDurations:         datatypes.JSON(postureDurations),
		CreatedAt:                time.Now(),
	}

	if err := db.Create(series).Error; err != nil {
		t.Fatalf("failed to create series: %v", err)
	}

	return series
}
