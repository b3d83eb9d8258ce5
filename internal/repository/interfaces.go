package repository

import (
	"context"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Patient, error)
	GetByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*domain.Patient, error)
	Update(ctx context.Context, patient *domain.Patient) error
}

type TherapyTypeRepository interface {
	Create(ctx context.Context, therapyType *domain.TherapyType) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TherapyType, error)
	GetAll(ctx context.Context) ([]*domain.TherapyType, error)
	Count(ctx context.Context) (int64, error)
}

type PostureRepository interface {
	Create(ctx context.Context, posture *domain.Posture) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Posture, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Posture, error)
	// GetByTherapyType returns postures whose therapy-type membership
	// includes the given id.
	GetByTherapyType(ctx context.Context, therapyTypeID uuid.UUID) ([]*domain.Posture, error)
	GetAll(ctx context.Context) ([]*domain.Posture, error)
}

type SeriesRepository interface {
	Create(ctx context.Context, series *domain.Series) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Series, error)
	GetByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*domain.Series, error)
}

type AssignmentRepository interface {
	// ReplaceActive deactivates the patient's current active assignment, if
	// any, and inserts the new one as active, in a single transaction.
	ReplaceActive(ctx context.Context, assignment *domain.PatientSeries) error
	GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.PatientSeries, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.PatientSeries, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// CreateForAssignment inserts the session and increments the
	// assignment's completed-session counter in a single transaction.
	CreateForAssignment(ctx context.Context, session *domain.Session, assignmentID uuid.UUID) error
	GetByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Session, error)
	GetBySeriesAndPatient(ctx context.Context, seriesID, patientID uuid.UUID) ([]*domain.Session, error)
}

type Repositories struct {
	User        UserRepository
	Patient     PatientRepository
	TherapyType TherapyTypeRepository
	Posture     PostureRepository
	Series      SeriesRepository
	Assignment  AssignmentRepository
	Session     SessionRepository
}
