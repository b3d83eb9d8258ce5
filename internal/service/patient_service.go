package service

import (
	"context"
	"errors"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientService struct {
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
}

func NewPatientService(patientRepo repository.PatientRepository, userRepo repository.UserRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		userRepo:    userRepo,
	}
}

type CreatePatientInput struct {
	UserID            uuid.UUID
	MedicalConditions string
	Notes             string
	DateOfBirth       *time.Time
}

func (s *PatientService) Create(ctx context.Context, instructorID uuid.UUID, input CreatePatientInput) (*domain.Patient, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != domain.RolePatient {
		return nil, domain.ErrInvalidRole
	}

	patient := &domain.Patient{
		ID:                uuid.New(),
		UserID:            user.ID,
		InstructorID:      instructorID,
		DateOfBirth:       input.DateOfBirth,
		MedicalConditions: input.MedicalConditions,
		Notes:             input.Notes,
		CreatedAt:         time.Now(),
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	patient.User = user
	return patient, nil
}

func (s *PatientService) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*domain.Patient, error) {
	return s.patientRepo.GetByInstructor(ctx, instructorID)
}

// GetByUserID resolves the patient profile for a patient-role user directly,
// instead of scanning an instructor's roster.
func (s *PatientService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Patient, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}
