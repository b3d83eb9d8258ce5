package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService struct {
	sessionRepo    repository.SessionRepository
	assignmentRepo repository.AssignmentRepository
	seriesRepo     repository.SeriesRepository
}

func NewSessionService(sessionRepo repository.SessionRepository, assignmentRepo repository.AssignmentRepository, seriesRepo repository.SeriesRepository) *SessionService {
	return &SessionService{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		seriesRepo:     seriesRepo,
	}
}

type RecordSessionInput struct {
	SeriesID        uuid.UUID
	PreIntensity    domain.Intensity
	PostIntensity   domain.Intensity
	Comments        string
	DurationMinutes int
}

// Record stores the outcome of one completed walkthrough. When the session
// belongs to the patient's active assignment, the assignment's completed
// counter advances in the same transaction.
func (s *SessionService) Record(ctx context.Context, patientID uuid.UUID, input RecordSessionInput) (*domain.Session, error) {
	if !input.PreIntensity.Valid() || !input.PostIntensity.Valid() {
		return nil, domain.ErrInvalidIntensity
	}
	if strings.TrimSpace(input.Comments) == "" {
		return nil, domain.ErrCommentsRequired
	}
	if _, err := s.seriesRepo.GetByID(ctx, input.SeriesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, err
	}

	session := &domain.Session{
		ID:              uuid.New(),
		PatientID:       patientID,
		SeriesID:        input.SeriesID,
		PreIntensity:    input.PreIntensity,
		PostIntensity:   input.PostIntensity,
		Comments:        input.Comments,
		DurationMinutes: input.DurationMinutes,
		CompletedAt:     time.Now(),
	}

	assignment, err := s.assignmentRepo.GetActiveByPatient(ctx, patientID)
	if err == nil && assignment.SeriesID == input.SeriesID {
		if err := s.sessionRepo.CreateForAssignment(ctx, session, assignment.ID); err != nil {
			return nil, err
		}
		return session, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Session, error) {
	return s.sessionRepo.GetByPatient(ctx, patientID)
}

func (s *SessionService) ListBySeriesAndPatient(ctx context.Context, seriesID, patientID uuid.UUID) ([]*domain.Session, error) {
	return s.sessionRepo.GetBySeriesAndPatient(ctx, seriesID, patientID)
}
