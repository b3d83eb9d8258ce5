package service

import (
	"context"
	"errors"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssignmentService owns the single cross-entity rule of the system: a
// patient has at most one active series assignment at a time.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	patientRepo    repository.PatientRepository
	seriesRepo     repository.SeriesRepository
	logger         *zap.Logger
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, patientRepo repository.PatientRepository, seriesRepo repository.SeriesRepository, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		patientRepo:    patientRepo,
		seriesRepo:     seriesRepo,
		logger:         logger,
	}
}

// AssignSeries replaces the patient's active assignment with a fresh one for
// the given series. Any instructor may assign any series; series ownership
// is not cross-checked.
func (s *AssignmentService) AssignSeries(ctx context.Context, patientID, seriesID uuid.UUID) (*domain.PatientSeries, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, err
	}

	assignment := &domain.PatientSeries{
		ID:                uuid.New(),
		PatientID:         patientID,
		SeriesID:          seriesID,
		AssignedAt:        time.Now(),
		IsActive:          true,
		CompletedSessions: 0,
	}

	if err := s.assignmentRepo.ReplaceActive(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("series assigned",
		zap.String("patient_id", patientID.String()),
		zap.String("series_id", seriesID.String()))

	assignment.Series = series
	return assignment, nil
}

// ActiveForPatient returns the patient's active assignment with its series
// preloaded, or domain.ErrNoActiveAssignment.
func (s *AssignmentService) ActiveForPatient(ctx context.Context, patientID uuid.UUID) (*domain.PatientSeries, error) {
	assignment, err := s.assignmentRepo.GetActiveByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveAssignment
		}
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) HistoryForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.PatientSeries, error) {
	return s.assignmentRepo.GetByPatient(ctx, patientID)
}
