package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/walkthrough"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrUnknownPosture = errors.New("series references an unknown posture")

type SeriesService struct {
	seriesRepo      repository.SeriesRepository
	postureRepo     repository.PostureRepository
	therapyTypeRepo repository.TherapyTypeRepository
}

func NewSeriesService(seriesRepo repository.SeriesRepository, postureRepo repository.PostureRepository, therapyTypeRepo repository.TherapyTypeRepository) *SeriesService {
	return &SeriesService{
		seriesRepo:      seriesRepo,
		postureRepo:     postureRepo,
		therapyTypeRepo: therapyTypeRepo,
	}
}

type CreateSeriesInput struct {
	Name                string
	Description         string
	TherapyTypeID       uuid.UUID
	PostureIDs          []uuid.UUID
	PostureDurations    []int
	RecommendedSessions int
}

// Create validates and stores a new series. Series are immutable once
// created; there is no update path.
func (s *SeriesService) Create(ctx context.Context, instructorID uuid.UUID, input CreateSeriesInput) (*domain.Series, error) {
	if len(input.PostureIDs) < domain.MinSeriesPostures {
		return nil, domain.ErrTooFewPostures
	}
	if len(input.PostureDurations) > 0 && len(input.PostureDurations) != len(input.PostureIDs) {
		return nil, domain.ErrDurationMismatch
	}

	if _, err := s.therapyTypeRepo.GetByID(ctx, input.TherapyTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTherapyTypeNotFound
		}
		return nil, err
	}

	postures, err := s.postureRepo.GetByIDs(ctx, input.PostureIDs)
	if err != nil {
		return nil, err
	}
	catalog := make(map[uuid.UUID]int, len(postures))
	for _, p := range postures {
		catalog[p.ID] = p.DurationSeconds
	}

	// Authoring is strict about unknown postures; only the walkthrough
	// tolerates stale references.
	totalSeconds := 0
	for i, id := range input.PostureIDs {
		catalogDuration, ok := catalog[id]
		if !ok {
			return nil, ErrUnknownPosture
		}
		override := 0
		if i < len(input.PostureDurations) {
			override = input.PostureDurations[i]
		}
		totalSeconds += walkthrough.EffectiveDuration(override, catalogDuration)
	}
	estimatedMinutes := (totalSeconds + 59) / 60

	postureIDs, err := json.Marshal(input.PostureIDs)
	if err != nil {
		return nil, err
	}
	durations := input.PostureDurations
	if durations == nil {
		durations = []int{}
	}
	postureDurations, err := json.Marshal(durations)
	if err != nil {
		return nil, err
	}

	series := &domain.Series{
		ID:                       uuid.New(),
		Name:                     input.Name,
		Description:              input.Description,
		InstructorID:             instructorID,
		TherapyTypeID:            input.TherapyTypeID,
		RecommendedSessions:      input.RecommendedSessions,
		EstimatedDurationMinutes: estimatedMinutes,
		PostureIDs:               datatypes.JSON(postureIDs),
		PostureDurations:         datatypes.JSON(postureDurations),
		CreatedAt:                time.Now(),
	}

	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *SeriesService) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*domain.Series, error) {
	return s.seriesRepo.GetByInstructor(ctx, instructorID)
}

func (s *SeriesService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Series, error) {
	series, err := s.seriesRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, err
	}
	return series, nil
}
