package postgres

import (
	"context"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *seriesRepository {
	return &seriesRepository{db: db}
}

func (r *seriesRepository) Create(ctx context.Context, series *domain.Series) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *seriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Series, error) {
	var series domain.Series
	err := r.db.WithContext(ctx).
		Preload("TherapyType").
		First(&series, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) GetByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*domain.Series, error) {
	var seriesList []*domain.Series
	err := r.db.WithContext(ctx).
		Preload("TherapyType").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&seriesList).Error
	if err != nil {
		return nil, err
	}
	return seriesList, nil
}
