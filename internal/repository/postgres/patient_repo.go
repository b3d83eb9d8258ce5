package postgres

import (
	"context"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *patientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	var patient domain.Patient
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&patient, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Patient, error) {
	var patient domain.Patient
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&patient, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*domain.Patient, error) {
	var patients []*domain.Patient
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("instructor_id = ?", instructorID).
		Order("created_at ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}
