package postgres

import (
	"context"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

// ReplaceActive swaps the patient's active assignment inside one transaction
// so concurrent readers never observe zero or two active rows.
func (r *assignmentRepository) ReplaceActive(ctx context.Context, assignment *domain.PatientSeries) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.PatientSeries{}).
			Where("patient_id = ? AND is_active = ?", assignment.PatientID, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(assignment).Error
	})
}

func (r *assignmentRepository) GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.PatientSeries, error) {
	var assignment domain.PatientSeries
	err := r.db.WithContext(ctx).
		Preload("Series").
		Preload("Series.TherapyType").
		First(&assignment, "patient_id = ? AND is_active = ?", patientID, true).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.PatientSeries, error) {
	var assignments []*domain.PatientSeries
	err := r.db.WithContext(ctx).
		Preload("Series").
		Where("patient_id = ?", patientID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
