package postgres

import (
	"context"
	"encoding/json"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type therapyTypeRepository struct {
	db *gorm.DB
}

func NewTherapyTypeRepository(db *gorm.DB) *therapyTypeRepository {
	return &therapyTypeRepository{db: db}
}

func (r *therapyTypeRepository) Create(ctx context.Context, therapyType *domain.TherapyType) error {
	return r.db.WithContext(ctx).Create(therapyType).Error
}

func (r *therapyTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TherapyType, error) {
	var therapyType domain.TherapyType
	err := r.db.WithContext(ctx).First(&therapyType, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &therapyType, nil
}

func (r *therapyTypeRepository) GetAll(ctx context.Context) ([]*domain.TherapyType, error) {
	var therapyTypes []*domain.TherapyType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&therapyTypes).Error
	if err != nil {
		return nil, err
	}
	return therapyTypes, nil
}

func (r *therapyTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TherapyType{}).Count(&count).Error
	return count, err
}

type postureRepository struct {
	db *gorm.DB
}

func NewPostureRepository(db *gorm.DB) *postureRepository {
	return &postureRepository{db: db}
}

func (r *postureRepository) Create(ctx context.Context, posture *domain.Posture) error {
	return r.db.WithContext(ctx).Create(posture).Error
}

func (r *postureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Posture, error) {
	var posture domain.Posture
	err := r.db.WithContext(ctx).First(&posture, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &posture, nil
}

func (r *postureRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Posture, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var postures []*domain.Posture
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&postures).Error
	if err != nil {
		return nil, err
	}
	return postures, nil
}

func (r *postureRepository) GetByTherapyType(ctx context.Context, therapyTypeID uuid.UUID) ([]*domain.Posture, error) {
	membership, err := json.Marshal([]uuid.UUID{therapyTypeID})
	if err != nil {
		return nil, err
	}
	var postures []*domain.Posture
	err = r.db.WithContext(ctx).
		Where("therapy_type_ids @> ?", datatypes.JSON(membership)).
		Order("spanish_name ASC").
		Find(&postures).Error
	if err != nil {
		return nil, err
	}
	return postures, nil
}

func (r *postureRepository) GetAll(ctx context.Context) ([]*domain.Posture, error) {
	var postures []*domain.Posture
	err := r.db.WithContext(ctx).Order("spanish_name ASC").Find(&postures).Error
	if err != nil {
		return nil, err
	}
	return postures, nil
}
