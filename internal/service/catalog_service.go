package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogService serves the posture and therapy-type catalog and seeds the
// default entries on an empty database.
type CatalogService struct {
	therapyTypeRepo repository.TherapyTypeRepository
	postureRepo     repository.PostureRepository
	logger          *zap.Logger
}

func NewCatalogService(therapyTypeRepo repository.TherapyTypeRepository, postureRepo repository.PostureRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		therapyTypeRepo: therapyTypeRepo,
		postureRepo:     postureRepo,
		logger:          logger,
	}
}

func (s *CatalogService) ListTherapyTypes(ctx context.Context) ([]*domain.TherapyType, error) {
	return s.therapyTypeRepo.GetAll(ctx)
}

func (s *CatalogService) GetTherapyType(ctx context.Context, id uuid.UUID) (*domain.TherapyType, error) {
	therapyType, err := s.therapyTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTherapyTypeNotFound
		}
		return nil, err
	}
	return therapyType, nil
}

func (s *CatalogService) ListPostures(ctx context.Context) ([]*domain.Posture, error) {
	return s.postureRepo.GetAll(ctx)
}

func (s *CatalogService) ListPosturesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Posture, error) {
	return s.postureRepo.GetByIDs(ctx, ids)
}

// ListPosturesByTherapyType returns the postures tagged with the given
// therapy type. An unknown therapy type is ErrTherapyTypeNotFound rather
// than an empty list.
func (s *CatalogService) ListPosturesByTherapyType(ctx context.Context, therapyTypeID uuid.UUID) ([]*domain.Posture, error) {
	if _, err := s.GetTherapyType(ctx, therapyTypeID); err != nil {
		return nil, err
	}
	return s.postureRepo.GetByTherapyType(ctx, therapyTypeID)
}

type seedPosture struct {
	sanskritName string
	spanishName  string
	instructions string
	benefits     string
	mods         string
	duration     int
	therapyName  string
}

// Seed populates the default therapy types and postures when the catalog is
// empty. Safe to call on every startup.
func (s *CatalogService) Seed(ctx context.Context) error {
	count, err := s.therapyTypeRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	therapyTypes := []*domain.TherapyType{
		{ID: uuid.New(), Name: "Ansiedad", Description: "Terapia de yoga para reducir la ansiedad y promover la relajación", TargetCondition: "anxiety"},
		{ID: uuid.New(), Name: "Artritis", Description: "Yoga suave para mejorar la movilidad articular", TargetCondition: "arthritis"},
		{ID: uuid.New(), Name: "Dolor de Espalda", Description: "Fortalecimiento y estiramiento para aliviar el dolor de espalda", TargetCondition: "back_pain"},
	}

	byName := make(map[string]uuid.UUID, len(therapyTypes))
	for _, tt := range therapyTypes {
		if err := s.therapyTypeRepo.Create(ctx, tt); err != nil {
			return err
		}
		byName[tt.Name] = tt.ID
	}

	postures := []seedPosture{
		{
			sanskritName: "Balasana",
			spanishName:  "Postura del Niño",
			instructions: "Siéntate sobre los talones, inclínate hacia adelante con los brazos extendidos. Respira profundamente.",
			benefits:     "Calma la mente, reduce el estrés, estira la espalda baja",
			mods:         "Coloca una almohada bajo las rodillas si hay molestias",
			duration:     180,
			therapyName:  "Ansiedad",
		},
		{
			sanskritName: "Padmasana",
			spanishName:  "Postura del Loto",
			instructions: "Siéntate con las piernas cruzadas, mantén la columna erecta, manos sobre las rodillas.",
			benefits:     "Mejora la concentración, calma la mente, fortalece la postura",
			mods:         "Usa un cojín bajo las caderas para mayor comodidad",
			duration:     300,
			therapyName:  "Ansiedad",
		},
		{
			sanskritName: "Marjaryasana",
			spanishName:  "Postura del Gato",
			instructions: "En cuatro patas, alterna entre arquear y redondear la espalda suavemente.",
			benefits:     "Mejora la flexibilidad espinal, fortalece el core",
			mods:         "Realiza movimientos más pequeños si hay rigidez",
			duration:     120,
			therapyName:  "Artritis",
		},
		{
			sanskritName: "Adho Mukha Svanasana",
			spanishName:  "Perro boca abajo",
			instructions: "Desde cuatro patas, levanta las caderas hacia arriba formando una V invertida.",
			benefits:     "Fortalece brazos y piernas, estira la columna vertebral",
			mods:         "Flexiona las rodillas si hay tensión en las piernas",
			duration:     90,
			therapyName:  "Dolor de Espalda",
		},
	}

	for _, p := range postures {
		ids, err := json.Marshal([]uuid.UUID{byName[p.therapyName]})
		if err != nil {
			return err
		}
		posture := &domain.Posture{
			ID:              uuid.New(),
			SanskritName:    p.sanskritName,
			SpanishName:     p.spanishName,
			Instructions:    p.instructions,
			Benefits:        p.benefits,
			Modifications:   p.mods,
			DurationSeconds: p.duration,
			TherapyTypeIDs:  datatypes.JSON(ids),
		}
		if err := s.postureRepo.Create(ctx, posture); err != nil {
			return err
		}
	}

	s.logger.Info("seeded default catalog",
		zap.Int("therapy_types", len(therapyTypes)),
		zap.Int("postures", len(postures)))
	return nil
}
