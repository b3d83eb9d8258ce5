package service

import (
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/config"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth       *AuthService
	Patient    *PatientService
	Catalog    *CatalogService
	Series     *SeriesService
	Assignment *AssignmentService
	Session    *SessionService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Patient, cfg, logger),
		Patient:    NewPatientService(repos.Patient, repos.User),
		Catalog:    NewCatalogService(repos.TherapyType, repos.Posture, logger),
		Series:     NewSeriesService(repos.Series, repos.Posture, repos.TherapyType),
		Assignment: NewAssignmentService(repos.Assignment, repos.Patient, repos.Series, logger),
		Session:    NewSessionService(repos.Session, repos.Assignment, repos.Series),
	}
}
