package postgres

import (
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Patient{},
		&domain.TherapyType{},
		&domain.Posture{},
		&domain.Series{},
		&domain.PatientSeries{},
		&domain.Session{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Patient:     NewPatientRepository(db),
		TherapyType: NewTherapyTypeRepository(db),
		Posture:     NewPostureRepository(db),
		Series:      NewSeriesRepository(db),
		Assignment:  NewAssignmentRepository(db),
		Session:     NewSessionRepository(db),
	}
}
