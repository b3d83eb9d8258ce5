package domain

import (
	"time"

	"github.com/google/uuid"
)

// PatientSeries links a patient to the series currently prescribed to them.
// At most one row per patient has IsActive=true; the assignment service
// swaps the active row transactionally.
type PatientSeries struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PatientID         uuid.UUID `json:"patientId" gorm:"type:uuid;not null;index"`
	SeriesID          uuid.UUID `json:"seriesId" gorm:"type:uuid;not null"`
	AssignedAt        time.Time `json:"assignedAt"`
	IsActive          bool      `json:"isActive" gorm:"not null;default:true"`
	CompletedSessions int       `json:"completedSessions" gorm:"not null;default:0"`

	// Relations
	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Series  *Series  `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
}
