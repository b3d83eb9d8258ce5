package domain

import (
	"time"

	"github.com/google/uuid"
)

// Intensity is a patient-reported symptom level, captured before and after
// a session walkthrough.
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

func (i Intensity) Valid() bool {
	return i == IntensityNone || i == IntensityModerate || i == IntensityIntense
}

// Session is the durable record of one completed walkthrough of a series.
type Session struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PatientID       uuid.UUID `json:"patientId" gorm:"type:uuid;not null;index"`
	SeriesID        uuid.UUID `json:"seriesId" gorm:"type:uuid;not null;index"`
	PreIntensity    Intensity `json:"preIntensity" gorm:"not null"`
	PostIntensity   Intensity `json:"postIntensity" gorm:"not null"`
	Comments        string    `json:"comments" gorm:"not null"`
	DurationMinutes int       `json:"duration"`
	CompletedAt     time.Time `json:"completedAt"`

	// Relations
	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Series  *Series  `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
}
