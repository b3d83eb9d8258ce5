package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MinSeriesPostures is the authoring-time minimum sequence length.
const MinSeriesPostures = 6

type Series struct {
	ID                       uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name                     string         `json:"name" gorm:"not null"`
	Description              string         `json:"description"`
	InstructorID             uuid.UUID      `json:"instructorId" gorm:"type:uuid;not null"`
	TherapyTypeID            uuid.UUID      `json:"therapyTypeId" gorm:"type:uuid;not null"`
	RecommendedSessions      int            `json:"recommendedSessions" gorm:"not null"`
	EstimatedDurationMinutes int            `json:"estimatedDuration" gorm:"not null"`
	PostureIDs               datatypes.JSON `json:"postureIds" gorm:"not null"`
	PostureDurations         datatypes.JSON `json:"postureDurations" gorm:"not null"`
	CreatedAt                time.Time      `json:"createdAt"`

	// Relations
	Instructor  *User        `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	TherapyType *TherapyType `json:"therapyType,omitempty" gorm:"foreignKey:TherapyTypeID"`
}

// PostureIDList decodes the ordered posture id sequence.
func (s *Series) PostureIDList() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if len(s.PostureIDs) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(s.PostureIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// DurationList decodes the per-posture durations in seconds. A zero entry
// means "no authored override" for that position.
func (s *Series) DurationList() ([]int, error) {
	var durations []int
	if len(s.PostureDurations) == 0 {
		return durations, nil
	}
	if err := json.Unmarshal(s.PostureDurations, &durations); err != nil {
		return nil, err
	}
	return durations, nil
}
