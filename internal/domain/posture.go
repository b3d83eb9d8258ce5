package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Posture struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SanskritName    string         `json:"sanskritName" gorm:"not null"`
	SpanishName     string         `json:"spanishName" gorm:"not null"`
	ImageURL        string         `json:"imageUrl"`
	VideoURL        string         `json:"videoUrl"`
	Instructions    string         `json:"instructions" gorm:"not null"`
	Benefits        string         `json:"benefits" gorm:"not null"`
	Modifications   string         `json:"modifications"`
	DurationSeconds int            `json:"durationSeconds" gorm:"not null"`
	TherapyTypeIDs  datatypes.JSON `json:"therapyTypeIds"`
}

// TherapyTypeIDList decodes the JSON-encoded therapy type id array.
func (p *Posture) TherapyTypeIDList() ([]uuid.UUID, error) {
	if len(p.TherapyTypeIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(p.TherapyTypeIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
