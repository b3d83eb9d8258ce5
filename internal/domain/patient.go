package domain

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID            uuid.UUID  `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	InstructorID      uuid.UUID  `json:"instructorId" gorm:"type:uuid;not null"`
	DateOfBirth       *time.Time `json:"dateOfBirth"`
	MedicalConditions string     `json:"medicalConditions"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`

	// Relations
	User       *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Instructor *User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
}
