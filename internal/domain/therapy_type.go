package domain

import "github.com/google/uuid"

type TherapyType struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description"`
	TargetCondition string    `json:"targetCondition" gorm:"not null"`
}
