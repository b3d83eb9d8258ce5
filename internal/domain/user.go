package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleInstructor Role = "instructor"
	RolePatient    Role = "patient"
)

func (r Role) Valid() bool {
	return r == RoleInstructor || r == RolePatient
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}
