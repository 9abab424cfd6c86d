package model

import "time"

// User roles. Secretaries are scoped to a single service, admins are not.
const (
	RoleAdmin      = "admin"
	RoleSecretaire = "secretaire"
)

// User represents an admin or secretary account.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Nom          string    `gorm:"size:128;not null" json:"nom"`
	Prenom       string    `gorm:"size:128;not null" json:"prenom"`
	Email        string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:secretaire" json:"role"`
	ServiceID    *int64    `gorm:"index" json:"service_id,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
