package model

import "time"

// Service represents an organizational unit owning agents and on-call periods.
type Service struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Nom         string    `gorm:"uniqueIndex;size:128;not null" json:"nom"`
	CodeService string    `gorm:"size:32;not null" json:"code_service"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	SecretaireID *int64   `gorm:"index" json:"secretaire_id,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Associations
	SecretaireResponsable *User   `gorm:"foreignKey:SecretaireID" json:"secretaire_responsable,omitempty"`
	Agents                []Agent `gorm:"foreignKey:ServiceID" json:"-"`
}
