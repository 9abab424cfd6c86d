package model

import "time"

// Agent represents on-call field personnel attached to a service.
type Agent struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	Nom                 string    `gorm:"size:128;not null" json:"nom"`
	Prenom              string    `gorm:"size:128;not null" json:"prenom"`
	Matricule           string    `gorm:"uniqueIndex;size:32;not null" json:"matricule"`
	Telephone           string    `gorm:"size:32;not null" json:"telephone"`
	EmailPro            string    `gorm:"size:256" json:"email_pro,omitempty"`
	Poste               string    `gorm:"size:128" json:"poste,omitempty"`
	ServiceID           int64     `gorm:"index;not null" json:"service_id"`
	DisponibleAstreinte bool      `gorm:"not null;default:true" json:"disponible_astreinte"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`

	// Associations
	Service *Service `gorm:"constraint:OnDelete:CASCADE" json:"service,omitempty"`
}

// NomComplet returns the agent's display name as used in planning views.
func (a Agent) NomComplet() string {
	if a.Prenom == "" {
		return a.Nom
	}
	return a.Prenom + " " + a.Nom
}
