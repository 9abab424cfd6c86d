package model

import "time"

// Indisponibilite types.
const (
	IndispoTypeLeave    = "leave"
	IndispoTypeIllness  = "illness"
	IndispoTypeTraining = "training"
	IndispoTypeMission  = "mission"
	IndispoTypeOther    = "other"
)

// Indisponibilite records an absence window for an agent, optionally with a
// designated replacement.
type Indisponibilite struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	AgentID      int64     `gorm:"index;not null" json:"agent_id"`
	Type         string    `gorm:"size:16;not null" json:"type"`
	DateDebut    string    `gorm:"size:10;not null" json:"date_debut"`
	DateFin      string    `gorm:"size:10;not null" json:"date_fin"`
	Motif        string    `gorm:"size:512" json:"motif,omitempty"`
	Statut       string    `gorm:"size:16;not null;default:pending" json:"statut"`
	RemplacantID *int64    `json:"remplacant_id,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	// Associations
	Agent      *Agent `gorm:"foreignKey:AgentID;constraint:OnDelete:CASCADE" json:"agent,omitempty"`
	Remplacant *Agent `gorm:"foreignKey:RemplacantID" json:"remplacant,omitempty"`
}
