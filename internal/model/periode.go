package model

import "time"

// Periode types. Closed enumeration; anything else renders with the default
// descriptor in the planning classifier.
const (
	PeriodeTypeWeekly  = "weekly"
	PeriodeTypeWeekend = "weekend"
	PeriodeTypeHoliday = "holiday"
	PeriodeTypeNight   = "night"
)

// Periode statuses.
const (
	StatutActive    = "active"
	StatutInactive  = "inactive"
	StatutPending   = "pending"
	StatutScheduled = "scheduled"
)

// Periode priorities.
const (
	PrioriteNormal   = "normal"
	PrioriteHigh     = "high"
	PrioriteCritical = "critical"
)

// Periode represents a scheduled on-call duty window for a service.
// Dates are naive local calendar dates stored as YYYY-MM-DD strings, both
// bounds inclusive; times of day are HH:MM with no timezone attached.
type Periode struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:512;not null" json:"description"`
	ServiceID   *int64    `gorm:"index" json:"service_id,omitempty"`
	DateDebut   string    `gorm:"size:10;not null" json:"date_debut"`
	DateFin     string    `gorm:"size:10;not null" json:"date_fin"`
	HeureDebut  string    `gorm:"size:5;not null" json:"heure_debut"`
	HeureFin    string    `gorm:"size:5;not null" json:"heure_fin"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Statut      string    `gorm:"size:16;not null;default:scheduled" json:"statut"`
	Priorite    string    `gorm:"size:16;not null;default:normal" json:"priorite"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Associations
	Service      *Service             `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Affectations []PeriodeAffectation `gorm:"foreignKey:PeriodeID;constraint:OnDelete:CASCADE" json:"-"`
}

// PeriodeAffectation links an agent to a periode. Position preserves the
// order in which agents were assigned; planning views list agents in that
// order, not by any priority ordering.
type PeriodeAffectation struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	PeriodeID int64 `gorm:"index;not null" json:"periode_id"`
	Position  int   `gorm:"not null" json:"position"`
	AgentID   int64 `gorm:"not null" json:"agent_id"`

	// Associations
	Agent Agent `gorm:"constraint:OnDelete:CASCADE" json:"agent"`
}

// AgentNoms returns the assigned agents' display names in assignment order.
func (p Periode) AgentNoms() []string {
	noms := make([]string, 0, len(p.Affectations))
	for _, aff := range p.Affectations {
		noms = append(noms, aff.Agent.NomComplet())
	}
	return noms
}
