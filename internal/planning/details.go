package planning

import (
	"fmt"
	"strings"

	"gestion-astreinte-backend/internal/model"
)

// Placeholders rendered when an optional field is absent. Detail views never
// show an empty or missing value.
const (
	PlaceholderService = "Non spécifié"
	PlaceholderAgents  = "Aucun"
	PlaceholderDate    = "Date invalide"
)

var frenchWeekdays = [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// EventDetails is the label set for a single period's detail view.
type EventDetails struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Service     string     `json:"service"`
	Type        Descriptor `json:"type"`
	Statut      Descriptor `json:"statut"`
	Priorite    Descriptor `json:"priorite"`
	Debut       string     `json:"debut"`
	Fin         string     `json:"fin"`
	Agents      []string   `json:"agents"`
	AgentsLabel string     `json:"agents_label"`
}

// FormatLongDate renders a calendar date long-form in French, combined with
// the HH:MM-truncated time of day when one is given. An unparseable date
// degrades to a fixed placeholder instead of failing the whole projection.
func FormatLongDate(day, heure string) string {
	t, ok := ParseDay(day)
	if !ok {
		return PlaceholderDate
	}
	s := fmt.Sprintf("%s %d %s %d", frenchWeekdays[int(t.Weekday())], t.Day(), frenchMonths[int(t.Month())-1], t.Year())
	if hm := truncateHeure(heure); hm != "" {
		s += " à " + hm
	}
	return s
}

func truncateHeure(heure string) string {
	heure = strings.TrimSpace(heure)
	if len(heure) > 5 {
		heure = heure[:5]
	}
	return heure
}

// ProjectDetails formats a period record plus its resolved classification
// into the detail-view label set. Absent optional fields degrade to
// placeholder text, never to an error or a blank render.
func ProjectDetails(p model.Periode) EventDetails {
	service := PlaceholderService
	if p.Service != nil && p.Service.Nom != "" {
		service = p.Service.Nom
	}

	agents := p.AgentNoms()
	agentsLabel := PlaceholderAgents
	if len(agents) > 0 {
		agentsLabel = strings.Join(agents, ", ")
	}

	return EventDetails{
		ID:          p.ID,
		Description: p.Description,
		Service:     service,
		Type:        ClassifyType(p.Type),
		Statut:      ClassifyStatut(p.Statut),
		Priorite:    ClassifyPriorite(p.Priorite),
		Debut:       FormatLongDate(p.DateDebut, p.HeureDebut),
		Fin:         FormatLongDate(p.DateFin, p.HeureFin),
		Agents:      agents,
		AgentsLabel: agentsLabel,
	}
}
