package planning

import "gestion-astreinte-backend/internal/model"

// Descriptor is the display classification of a period attribute: CSS-style
// class names plus the French label the views render.
type Descriptor struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
	Label      string `json:"label"`
}

var typeDescriptors = map[string]Descriptor{
	model.PeriodeTypeWeekly:  {Background: "bg-blue-100", Text: "text-blue-800", Border: "border-blue-300", Label: "Semaine"},
	model.PeriodeTypeWeekend: {Background: "bg-purple-100", Text: "text-purple-800", Border: "border-purple-300", Label: "Week-end"},
	model.PeriodeTypeHoliday: {Background: "bg-red-100", Text: "text-red-800", Border: "border-red-300", Label: "Jour férié"},
	model.PeriodeTypeNight:   {Background: "bg-indigo-100", Text: "text-indigo-800", Border: "border-indigo-300", Label: "Nuit"},
}

var defaultTypeDescriptor = Descriptor{Background: "bg-gray-100", Text: "text-gray-800", Border: "border-gray-300", Label: "Autre"}

var statutDescriptors = map[string]Descriptor{
	model.StatutActive:    {Background: "bg-green-100", Text: "text-green-800", Border: "border-green-300", Label: "Active"},
	model.StatutInactive:  {Background: "bg-gray-100", Text: "text-gray-600", Border: "border-gray-300", Label: "Inactive"},
	model.StatutPending:   {Background: "bg-yellow-100", Text: "text-yellow-800", Border: "border-yellow-300", Label: "En attente"},
	model.StatutScheduled: {Background: "bg-sky-100", Text: "text-sky-800", Border: "border-sky-300", Label: "Planifiée"},
}

var defaultStatutDescriptor = Descriptor{Background: "bg-gray-100", Text: "text-gray-500", Border: "border-gray-300", Label: "Inconnu"}

var prioriteDescriptors = map[string]Descriptor{
	model.PrioriteNormal:   {Background: "bg-gray-100", Text: "text-gray-700", Border: "border-gray-300", Label: "Normale"},
	model.PrioriteHigh:     {Background: "bg-orange-100", Text: "text-orange-800", Border: "border-orange-300", Label: "Haute"},
	model.PrioriteCritical: {Background: "bg-red-100", Text: "text-red-800", Border: "border-red-400", Label: "Critique"},
}

var defaultPrioriteDescriptor = Descriptor{Background: "bg-gray-100", Text: "text-gray-500", Border: "border-gray-300", Label: "Inconnue"}

// ClassifyType maps a period type to its display descriptor. The mapping is
// total: values outside the closed enumeration get the default descriptor.
func ClassifyType(t string) Descriptor {
	if d, ok := typeDescriptors[t]; ok {
		return d
	}
	return defaultTypeDescriptor
}

// ClassifyStatut maps a period status to its display descriptor.
func ClassifyStatut(s string) Descriptor {
	if d, ok := statutDescriptors[s]; ok {
		return d
	}
	return defaultStatutDescriptor
}

// ClassifyPriorite maps a period priority to its display descriptor.
func ClassifyPriorite(p string) Descriptor {
	if d, ok := prioriteDescriptors[p]; ok {
		return d
	}
	return defaultPrioriteDescriptor
}
