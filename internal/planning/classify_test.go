package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestion-astreinte-backend/internal/model"
)

func TestClassifyTypeIsTotal(t *testing.T) {
	known := []string{
		model.PeriodeTypeWeekly,
		model.PeriodeTypeWeekend,
		model.PeriodeTypeHoliday,
		model.PeriodeTypeNight,
	}

	seen := make(map[string]bool)
	for _, typ := range known {
		d := ClassifyType(typ)
		assert.NotEmpty(t, d.Label, "type %q must have a label", typ)
		assert.NotEmpty(t, d.Background, "type %q must have a background", typ)
		assert.False(t, seen[d.Label], "type %q label %q collides with another entry", typ, d.Label)
		seen[d.Label] = true
	}

	for _, unknown := range []string{"", "monthly", "WEEKLY", "astreinte"} {
		assert.Equal(t, defaultTypeDescriptor, ClassifyType(unknown))
	}
}

func TestClassifyStatutIsTotal(t *testing.T) {
	known := []string{
		model.StatutActive,
		model.StatutInactive,
		model.StatutPending,
		model.StatutScheduled,
	}

	seen := make(map[string]bool)
	for _, statut := range known {
		d := ClassifyStatut(statut)
		assert.NotEmpty(t, d.Label)
		assert.False(t, seen[d.Label], "statut %q label %q collides", statut, d.Label)
		seen[d.Label] = true
	}

	assert.Equal(t, defaultStatutDescriptor, ClassifyStatut("archived"))
	assert.Equal(t, defaultStatutDescriptor, ClassifyStatut(""))
}

func TestClassifyPrioriteIsTotal(t *testing.T) {
	known := []string{
		model.PrioriteNormal,
		model.PrioriteHigh,
		model.PrioriteCritical,
	}

	seen := make(map[string]bool)
	for _, prio := range known {
		d := ClassifyPriorite(prio)
		assert.NotEmpty(t, d.Label)
		assert.False(t, seen[d.Label], "priorite %q label %q collides", prio, d.Label)
		seen[d.Label] = true
	}

	assert.Equal(t, defaultPrioriteDescriptor, ClassifyPriorite("urgent"))
}
