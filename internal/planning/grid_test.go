package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestion-astreinte-backend/internal/model"
)

func periode(id int64, desc, debut, fin string) model.Periode {
	return model.Periode{
		ID:          id,
		Description: desc,
		DateDebut:   debut,
		DateFin:     fin,
		Type:        model.PeriodeTypeWeekly,
		Statut:      model.StatutActive,
		Priorite:    model.PrioriteNormal,
	}
}

func cellForDay(t *testing.T, view MonthView, dayOfMonth int) DayCell {
	t.Helper()
	for _, c := range view.Cells {
		if c.Day == dayOfMonth {
			return c
		}
	}
	t.Fatalf("no cell for day %d", dayOfMonth)
	return DayCell{}
}

func TestBuildMonthGroupsByContainment(t *testing.T) {
	periodes := []model.Periode{
		periode(1, "Astreinte semaine", "2026-03-02", "2026-03-08"),
		periode(2, "Astreinte week-end", "2026-03-07", "2026-03-08"),
		periode(3, "Astreinte nuit", "2026-03-20", "2026-03-20"),
	}

	view := BuildMonth(2026, time.March, periodes, day("2026-03-05"), DefaultVisibleCap)
	require.Len(t, view.Cells, 37) // 6 leading placeholders + 31 days

	// Day 5 is covered only by the first period.
	c5 := cellForDay(t, view, 5)
	require.Len(t, c5.Periodes, 1)
	assert.Equal(t, int64(1), c5.Periodes[0].ID)
	assert.True(t, c5.IsToday)
	assert.Zero(t, c5.Overflow)

	// Day 7 is covered by periods 1 and 2, in input order.
	c7 := cellForDay(t, view, 7)
	require.Len(t, c7.Periodes, 2)
	assert.Equal(t, int64(1), c7.Periodes[0].ID)
	assert.Equal(t, int64(2), c7.Periodes[1].ID)
	assert.False(t, c7.IsToday)

	// Day 20 is a single-day period.
	c20 := cellForDay(t, view, 20)
	require.Len(t, c20.Periodes, 1)
	assert.Equal(t, int64(3), c20.Periodes[0].ID)

	// Day 9 is covered by nothing; the cell still carries an empty slice.
	c9 := cellForDay(t, view, 9)
	assert.NotNil(t, c9.Periodes)
	assert.Empty(t, c9.Periodes)
}

func TestBuildMonthOverflow(t *testing.T) {
	periodes := []model.Periode{
		periode(1, "A", "2026-03-10", "2026-03-10"),
		periode(2, "B", "2026-03-10", "2026-03-10"),
		periode(3, "C", "2026-03-10", "2026-03-10"),
	}

	view := BuildMonth(2026, time.March, periodes, day("2026-01-01"), 2)

	c := cellForDay(t, view, 10)
	require.Len(t, c.Periodes, 2)
	// Overflow keeps the first cap entries in input order; the selection is
	// not priority-aware.
	assert.Equal(t, int64(1), c.Periodes[0].ID)
	assert.Equal(t, int64(2), c.Periodes[1].ID)
	assert.Equal(t, 1, c.Overflow)
	assert.Equal(t, "+1 autres", c.OverflowLabel)
}

func TestBuildMonthIsDeterministic(t *testing.T) {
	periodes := []model.Periode{
		periode(7, "A", "2026-03-01", "2026-03-31"),
		periode(8, "B", "2026-03-01", "2026-03-15"),
	}

	today := day("2026-03-12")
	first := BuildMonth(2026, time.March, periodes, today, DefaultVisibleCap)
	second := BuildMonth(2026, time.March, periodes, today, DefaultVisibleCap)
	assert.Equal(t, first, second)
}

func TestBuildMonthInvertedRangeShowsNothing(t *testing.T) {
	// DateDebut after DateFin is not validated upstream; it must render as a
	// zero-day period rather than crash.
	periodes := []model.Periode{periode(1, "inversée", "2026-03-20", "2026-03-10")}

	view := BuildMonth(2026, time.March, periodes, day("2026-03-15"), DefaultVisibleCap)
	for _, c := range view.Cells {
		assert.Empty(t, c.Periodes)
	}
}

func TestBuildMonthInvalidDatesShowNothing(t *testing.T) {
	periodes := []model.Periode{periode(1, "corrompue", "n/a", "2026-03-10")}

	view := BuildMonth(2026, time.March, periodes, day("2026-03-15"), DefaultVisibleCap)
	for _, c := range view.Cells {
		assert.Empty(t, c.Periodes)
	}
}

func TestBuildMonthTodayMarkerOutsideMonth(t *testing.T) {
	view := BuildMonth(2026, time.March, nil, day("2026-04-01"), DefaultVisibleCap)
	for _, c := range view.Cells {
		assert.False(t, c.IsToday)
	}
}
