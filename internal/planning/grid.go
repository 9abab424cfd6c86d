package planning

import (
	"fmt"
	"time"

	"gestion-astreinte-backend/internal/model"
)

// DefaultVisibleCap is how many period badges a day cell shows before the
// remainder collapses into a "+N autres" summary.
const DefaultVisibleCap = 2

// Badge is the compact projection of a period shown inside a day cell.
type Badge struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Type        Descriptor `json:"type"`
	Statut      Descriptor `json:"statut"`
	Priorite    Descriptor `json:"priorite"`
}

// DayCell is one cell of the month grid. Leading placeholder cells before
// day 1 have Day == 0 and a nil Date.
type DayCell struct {
	Date          *time.Time `json:"date,omitempty"`
	Day           int        `json:"day"`
	IsToday       bool       `json:"is_today"`
	Periodes      []Badge    `json:"periodes"`
	Overflow      int        `json:"overflow"`
	OverflowLabel string     `json:"overflow_label,omitempty"`
}

// MonthView is the full projection of a month of periods onto a grid.
type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []DayCell  `json:"cells"`
}

// BuildMonth projects periods onto the Monday-aligned grid of the given
// month. For each real day it keeps the periods whose [DateDebut, DateFin]
// contains that day, in the order the input collection lists them. Which
// periods end up among the first cap visible ones is therefore decided by
// input order alone, not by priority or severity; that is a knowing
// simplification carried over from the planning views. The today flag is
// purely presentational and never affects grouping.
func BuildMonth(year int, month time.Month, periodes []model.Periode, today time.Time, cap int) MonthView {
	if cap <= 0 {
		cap = DefaultVisibleCap
	}
	todayMid := Midnight(today)

	grid := MonthGrid(year, month)
	cells := make([]DayCell, 0, len(grid))
	for _, day := range grid {
		if day == nil {
			cells = append(cells, DayCell{Periodes: []Badge{}})
			continue
		}

		var matching []Badge
		for _, p := range periodes {
			if IsWithinRange(*day, p.DateDebut, p.DateFin) {
				matching = append(matching, Badge{
					ID:          p.ID,
					Description: p.Description,
					Type:        ClassifyType(p.Type),
					Statut:      ClassifyStatut(p.Statut),
					Priorite:    ClassifyPriorite(p.Priorite),
				})
			}
		}

		cell := DayCell{
			Date:    day,
			Day:     day.Day(),
			IsToday: day.Equal(todayMid),
		}
		if len(matching) > cap {
			cell.Periodes = matching[:cap]
			cell.Overflow = len(matching) - cap
			cell.OverflowLabel = fmt.Sprintf("+%d autres", cell.Overflow)
		} else {
			cell.Periodes = matching
			if cell.Periodes == nil {
				cell.Periodes = []Badge{}
			}
		}
		cells = append(cells, cell)
	}

	return MonthView{Year: year, Month: month, Cells: cells}
}
