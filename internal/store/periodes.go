package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
	"gestion-astreinte-backend/internal/planning"
)

func withAffectations(db *gorm.DB) *gorm.DB {
	return db.Preload("Service").
		Preload("Affectations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Affectations.Agent")
}

func (s *gormStore) ListPeriodes(ctx context.Context, serviceID *int64) ([]model.Periode, error) {
	q := withAffectations(s.db.WithContext(ctx)).Order("id")
	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	}
	var periodes []model.Periode
	err := q.Find(&periodes).Error
	return periodes, err
}

func (s *gormStore) GetPeriode(ctx context.Context, id int64) (model.Periode, error) {
	var periode model.Periode
	err := withAffectations(s.db.WithContext(ctx)).First(&periode, id).Error
	return periode, err
}

// CreatePeriode persists the periode and its ordered agent assignments in
// one transaction. Assignment order is the caller's order.
func (s *gormStore) CreatePeriode(ctx context.Context, periode *model.Periode, agentIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(periode).Error; err != nil {
			return err
		}
		return replaceAffectations(tx, periode.ID, agentIDs)
	})
}

// UpdatePeriode saves the periode and replaces its assignments with the
// given ordered list.
func (s *gormStore) UpdatePeriode(ctx context.Context, periode *model.Periode, agentIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Affectations", "Service").Save(periode).Error; err != nil {
			return err
		}
		return replaceAffectations(tx, periode.ID, agentIDs)
	})
}

func replaceAffectations(tx *gorm.DB, periodeID int64, agentIDs []int64) error {
	if err := tx.Where("periode_id = ?", periodeID).Delete(&model.PeriodeAffectation{}).Error; err != nil {
		return fmt.Errorf("failed to clear assignments for periode %d: %w", periodeID, err)
	}
	if len(agentIDs) == 0 {
		return nil
	}
	affectations := make([]model.PeriodeAffectation, len(agentIDs))
	for i, agentID := range agentIDs {
		affectations[i] = model.PeriodeAffectation{PeriodeID: periodeID, Position: i, AgentID: agentID}
	}
	if err := tx.Create(&affectations).Error; err != nil {
		return fmt.Errorf("failed to create assignments for periode %d: %w", periodeID, err)
	}
	return nil
}

func (s *gormStore) DeletePeriode(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("periode_id = ?", id).Delete(&model.PeriodeAffectation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Periode{}, id).Error
	})
}

// ActivateDuePeriodes flips scheduled periodes whose start instant has been
// reached to active, and returns their IDs for notification dispatch. Dates
// and times are ISO strings, so plain string comparison orders correctly.
func (s *gormStore) ActivateDuePeriodes(ctx context.Context, now time.Time) ([]int64, error) {
	today := now.Format(planning.DayLayout)
	heure := now.Format("15:04")

	var ids []int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		due := tx.Model(&model.Periode{}).
			Where("statut = ?", model.StatutScheduled).
			Where("date_debut < ? OR (date_debut = ? AND heure_debut <= ?)", today, today, heure)
		if err := due.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&model.Periode{}).
			Where("id IN ?", ids).
			Update("statut", model.StatutActive).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate due periodes: %w", err)
	}
	return ids, nil
}

// ExpirePeriodes flips active periodes whose end instant has passed to
// inactive, returning the number of rows changed.
func (s *gormStore) ExpirePeriodes(ctx context.Context, now time.Time) (int64, error) {
	today := now.Format(planning.DayLayout)
	heure := now.Format("15:04")

	res := s.db.WithContext(ctx).Model(&model.Periode{}).
		Where("statut = ?", model.StatutActive).
		Where("date_fin < ? OR (date_fin = ? AND heure_fin < ?)", today, today, heure).
		Update("statut", model.StatutInactive)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire periodes: %w", res.Error)
	}
	return res.RowsAffected, nil
}
