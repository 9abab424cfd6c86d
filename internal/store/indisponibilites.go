package store

import (
	"context"

	"gestion-astreinte-backend/internal/model"
)

func (s *gormStore) ListIndisponibilites(ctx context.Context, serviceID *int64) ([]model.Indisponibilite, error) {
	q := s.db.WithContext(ctx).Preload("Agent").Preload("Remplacant").Order("indisponibilites.id")
	if serviceID != nil {
		q = q.Joins("JOIN agents ON agents.id = indisponibilites.agent_id").
			Where("agents.service_id = ?", *serviceID)
	}
	var indispos []model.Indisponibilite
	err := q.Find(&indispos).Error
	return indispos, err
}

func (s *gormStore) GetIndisponibilite(ctx context.Context, id int64) (model.Indisponibilite, error) {
	var indispo model.Indisponibilite
	err := s.db.WithContext(ctx).Preload("Agent").Preload("Remplacant").First(&indispo, id).Error
	return indispo, err
}

func (s *gormStore) CreateIndisponibilite(ctx context.Context, indispo *model.Indisponibilite) error {
	return s.db.WithContext(ctx).Create(indispo).Error
}

func (s *gormStore) UpdateIndisponibilite(ctx context.Context, indispo *model.Indisponibilite) error {
	return s.db.WithContext(ctx).Omit("Agent", "Remplacant").Save(indispo).Error
}

func (s *gormStore) DeleteIndisponibilite(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Indisponibilite{}, id).Error
}
