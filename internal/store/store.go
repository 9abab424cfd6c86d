package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListSecretaries(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
	CountAdmins(ctx context.Context) (int64, error)

	// Services
	ListServices(ctx context.Context) ([]model.Service, error)
	GetService(ctx context.Context, id int64) (model.Service, error)
	CreateService(ctx context.Context, service *model.Service) error
	UpdateService(ctx context.Context, service *model.Service) error
	DeleteService(ctx context.Context, id int64) error

	// Agents. A non-nil serviceID restricts reads to that service.
	ListAgents(ctx context.Context, serviceID *int64) ([]model.Agent, error)
	GetAgent(ctx context.Context, id int64) (model.Agent, error)
	CreateAgent(ctx context.Context, agent *model.Agent) error
	UpdateAgent(ctx context.Context, agent *model.Agent) error
	DeleteAgent(ctx context.Context, id int64) error

	// Periodes
	ListPeriodes(ctx context.Context, serviceID *int64) ([]model.Periode, error)
	GetPeriode(ctx context.Context, id int64) (model.Periode, error)
	CreatePeriode(ctx context.Context, periode *model.Periode, agentIDs []int64) error
	UpdatePeriode(ctx context.Context, periode *model.Periode, agentIDs []int64) error
	DeletePeriode(ctx context.Context, id int64) error
	ActivateDuePeriodes(ctx context.Context, now time.Time) ([]int64, error)
	ExpirePeriodes(ctx context.Context, now time.Time) (int64, error)

	// Indisponibilites
	ListIndisponibilites(ctx context.Context, serviceID *int64) ([]model.Indisponibilite, error)
	GetIndisponibilite(ctx context.Context, id int64) (model.Indisponibilite, error)
	CreateIndisponibilite(ctx context.Context, indispo *model.Indisponibilite) error
	UpdateIndisponibilite(ctx context.Context, indispo *model.Indisponibilite) error
	DeleteIndisponibilite(ctx context.Context, id int64) error

	// Test fixture support. Wipes every table; only ever reachable when the
	// test endpoints are enabled in config.
	ResetDatabase(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for the handlers that need ad hoc reads.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Users ---

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (s *gormStore) ListSecretaries(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Where("role = ?", model.RoleSecretaire).Order("id").Find(&users).Error
	return users, err
}

func (s *gormStore) UpdateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (s *gormStore) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&n).Error
	return n, err
}

// --- Services ---

func (s *gormStore) ListServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := s.db.WithContext(ctx).Preload("SecretaireResponsable").Order("id").Find(&services).Error
	return services, err
}

func (s *gormStore) GetService(ctx context.Context, id int64) (model.Service, error) {
	var service model.Service
	err := s.db.WithContext(ctx).Preload("SecretaireResponsable").First(&service, id).Error
	return service, err
}

func (s *gormStore) CreateService(ctx context.Context, service *model.Service) error {
	return s.db.WithContext(ctx).Create(service).Error
}

func (s *gormStore) UpdateService(ctx context.Context, service *model.Service) error {
	return s.db.WithContext(ctx).Save(service).Error
}

func (s *gormStore) DeleteService(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Service{}, id).Error
}

// --- Agents ---

func (s *gormStore) ListAgents(ctx context.Context, serviceID *int64) ([]model.Agent, error) {
	q := s.db.WithContext(ctx).Preload("Service").Order("id")
	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	}
	var agents []model.Agent
	err := q.Find(&agents).Error
	return agents, err
}

func (s *gormStore) GetAgent(ctx context.Context, id int64) (model.Agent, error) {
	var agent model.Agent
	err := s.db.WithContext(ctx).Preload("Service").First(&agent, id).Error
	return agent, err
}

func (s *gormStore) CreateAgent(ctx context.Context, agent *model.Agent) error {
	return s.db.WithContext(ctx).Create(agent).Error
}

func (s *gormStore) UpdateAgent(ctx context.Context, agent *model.Agent) error {
	return s.db.WithContext(ctx).Save(agent).Error
}

func (s *gormStore) DeleteAgent(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Agent{}, id).Error
}

// --- Reset ---

// ResetDatabase wipes every table, children before parents.
func (s *gormStore) ResetDatabase(ctx context.Context) error {
	tables := []string{
		"subscription_service_mapping",
		"push_subscriptions",
		"periode_affectations",
		"indisponibilites",
		"periodes",
		"agents",
		"services",
		"users",
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to reset table %s: %w", table, err)
			}
		}
		return nil
	})
}
