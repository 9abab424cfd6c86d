package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/db"
	"gestion-astreinte-backend/internal/model"
)

// newTestDB opens a dedicated in-memory SQLite database and runs migrations.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func seedService(t *testing.T, s Store, nom, code string) model.Service {
	t.Helper()
	service := model.Service{Nom: nom, CodeService: code}
	require.NoError(t, s.CreateService(context.Background(), &service))
	return service
}

func seedAgent(t *testing.T, s Store, serviceID int64, nom, matricule string) model.Agent {
	t.Helper()
	agent := model.Agent{
		Nom: nom, Prenom: "Test", Matricule: matricule,
		Telephone: "0600000000", ServiceID: serviceID, DisponibleAstreinte: true,
	}
	require.NoError(t, s.CreateAgent(context.Background(), &agent))
	return agent
}

func TestAgentScopingByService(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	svcA := seedService(t, s, "Service A", "SRV-A")
	svcB := seedService(t, s, "Service B", "SRV-B")
	seedAgent(t, s, svcA.ID, "Durand", "AGT-0001")
	seedAgent(t, s, svcB.ID, "Martin", "AGT-0002")

	all, err := s.ListAgents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := s.ListAgents(ctx, &svcA.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Durand", scoped[0].Nom)
	require.NotNil(t, scoped[0].Service)
	assert.Equal(t, "Service A", scoped[0].Service.Nom)
}

func TestPeriodeAffectationsKeepOrder(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	svc := seedService(t, s, "Service A", "SRV-A")
	a1 := seedAgent(t, s, svc.ID, "Premier", "AGT-0001")
	a2 := seedAgent(t, s, svc.ID, "Deuxieme", "AGT-0002")
	a3 := seedAgent(t, s, svc.ID, "Troisieme", "AGT-0003")

	periode := model.Periode{
		Description: "Astreinte semaine",
		ServiceID:   &svc.ID,
		DateDebut:   "2026-03-02", DateFin: "2026-03-08",
		HeureDebut: "08:00", HeureFin: "18:00",
		Type: model.PeriodeTypeWeekly, Statut: model.StatutScheduled, Priorite: model.PrioriteNormal,
	}
	require.NoError(t, s.CreatePeriode(ctx, &periode, []int64{a3.ID, a1.ID, a2.ID}))

	got, err := s.GetPeriode(ctx, periode.ID)
	require.NoError(t, err)
	require.Len(t, got.Affectations, 3)
	assert.Equal(t, []string{"Test Troisieme", "Test Premier", "Test Deuxieme"}, got.AgentNoms())
	require.NotNil(t, got.Service)
	assert.Equal(t, "Service A", got.Service.Nom)

	// Replacing assignments reorders and drops as instructed.
	require.NoError(t, s.UpdatePeriode(ctx, &got, []int64{a2.ID, a3.ID}))
	got, err = s.GetPeriode(ctx, periode.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Test Deuxieme", "Test Troisieme"}, got.AgentNoms())
}

func TestActivateAndExpirePeriodes(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	svc := seedService(t, s, "Service A", "SRV-A")
	mk := func(desc, debut, fin, heureDebut, heureFin, statut string) model.Periode {
		p := model.Periode{
			Description: desc, ServiceID: &svc.ID,
			DateDebut: debut, DateFin: fin,
			HeureDebut: heureDebut, HeureFin: heureFin,
			Type: model.PeriodeTypeWeekly, Statut: statut, Priorite: model.PrioriteNormal,
		}
		require.NoError(t, s.CreatePeriode(ctx, &p, nil))
		return p
	}

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

	due := mk("due", "2026-03-10", "2026-03-12", "08:00", "18:00", model.StatutScheduled)
	dueEarlier := mk("due earlier day", "2026-03-09", "2026-03-12", "23:00", "18:00", model.StatutScheduled)
	notYet := mk("starts tonight", "2026-03-10", "2026-03-12", "20:00", "18:00", model.StatutScheduled)
	future := mk("next week", "2026-03-16", "2026-03-20", "08:00", "18:00", model.StatutScheduled)
	over := mk("already over", "2026-03-01", "2026-03-09", "08:00", "18:00", model.StatutActive)
	running := mk("still running", "2026-03-09", "2026-03-10", "08:00", "18:00", model.StatutActive)

	activated, err := s.ActivateDuePeriodes(ctx, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{due.ID, dueEarlier.ID}, activated)

	expired, err := s.ExpirePeriodes(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	statut := func(id int64) string {
		p, err := s.GetPeriode(ctx, id)
		require.NoError(t, err)
		return p.Statut
	}
	assert.Equal(t, model.StatutActive, statut(due.ID))
	assert.Equal(t, model.StatutActive, statut(dueEarlier.ID))
	assert.Equal(t, model.StatutScheduled, statut(notYet.ID))
	assert.Equal(t, model.StatutScheduled, statut(future.ID))
	assert.Equal(t, model.StatutInactive, statut(over.ID))
	assert.Equal(t, model.StatutActive, statut(running.ID))
}

func TestIndisponibiliteScoping(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	svcA := seedService(t, s, "Service A", "SRV-A")
	svcB := seedService(t, s, "Service B", "SRV-B")
	agentA := seedAgent(t, s, svcA.ID, "Durand", "AGT-0001")
	agentB := seedAgent(t, s, svcB.ID, "Martin", "AGT-0002")

	require.NoError(t, s.CreateIndisponibilite(ctx, &model.Indisponibilite{
		AgentID: agentA.ID, Type: model.IndispoTypeLeave,
		DateDebut: "2026-04-01", DateFin: "2026-04-05", Statut: "pending",
	}))
	require.NoError(t, s.CreateIndisponibilite(ctx, &model.Indisponibilite{
		AgentID: agentB.ID, Type: model.IndispoTypeIllness,
		DateDebut: "2026-04-02", DateFin: "2026-04-03", Statut: "pending",
	}))

	all, err := s.ListIndisponibilites(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := s.ListIndisponibilites(ctx, &svcA.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, agentA.ID, scoped[0].AgentID)
	require.NotNil(t, scoped[0].Agent)
	assert.Equal(t, "Durand", scoped[0].Agent.Nom)
}

func TestResetDatabase(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	svc := seedService(t, s, "Service A", "SRV-A")
	seedAgent(t, s, svc.ID, "Durand", "AGT-0001")
	require.NoError(t, s.CreateUser(ctx, &model.User{
		Nom: "Admin", Prenom: "Root", Email: "admin@example.com",
		PasswordHash: "x", Role: model.RoleAdmin,
	}))

	require.NoError(t, s.ResetDatabase(ctx))

	services, err := s.ListServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, services)

	agents, err := s.ListAgents(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, agents)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
