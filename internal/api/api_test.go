package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gestion-astreinte-backend/config"
	"gestion-astreinte-backend/internal/db"
	"gestion-astreinte-backend/internal/store"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Server.TestEndpoints = true
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	return NewRouter(s, testConfig(), nil), s
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the API and returns its token.
func registerAndLogin(t *testing.T, router *gin.Engine, adminToken, email, role string, serviceID *int64) string {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/register", adminToken, gin.H{
		"nom": "Test", "prenom": "User", "email": email,
		"password": "secret123", "role": role, "service_id": serviceID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	registerAndLogin(t, router, "", "admin@example.com", "admin", nil)

	w := doJSON(t, router, "POST", "/api/login", "", gin.H{
		"email": "admin@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Email ou mot de passe incorrect"}`, w.Body.String())

	w = doJSON(t, router, "POST", "/api/login", "", gin.H{
		"email": "nobody@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterClosesAfterFirstAdmin(t *testing.T) {
	router, _ := newTestRouter(t)

	adminToken := registerAndLogin(t, router, "", "admin@example.com", "admin", nil)

	// Open registration is gone once an admin exists.
	w := doJSON(t, router, "POST", "/api/register", "", gin.H{
		"nom": "Intrus", "prenom": "Un", "email": "intrus@example.com",
		"password": "secret123", "role": "admin",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin can still create accounts.
	w = doJSON(t, router, "POST", "/api/register", adminToken, gin.H{
		"nom": "Nouvelle", "prenom": "Secretaire", "email": "sec@example.com",
		"password": "secret123", "role": "secretaire",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/services", "/api/agents", "/api/periodes", "/api/planning"} {
		w := doJSON(t, router, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestSecretaryScopedToOwnService(t *testing.T) {
	router, _ := newTestRouter(t)

	adminToken := registerAndLogin(t, router, "", "admin@example.com", "admin", nil)

	w := doJSON(t, router, "POST", "/api/services", adminToken, gin.H{"nom": "Service A", "code_service": "SRV-A"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var svcA struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svcA))

	w = doJSON(t, router, "POST", "/api/services", adminToken, gin.H{"nom": "Service B", "code_service": "SRV-B"})
	require.Equal(t, http.StatusCreated, w.Code)
	var svcB struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svcB))

	secToken := registerAndLogin(t, router, adminToken, "sec@example.com", "secretaire", &svcA.ID)

	// Agents land in the secretary's own service even if another one is
	// submitted.
	w = doJSON(t, router, "POST", "/api/agents", secToken, gin.H{
		"nom": "Durand", "prenom": "Alice", "matricule": "AGT-0001",
		"telephone": "0600000000", "service_id": svcB.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/agents", adminToken, gin.H{
		"nom": "Martin", "prenom": "Bob", "matricule": "AGT-0002",
		"telephone": "0600000001", "service_id": svcB.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The secretary only sees their own service's agent.
	w = doJSON(t, router, "GET", "/api/agents", secToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var agents []struct {
		Nom       string `json:"nom"`
		ServiceID int64  `json:"service_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agents))
	require.Len(t, agents, 1)
	assert.Equal(t, "Durand", agents[0].Nom)
	assert.Equal(t, svcA.ID, agents[0].ServiceID)

	// Other services are off limits entirely.
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/services/%d", svcB.ID), secToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// User administration stays admin-only.
	w = doJSON(t, router, "GET", "/api/users", secToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlanningAndDetails(t *testing.T) {
	router, _ := newTestRouter(t)

	adminToken := registerAndLogin(t, router, "", "admin@example.com", "admin", nil)

	w := doJSON(t, router, "POST", "/api/services", adminToken, gin.H{"nom": "Urgences", "code_service": "URG"})
	require.Equal(t, http.StatusCreated, w.Code)
	var svc struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))

	w = doJSON(t, router, "POST", "/api/periodes", adminToken, gin.H{
		"description": "Garde de nuit", "service_id": svc.ID,
		"date_debut": "2026-03-02", "date_fin": "2026-03-08",
		"heure_debut": "20:00", "heure_fin": "08:00",
		"type": "night", "statut": "scheduled", "priorite": "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var periode struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &periode))

	w = doJSON(t, router, "GET", "/api/planning?year=2026&month=3", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Cells []struct {
			Day      int `json:"day"`
			Periodes []struct {
				Description string `json:"description"`
			} `json:"periodes"`
		} `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2026, view.Year)
	assert.Equal(t, 3, view.Month)

	badged := 0
	for _, cell := range view.Cells {
		if len(cell.Periodes) > 0 {
			badged++
			assert.Equal(t, "Garde de nuit", cell.Periodes[0].Description)
		}
	}
	assert.Equal(t, 7, badged)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/periodes/%d/details", periode.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details struct {
		Service string `json:"service"`
		Type    struct {
			Label string `json:"label"`
		} `json:"type"`
		Debut       string `json:"debut"`
		AgentsLabel string `json:"agents_label"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "Urgences", details.Service)
	assert.Equal(t, "Nuit", details.Type.Label)
	assert.Equal(t, "lundi 2 mars 2026 à 20:00", details.Debut)
	assert.Equal(t, "Aucun", details.AgentsLabel)

	w = doJSON(t, router, "GET", "/api/planning?year=2026&month=13", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetDatabaseEndpoint(t *testing.T) {
	router, s := newTestRouter(t)

	adminToken := registerAndLogin(t, router, "", "admin@example.com", "admin", nil)

	w := doJSON(t, router, "POST", "/api/services", adminToken, gin.H{"nom": "Service A", "code_service": "SRV-A"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/_test/reset-database", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	services, err := s.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, services)
}
