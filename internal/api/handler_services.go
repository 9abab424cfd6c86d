package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
	"gestion-astreinte-backend/internal/mw"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return 0, false
	}
	return id, true
}

type serviceRequest struct {
	Nom          string `json:"nom" binding:"required"`
	CodeService  string `json:"code_service" binding:"required"`
	Description  string `json:"description"`
	SecretaireID *int64 `json:"secretaire_id"`
}

// ListServices handles GET /api/services. Secretaries only see their own
// service; admins see everything.
func (h *Handler) ListServices(c *gin.Context) {
	if scoped := mw.ScopedServiceID(c); scoped != nil {
		service, err := h.store.GetService(c.Request.Context(), *scoped)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, []model.Service{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des services"})
			return
		}
		c.JSON(http.StatusOK, []model.Service{service})
		return
	}

	services, err := h.store.ListServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /api/services/:id.
func (h *Handler) GetService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if scoped := mw.ScopedServiceID(c); scoped != nil && *scoped != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
		return
	}

	service, err := h.store.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération du service"})
		}
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateService handles POST /api/services. Admin only.
func (h *Handler) CreateService(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims == nil || claims.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := model.Service{
		Nom:          req.Nom,
		CodeService:  req.CodeService,
		Description:  req.Description,
		SecretaireID: req.SecretaireID,
	}
	if err := h.store.CreateService(c.Request.Context(), &service); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création du service"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, service)
}

// UpdateService handles PUT /api/services/:id. Admin only.
func (h *Handler) UpdateService(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims == nil || claims.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service, err := h.store.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour du service"})
		}
		return
	}

	service.Nom = req.Nom
	service.CodeService = req.CodeService
	service.Description = req.Description
	service.SecretaireID = req.SecretaireID
	service.SecretaireResponsable = nil
	if err := h.store.UpdateService(c.Request.Context(), &service); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour du service"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, service)
}

// DeleteService handles DELETE /api/services/:id. Admin only.
func (h *Handler) DeleteService(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims == nil || claims.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteService(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression du service"})
		return
	}

	h.flushCache()
	c.Status(http.StatusNoContent)
}

// ListSecretaries handles GET /api/services/secretaries.
func (h *Handler) ListSecretaries(c *gin.Context) {
	secretaries, err := h.store.ListSecretaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des secrétaires"})
		return
	}
	c.JSON(http.StatusOK, secretaries)
}

// GetSecretaryService handles GET /api/services/secretary-service: the
// calling secretary's own service.
func (h *Handler) GetSecretaryService(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims == nil || claims.Role != model.RoleSecretaire || claims.ServiceID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun service associé"})
		return
	}

	service, err := h.store.GetService(c.Request.Context(), *claims.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aucun service associé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération du service"})
		}
		return
	}
	c.JSON(http.StatusOK, service)
}
