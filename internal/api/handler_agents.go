package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
	"gestion-astreinte-backend/internal/mw"
	"gestion-astreinte-backend/internal/parse"
)

type agentRequest struct {
	Nom                 string `json:"nom" binding:"required"`
	Prenom              string `json:"prenom" binding:"required"`
	Matricule           string `json:"matricule" binding:"required"`
	Telephone           string `json:"telephone" binding:"required"`
	EmailPro            string `json:"email_pro"`
	Poste               string `json:"poste"`
	ServiceID           int64  `json:"service_id"`
	DisponibleAstreinte *bool  `json:"disponible_astreinte"`
}

// ListAgents handles GET /api/agents, scoped to the secretary's service.
func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.store.ListAgents(c.Request.Context(), mw.ScopedServiceID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des agents"})
		return
	}
	c.JSON(http.StatusOK, agents)
}

// GetAgent handles GET /api/agents/:id.
func (h *Handler) GetAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	agent, err := h.store.GetAgent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération de l'agent"})
		}
		return
	}
	if scoped := mw.ScopedServiceID(c); scoped != nil && agent.ServiceID != *scoped {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

// CreateAgent handles POST /api/agents. Secretary writes are forced into
// their own service regardless of the submitted service_id.
func (h *Handler) CreateAgent(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matricule, err := parse.NormalizeMatricule(req.Matricule)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Matricule invalide"})
		return
	}

	serviceID := req.ServiceID
	if scoped := mw.ScopedServiceID(c); scoped != nil {
		serviceID = *scoped
	}
	if serviceID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service requis"})
		return
	}

	disponible := true
	if req.DisponibleAstreinte != nil {
		disponible = *req.DisponibleAstreinte
	}

	agent := model.Agent{
		Nom:                 req.Nom,
		Prenom:              req.Prenom,
		Matricule:           matricule,
		Telephone:           req.Telephone,
		EmailPro:            req.EmailPro,
		Poste:               req.Poste,
		ServiceID:           serviceID,
		DisponibleAstreinte: disponible,
	}
	if err := h.store.CreateAgent(c.Request.Context(), &agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de l'agent"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, agent)
}

// UpdateAgent handles PUT /api/agents/:id.
func (h *Handler) UpdateAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.store.GetAgent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de l'agent"})
		}
		return
	}

	scoped := mw.ScopedServiceID(c)
	if scoped != nil && agent.ServiceID != *scoped {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
		return
	}

	matricule, err := parse.NormalizeMatricule(req.Matricule)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Matricule invalide"})
		return
	}

	agent.Nom = req.Nom
	agent.Prenom = req.Prenom
	agent.Matricule = matricule
	agent.Telephone = req.Telephone
	agent.EmailPro = req.EmailPro
	agent.Poste = req.Poste
	if scoped == nil && req.ServiceID != 0 {
		agent.ServiceID = req.ServiceID
	}
	if req.DisponibleAstreinte != nil {
		agent.DisponibleAstreinte = *req.DisponibleAstreinte
	}
	agent.Service = nil

	if err := h.store.UpdateAgent(c.Request.Context(), &agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de l'agent"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, agent)
}

// DeleteAgent handles DELETE /api/agents/:id.
func (h *Handler) DeleteAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if scoped := mw.ScopedServiceID(c); scoped != nil {
		agent, err := h.store.GetAgent(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Agent introuvable"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression de l'agent"})
			}
			return
		}
		if agent.ServiceID != *scoped {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
			return
		}
	}

	if err := h.store.DeleteAgent(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression de l'agent"})
		return
	}

	h.flushCache()
	c.Status(http.StatusNoContent)
}
